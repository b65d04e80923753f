package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/tarot"
)

// TarotServiceInterface はタロットハンドラーが必要とするサービスインターフェース。
type TarotServiceInterface interface {
	Cards() []tarot.Card
	CardByID(id int) (*tarot.Card, error)
	Daily(ctx context.Context, user *model.User, forceNew bool) (*tarot.DailyDraw, error)
	Spread(ctx context.Context, user *model.User, forceNew bool) ([]*tarot.SpreadCard, error)
	History(ctx context.Context, userID string, limit int) ([]*model.TarotDraw, error)
	AIReading(ctx context.Context, in tarot.AIReadingInput) (*tarot.AIReading, error)
}

// TarotHandler はタロット関連のHTTPハンドラー。
type TarotHandler struct {
	service TarotServiceInterface
	users   UserFinder
}

// NewTarotHandler はTarotHandlerを生成する。
func NewTarotHandler(service TarotServiceInterface, users UserFinder) *TarotHandler {
	return &TarotHandler{
		service: service,
		users:   users,
	}
}

// tarotAIReadingRequest はAIタロットリーディングリクエストのボディ。
type tarotAIReadingRequest struct {
	CardID     int    `json:"card_id"`
	IsReversed bool   `json:"is_reversed"`
	Question   string `json:"question"`
}

// tarotHistoryResponse は引き履歴1件のAPIレスポンス。
type tarotHistoryResponse struct {
	ID          string `json:"id"`
	CardID      int    `json:"card_id"`
	IsReversed  bool   `json:"is_reversed"`
	Position    string `json:"position"`
	ReadingDate string `json:"reading_date"`
}

// spreadResponse は3枚スプレッドのAPIレスポンス。
type spreadResponse struct {
	Cards []*tarot.SpreadCard `json:"cards"`
}

// Cards は大アルカナ22枚の一覧を返す。
// GET /api/tarot/cards
func (h *TarotHandler) Cards(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.service.Cards())
}

// Card は指定IDのカードを返す。
// GET /api/tarot/cards/{id}
func (h *TarotHandler) Card(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewCardNotFoundError(-1))
		return
	}

	card, err := h.service.CardByID(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, card)
}

// Daily は今日の1枚を返す。同日2回目以降は保存済みの引きを返す。
// プレミアムユーザーはforce_new=trueで引き直せる。
// GET /api/tarot/daily?force_new=
func (h *TarotHandler) Daily(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	forceNew := r.URL.Query().Get("force_new") == "true"
	draw, err := h.service.Daily(r.Context(), user, forceNew)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, draw)
}

// Spread は過去・現在・未来の3枚スプレッドを返す。
// POST /api/tarot/spread?force_new=
func (h *TarotHandler) Spread(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	forceNew := r.URL.Query().Get("force_new") == "true"
	cards, err := h.service.Spread(r.Context(), user, forceNew)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, spreadResponse{Cards: cards})
}

// History は引き履歴を新しい順で返す。
// GET /api/tarot/history?limit=
func (h *TarotHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	draws, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]tarotHistoryResponse, 0, len(draws))
	for _, draw := range draws {
		resp = append(resp, tarotHistoryResponse{
			ID:          draw.ID,
			CardID:      draw.CardID,
			IsReversed:  draw.IsReversed,
			Position:    string(draw.Position),
			ReadingDate: draw.ReadingDate.Format("2006-01-02"),
		})
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// AIReading はカードのパーソナルリーディングを生成する。
// ユーザー名と星座はプロフィールから補完する。
// POST /api/tarot/ai-reading
func (h *TarotHandler) AIReading(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	var req tarotAIReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	reading, err := h.service.AIReading(r.Context(), tarot.AIReadingInput{
		CardID:     req.CardID,
		IsReversed: req.IsReversed,
		UserName:   user.Name,
		ZodiacSign: user.ZodiacSign,
		Question:   req.Question,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, reading)
}

