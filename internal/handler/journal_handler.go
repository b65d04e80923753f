package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/starman/internal/journal"
	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
)

// JournalServiceInterface はジャーナルハンドラーが必要とするサービスインターフェース。
type JournalServiceInterface interface {
	Create(ctx context.Context, userID string, in journal.CreateInput) (*model.JournalEntry, error)
	List(ctx context.Context, userID, status string, skip, limit int) ([]*model.JournalEntry, error)
	Get(ctx context.Context, userID, entryID string) (*model.JournalEntry, error)
	Update(ctx context.Context, userID, entryID string, in journal.UpdateInput) (*model.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

// JournalHandler は意図設定ジャーナルのHTTPハンドラー。
type JournalHandler struct {
	service JournalServiceInterface
}

// NewJournalHandler はJournalHandlerを生成する。
func NewJournalHandler(service JournalServiceInterface) *JournalHandler {
	return &JournalHandler{
		service: service,
	}
}

// journalCreateRequest はエントリ作成リクエストのボディ。
type journalCreateRequest struct {
	Intention string  `json:"intention"`
	Gratitude *string `json:"gratitude"`
	Category  string  `json:"category"`
}

// journalUpdateRequest はエントリ部分更新リクエストのボディ。
type journalUpdateRequest struct {
	Intention *string `json:"intention"`
	Gratitude *string `json:"gratitude"`
	Status    *string `json:"status"`
	Category  *string `json:"category"`
}

// journalEntryResponse はジャーナルエントリのAPIレスポンス。
type journalEntryResponse struct {
	ID        string  `json:"id"`
	Intention string  `json:"intention"`
	Gratitude *string `json:"gratitude"`
	Status    string  `json:"status"`
	Category  string  `json:"category"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Create は新規エントリを作成する。
// POST /api/journal
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req journalCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	entry, err := h.service.Create(r.Context(), userID, journal.CreateInput{
		Intention: req.Intention,
		Gratitude: req.Gratitude,
		Category:  req.Category,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toJournalEntryResponse(entry))
}

// List はエントリ一覧を新しい順で返す。
// GET /api/journal?status=&skip=&limit=
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	status := r.URL.Query().Get("status")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.List(r.Context(), userID, status, skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]journalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toJournalEntryResponse(entry))
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// Get は指定IDのエントリを返す。
// GET /api/journal/{id}
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	entryID := chi.URLParam(r, "id")
	entry, err := h.service.Get(r.Context(), userID, entryID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toJournalEntryResponse(entry))
}

// Update はエントリを部分更新する。
// PUT /api/journal/{id}
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req journalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	entryID := chi.URLParam(r, "id")
	entry, err := h.service.Update(r.Context(), userID, entryID, journal.UpdateInput{
		Intention: req.Intention,
		Gratitude: req.Gratitude,
		Status:    req.Status,
		Category:  req.Category,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toJournalEntryResponse(entry))
}

// Delete はエントリを削除する。
// DELETE /api/journal/{id}
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	entryID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), userID, entryID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toJournalEntryResponse はmodel.JournalEntryをAPIレスポンス形式に変換する。
func toJournalEntryResponse(entry *model.JournalEntry) journalEntryResponse {
	return journalEntryResponse{
		ID:        entry.ID,
		Intention: entry.Intention,
		Gratitude: entry.Gratitude,
		Status:    string(entry.Status),
		Category:  entry.Category,
		CreatedAt: entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: entry.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
