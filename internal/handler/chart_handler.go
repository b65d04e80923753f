package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
)

// ChartServiceInterface はチャートハンドラーが必要とするサービスインターフェース。
type ChartServiceInterface interface {
	Compute(input astro.ChartInput) (*astro.NatalChart, error)
	EphemerisStatus() astro.Status
}

// ReadingServiceInterface はAIリーディング生成のインターフェース。
type ReadingServiceInterface interface {
	Generate(ctx context.Context, in astro.ReadingInput) *astro.AIReading
}

// UserFinder はコンテキストのユーザーIDからプロフィールを引くための
// 共有インターフェース。repository.UserRepositoryが満たす。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ChartHandler はネイタルチャート関連のHTTPハンドラー。
type ChartHandler struct {
	service ChartServiceInterface
	reading ReadingServiceInterface
}

// NewChartHandler はChartHandlerを生成する。
func NewChartHandler(service ChartServiceInterface, reading ReadingServiceInterface) *ChartHandler {
	return &ChartHandler{
		service: service,
		reading: reading,
	}
}

// chartRequest はチャート計算リクエストのボディ。
type chartRequest struct {
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD
	BirthTime string  `json:"birth_time"` // HH:MM
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// aiReadingRequest はAIリーディングリクエストのボディ。
// クライアントが計算済みチャートの主要配置を送ってくる。
type aiReadingRequest struct {
	SunSign      string              `json:"sun_sign"`
	SunDegree    float64             `json:"sun_degree"`
	MoonSign     string              `json:"moon_sign"`
	MoonDegree   float64             `json:"moon_degree"`
	RisingSign   string              `json:"rising_sign"`
	RisingDegree float64             `json:"rising_degree"`
	Planets      []aiReadingPosition `json:"planets"`
	UserName     string              `json:"user_name"`
	BirthDate    string              `json:"birth_date"`
}

// aiReadingPosition はAIリーディングリクエスト内の1天体の配置。
type aiReadingPosition struct {
	Planet string  `json:"planet"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// ephemerisHealthResponse は天体暦セルフチェックのレスポンス。
type ephemerisHealthResponse struct {
	Status    string   `json:"status"`
	Ephemeris string   `json:"ephemeris"`
	Missing   []string `json:"missing,omitempty"`
}

// Calculate は出生情報からネイタルチャートを計算する。
// POST /api/natal-chart/calculate
func (h *ChartHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	chart, err := h.service.Compute(astro.ChartInput{
		BirthDate: req.BirthDate,
		BirthTime: req.BirthTime,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		slog.Error("natal chart computation failed", slog.String("error", err.Error()))
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewChartFailedError())
		return
	}

	writeJSONResponse(w, http.StatusOK, chart)
}

// Health は天体暦データの読み込み状態を返す。認証不要。
// GET /api/natal-chart/health
func (h *ChartHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.service.EphemerisStatus()

	resp := ephemerisHealthResponse{
		Status:    "ok",
		Ephemeris: status.Detail,
	}
	if !status.Loaded {
		resp.Status = "degraded"
		resp.Missing = status.Missing
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// AIReading はチャート配置からパーソナライズされた解釈を生成する。
// AIが使えない場合も定型リーディングで必ず200を返す。
// POST /api/natal-chart/ai-reading
func (h *ChartHandler) AIReading(w http.ResponseWriter, r *http.Request) {
	var req aiReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	planets := make([]astro.BodyPosition, 0, len(req.Planets))
	for _, p := range req.Planets {
		planets = append(planets, astro.BodyPosition{
			Planet: p.Planet,
			Sign:   p.Sign,
			Degree: p.Degree,
		})
	}

	reading := h.reading.Generate(r.Context(), astro.ReadingInput{
		SunSign:      req.SunSign,
		SunDegree:    req.SunDegree,
		MoonSign:     req.MoonSign,
		MoonDegree:   req.MoonDegree,
		RisingSign:   req.RisingSign,
		RisingDegree: req.RisingDegree,
		Planets:      planets,
		UserName:     req.UserName,
		BirthDate:    req.BirthDate,
	})

	writeJSONResponse(w, http.StatusOK, reading)
}

// --- 共有レスポンスヘルパー ---

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeInvalidRequestBody はリクエストボディのデコード失敗レスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST_BODY",
		Message:  "Request body is not valid JSON",
		Category: "validation",
		Action:   "Check the request format and try again.",
	})
}

// requireUser はコンテキストのユーザーIDからプロフィールを引く。
// 失敗時はエラーレスポンスを書き込んでfalseを返す。
func requireUser(w http.ResponseWriter, r *http.Request, users UserFinder) (*model.User, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return nil, false
	}

	user, err := users.FindByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return nil, false
	}
	if user == nil {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError())
		return nil, false
	}

	return user, true
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		middleware.WriteErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidCredentials, model.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case model.ErrCodePremiumRequired:
		return http.StatusForbidden
	case model.ErrCodeUserNotFound, model.ErrCodeEntryNotFound, model.ErrCodeCardNotFound:
		return http.StatusNotFound
	case model.ErrCodeBirthDateRequired:
		return http.StatusUnprocessableEntity
	case model.ErrCodeEmailTaken, model.ErrCodeAccountDisabled,
		model.ErrCodeInvalidStatus, model.ErrCodeIntentionRequired,
		model.ErrCodeMessageRequired, model.ErrCodeFieldTooLong,
		model.ErrCodeInvalidTimeFormat, model.ErrCodeInvalidDate,
		model.ErrCodeInvalidSign, model.ErrCodeInvalidDay,
		model.ErrCodeQueryTooShort:
		return http.StatusBadRequest
	case model.ErrCodeGeocodingFailed:
		return http.StatusServiceUnavailable
	case model.ErrCodeChartFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
