package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/horoscope"
)

// HoroscopeServiceInterface はホロスコープハンドラーが必要とするサービスインターフェース。
type HoroscopeServiceInterface interface {
	Signs() []astro.Sign
	Daily(ctx context.Context, signID, day string) (*horoscope.Daily, error)
	Weekly(ctx context.Context, signID string) (*horoscope.Weekly, error)
	Compatibility(ctx context.Context, sign1ID, sign2ID string) (*horoscope.Compatibility, error)
}

// HoroscopeHandler はホロスコープ関連のHTTPハンドラー。
type HoroscopeHandler struct {
	service HoroscopeServiceInterface
}

// NewHoroscopeHandler はHoroscopeHandlerを生成する。
func NewHoroscopeHandler(service HoroscopeServiceInterface) *HoroscopeHandler {
	return &HoroscopeHandler{
		service: service,
	}
}

// signListResponse は星座一覧のAPIレスポンス。
type signListResponse struct {
	Signs []astro.Sign `json:"signs"`
}

// Signs は12星座の一覧を返す。
// GET /api/horoscope/signs
func (h *HoroscopeHandler) Signs(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, signListResponse{Signs: h.service.Signs()})
}

// Daily はデイリーホロスコープを返す。
// GET /api/horoscope/daily/{sign}?day=today|tomorrow|yesterday
func (h *HoroscopeHandler) Daily(w http.ResponseWriter, r *http.Request) {
	signID := chi.URLParam(r, "sign")
	day := r.URL.Query().Get("day")

	daily, err := h.service.Daily(r.Context(), signID, day)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, daily)
}

// Weekly はウィークリーホロスコープを返す。
// GET /api/horoscope/weekly/{sign}
func (h *HoroscopeHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	signID := chi.URLParam(r, "sign")

	weekly, err := h.service.Weekly(r.Context(), signID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, weekly)
}

// Compatibility は2星座の相性診断を返す。引数の順序に依らず対称。
// GET /api/horoscope/compatibility/{sign1}/{sign2}
func (h *HoroscopeHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	sign1 := chi.URLParam(r, "sign1")
	sign2 := chi.URLParam(r, "sign2")

	compat, err := h.service.Compatibility(r.Context(), sign1, sign2)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, compat)
}
