package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/moon"
)

// MoonServiceInterface は月相ハンドラーが必要とするサービスインターフェース。
type MoonServiceInterface interface {
	Current() moon.Phase
	PhaseFor(date time.Time) moon.Phase
	MonthlyCalendar(year, month int) (*moon.Calendar, error)
	Upcoming(days int) []moon.UpcomingPhase
}

// MoonHandler は月相関連のHTTPハンドラー。
type MoonHandler struct {
	service MoonServiceInterface
}

// NewMoonHandler はMoonHandlerを生成する。
func NewMoonHandler(service MoonServiceInterface) *MoonHandler {
	return &MoonHandler{
		service: service,
	}
}

// upcomingPhasesResponse は今後の主要月相一覧のAPIレスポンス。
type upcomingPhasesResponse struct {
	Phases []moon.UpcomingPhase `json:"phases"`
}

// Current は現在の月相を返す。
// GET /api/moon/current
func (h *MoonHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.service.Current())
}

// Phase は指定日の月相を返す。
// GET /api/moon/phase/{date}
func (h *MoonHandler) Phase(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError())
		return
	}

	writeJSONResponse(w, http.StatusOK, h.service.PhaseFor(date))
}

// Calendar は指定月の全日の月相カレンダーを返す。
// GET /api/moon/calendar/{year}/{month}
func (h *MoonHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, yearErr := strconv.Atoi(chi.URLParam(r, "year"))
	month, monthErr := strconv.Atoi(chi.URLParam(r, "month"))
	if yearErr != nil || monthErr != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError())
		return
	}

	calendar, err := h.service.MonthlyCalendar(year, month)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, calendar)
}

// Upcoming は今後の主要月相の一覧を返す。
// GET /api/moon/upcoming?days=
func (h *MoonHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	writeJSONResponse(w, http.StatusOK, upcomingPhasesResponse{Phases: h.service.Upcoming(days)})
}
