package handler

import (
	"net/http"
	"strconv"

	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/transit"
)

// TransitServiceInterface はトランジットハンドラーが必要とするサービスインターフェース。
type TransitServiceInterface interface {
	Current(user *model.User) *transit.Overview
	Upcoming(user *model.User, days int) []transit.Status
}

// TransitHandler は天体トランジット関連のHTTPハンドラー。
type TransitHandler struct {
	service TransitServiceInterface
	users   UserFinder
}

// NewTransitHandler はTransitHandlerを生成する。
func NewTransitHandler(service TransitServiceInterface, users UserFinder) *TransitHandler {
	return &TransitHandler{
		service: service,
		users:   users,
	}
}

// upcomingTransitsResponse は今後のトランジット一覧のAPIレスポンス。
type upcomingTransitsResponse struct {
	Transits []transit.Status `json:"transits"`
}

// Current は現在進行中のトランジットと今日のエネルギーを返す。
// GET /api/transits/current
func (h *TransitHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	writeJSONResponse(w, http.StatusOK, h.service.Current(user))
}

// Upcoming は今後のトランジット一覧を返す。
// GET /api/transits/upcoming?days=
func (h *TransitHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	writeJSONResponse(w, http.StatusOK, upcomingTransitsResponse{Transits: h.service.Upcoming(user, days)})
}
