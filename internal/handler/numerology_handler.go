package handler

import (
	"net/http"

	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/numerology"
)

// NumerologyServiceInterface は数秘術ハンドラーが必要とするサービスインターフェース。
type NumerologyServiceInterface interface {
	Profile(user *model.User) (*numerology.Profile, error)
	Daily(user *model.User) (*numerology.DailyNumber, error)
}

// NumerologyHandler は数秘術関連のHTTPハンドラー。
type NumerologyHandler struct {
	service NumerologyServiceInterface
	users   UserFinder
}

// NewNumerologyHandler はNumerologyHandlerを生成する。
func NewNumerologyHandler(service NumerologyServiceInterface, users UserFinder) *NumerologyHandler {
	return &NumerologyHandler{
		service: service,
		users:   users,
	}
}

// Profile は出生日から導出した数秘術プロフィールを返す。
// GET /api/numerology/profile
func (h *NumerologyHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	profile, err := h.service.Profile(user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, profile)
}

// Daily は今日のパーソナルデーナンバーを返す。
// GET /api/numerology/daily
func (h *NumerologyHandler) Daily(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	daily, err := h.service.Daily(user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, daily)
}
