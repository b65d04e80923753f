package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/starman/internal/affirmation"
	"github.com/hitoshi/starman/internal/model"
)

// AffirmationServiceInterface はアファメーションハンドラーが必要とするサービスインターフェース。
type AffirmationServiceInterface interface {
	Categories() []affirmation.Category
	Daily(ctx context.Context, user *model.User, signID, category string) (*affirmation.DailyPick, error)
}

// AffirmationHandler はアファメーション関連のHTTPハンドラー。
type AffirmationHandler struct {
	service AffirmationServiceInterface
	users   UserFinder
}

// NewAffirmationHandler はAffirmationHandlerを生成する。
func NewAffirmationHandler(service AffirmationServiceInterface, users UserFinder) *AffirmationHandler {
	return &AffirmationHandler{
		service: service,
		users:   users,
	}
}

// categoryListResponse はカテゴリ一覧のAPIレスポンス。
type categoryListResponse struct {
	Categories []affirmation.Category `json:"categories"`
}

// Categories はアファメーションのカテゴリ一覧を返す。
// GET /api/affirmations/categories
func (h *AffirmationHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, categoryListResponse{Categories: h.service.Categories()})
}

// Daily は今日の1件を返す。星座はプロフィールの太陽星座を使う。
// GET /api/affirmations/daily?category=
func (h *AffirmationHandler) Daily(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	category := r.URL.Query().Get("category")
	pick, err := h.service.Daily(r.Context(), user, user.ZodiacSign, category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, pick)
}
