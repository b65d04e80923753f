package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/subscription"
)

// SubscriptionServiceInterface は課金ハンドラーが必要とするサービスインターフェース。
type SubscriptionServiceInterface interface {
	Status(user *model.User) subscription.Status
	// HandleWebhook はRevenueCatのWebhookイベントを処理する。
	// 未知ユーザーのイベントも成功として扱う（Webhookの再送ストームを防ぐ）。
	HandleWebhook(ctx context.Context, event subscription.WebhookEvent) (*subscription.WebhookResult, error)
	Restore(ctx context.Context, userID, revenueCatID, platform string) error
	GrantPremium(ctx context.Context, userID string, days int) (*model.User, error)
	RevokePremium(ctx context.Context, userID string) (*model.User, error)
}

// SubscriptionHandler は課金管理のHTTPハンドラー。
type SubscriptionHandler struct {
	service       SubscriptionServiceInterface
	users         UserFinder
	webhookSecret string
	devMode       bool
}

// NewSubscriptionHandler はSubscriptionHandlerを生成する。
// devModeがtrueのときだけ開発用のgrant/revokeエンドポイントが有効になる。
func NewSubscriptionHandler(service SubscriptionServiceInterface, users UserFinder, webhookSecret string, devMode bool) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:       service,
		users:         users,
		webhookSecret: webhookSecret,
		devMode:       devMode,
	}
}

// restoreRequest は購入復元リクエストのボディ。
type restoreRequest struct {
	RevenueCatID string `json:"revenuecat_id"`
	Platform     string `json:"platform"`
}

// grantRequest は開発用プレミアム付与リクエストのボディ。
type grantRequest struct {
	Days int `json:"days"`
}

// Status は課金状態を返す。
// GET /api/subscription/status
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	writeJSONResponse(w, http.StatusOK, h.service.Status(user))
}

// Webhook はRevenueCatからの課金イベントを受け取る。
// Bearerトークンが設定済みシークレットと一致しない場合は401。
// POST /api/subscription/webhook/revenuecat
func (h *SubscriptionHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeWebhook(r) {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "WEBHOOK_UNAUTHORIZED",
			Message:  "Invalid webhook credentials",
			Category: "auth",
			Action:   "Configure the RevenueCat webhook authorization header.",
		})
		return
	}

	var event subscription.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	result, err := h.service.HandleWebhook(r.Context(), event)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// Restore はRevenueCat IDを現在のユーザーに紐付ける。
// POST /api/subscription/restore
func (h *SubscriptionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.Restore(r.Context(), userID, req.RevenueCatID, req.Platform); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, messageResponse{Message: "Purchases restored"})
}

// Grant は開発環境専用のプレミアム付与エンドポイント。
// POST /api/subscription/grant-premium
func (h *SubscriptionHandler) Grant(w http.ResponseWriter, r *http.Request) {
	if !h.requireDevMode(w) {
		return
	}

	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, err := h.service.GrantPremium(r.Context(), userID, req.Days)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, h.service.Status(user))
}

// Revoke は開発環境専用のプレミアム剥奪エンドポイント。
// POST /api/subscription/revoke-premium
func (h *SubscriptionHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if !h.requireDevMode(w) {
		return
	}

	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	user, err := h.service.RevokePremium(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, h.service.Status(user))
}

// authorizeWebhook はAuthorizationヘッダーのBearerトークンを検証する。
// シークレット未設定の場合は認証をスキップする（開発用）。
func (h *SubscriptionHandler) authorizeWebhook(r *http.Request) bool {
	if h.webhookSecret == "" {
		return true
	}

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.webhookSecret)) == 1
}

// requireDevMode は開発環境でなければ404を書き込んでfalseを返す。
// エンドポイントの存在自体を本番では隠す。
func (h *SubscriptionHandler) requireDevMode(w http.ResponseWriter) bool {
	if !h.devMode {
		middleware.WriteErrorResponse(w, http.StatusNotFound, &model.APIError{
			Code:     "NOT_FOUND",
			Message:  "Not found",
			Category: "resource",
			Action:   "Check the request URL.",
		})
		return false
	}
	return true
}
