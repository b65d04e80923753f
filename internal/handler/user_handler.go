package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in user.ProfileUpdate) (*model.User, error)
	UpdatePreferences(ctx context.Context, userID string, in user.Preferences) (*model.User, error)
	UpdateNotificationToken(ctx context.Context, userID, token string) error
	// Withdraw はユーザーの退会処理を実行する。
	// journal_entries、tarot_history、userの順に一括削除する。
	Withdraw(ctx context.Context, userID string) error
}

// UserHandler はユーザープロフィール管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// profileUpdateRequest はプロフィール更新リクエストのボディ。
// nilのフィールドは変更されない。
type profileUpdateRequest struct {
	Name           *string  `json:"name"`
	AvatarURL      *string  `json:"avatar_url"`
	Timezone       *string  `json:"timezone"`
	BirthDate      *string  `json:"birth_date"` // YYYY-MM-DD
	BirthTime      *string  `json:"birth_time"` // HH:MM
	BirthLocation  *string  `json:"birth_location"`
	BirthLatitude  *float64 `json:"birth_latitude"`
	BirthLongitude *float64 `json:"birth_longitude"`
}

// preferencesRequest は通知・表示設定更新リクエストのボディ。
type preferencesRequest struct {
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	DailyHoroscopeTime   *string `json:"daily_horoscope_time"` // HH:MM
	Theme                *string `json:"theme"`
	Language             *string `json:"language"`
}

// notificationTokenRequest はプッシュ通知トークン更新リクエストのボディ。
type notificationTokenRequest struct {
	Token string `json:"token"`
}

// messageResponse は操作結果メッセージのみのレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// Me は現在のユーザープロフィールを返す。
// GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserResponse(profile))
}

// UpdateMe はプロフィールを部分更新する。
// 出生日が変わると太陽星座も再計算される。
// PUT /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	update := user.ProfileUpdate{
		Name:           req.Name,
		AvatarURL:      req.AvatarURL,
		Timezone:       req.Timezone,
		BirthTime:      req.BirthTime,
		BirthLocation:  req.BirthLocation,
		BirthLatitude:  req.BirthLatitude,
		BirthLongitude: req.BirthLongitude,
	}
	if req.BirthDate != nil {
		birthDate, parseErr := time.Parse("2006-01-02", *req.BirthDate)
		if parseErr != nil {
			middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError())
			return
		}
		update.BirthDate = &birthDate
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserResponse(profile))
}

// UpdatePreferences は通知・表示設定を部分更新する。
// PUT /api/users/me/preferences
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	profile, err := h.service.UpdatePreferences(r.Context(), userID, user.Preferences{
		NotificationsEnabled: req.NotificationsEnabled,
		DailyHoroscopeTime:   req.DailyHoroscopeTime,
		Theme:                req.Theme,
		Language:             req.Language,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserResponse(profile))
}

// UpdateNotificationToken はプッシュ通知トークンを更新する。
// PUT /api/users/me/notification-token
func (h *UserHandler) UpdateNotificationToken(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	var req notificationTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.UpdateNotificationToken(r.Context(), userID, req.Token); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, messageResponse{Message: "Token updated"})
}

// DeleteMe はアカウントと関連データを削除する。
// DELETE /api/users/me
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
