// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/starman/internal/auth"
	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Login(ctx context.Context, email, password string) (*auth.AuthResult, error)
	GoogleSignIn(ctx context.Context, input auth.GoogleSignInInput) (*auth.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Name           string   `json:"name"`
	BirthDate      string   `json:"birth_date"` // YYYY-MM-DD
	BirthTime      *string  `json:"birth_time"` // HH:MM
	BirthLocation  *string  `json:"birth_location"`
	BirthLatitude  *float64 `json:"birth_latitude"`
	BirthLongitude *float64 `json:"birth_longitude"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// googleSignInRequest はGoogleサインインリクエストのボディ。
// 出生情報は初回サインイン（ユーザー新規作成）時にのみ使われる。
type googleSignInRequest struct {
	IDToken        string   `json:"id_token"`
	Name           string   `json:"name"`
	BirthDate      *string  `json:"birth_date"` // YYYY-MM-DD
	BirthTime      *string  `json:"birth_time"` // HH:MM
	BirthLocation  *string  `json:"birth_location"`
	BirthLatitude  *float64 `json:"birth_latitude"`
	BirthLongitude *float64 `json:"birth_longitude"`
}

// refreshRequest はトークン更新リクエストのボディ。
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// userResponse はユーザープロフィールのAPIレスポンス。
type userResponse struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	Name                 string    `json:"name"`
	BirthDate            *string   `json:"birth_date"`
	BirthTime            *string   `json:"birth_time"`
	BirthLocation        *string   `json:"birth_location"`
	BirthLatitude        *float64  `json:"birth_latitude"`
	BirthLongitude       *float64  `json:"birth_longitude"`
	ZodiacSign           string    `json:"zodiac_sign"`
	AvatarURL            *string   `json:"avatar_url"`
	Timezone             string    `json:"timezone"`
	SubscriptionTier     string    `json:"subscription_tier"`
	IsPremium            bool      `json:"is_premium"`
	IsEmailVerified      bool      `json:"is_email_verified"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	DailyHoroscopeTime   string    `json:"daily_horoscope_time"`
	Theme                string    `json:"theme"`
	Language             string    `json:"language"`
	CreatedAt            time.Time `json:"created_at"`
}

// authResponse は認証成功時のAPIレスポンス。
type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         userResponse `json:"user"`
}

// Register はメール+パスワードでの新規登録を処理する。
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "MISSING_FIELDS",
			Message:  "email, password and name are required",
			Category: "validation",
			Action:   "Fill in all required fields and try again.",
		})
		return
	}
	if len(req.Password) < 8 {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "PASSWORD_TOO_SHORT",
			Message:  "Password must be at least 8 characters",
			Category: "validation",
			Action:   "Choose a longer password.",
		})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError())
		return
	}

	result, err := h.service.Register(r.Context(), auth.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		BirthDate:      birthDate,
		BirthTime:      req.BirthTime,
		BirthLocation:  req.BirthLocation,
		BirthLatitude:  req.BirthLatitude,
		BirthLongitude: req.BirthLongitude,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toAuthResponse(result))
}

// Login はメール+パスワードでのログインを処理する。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toAuthResponse(result))
}

// Google はGoogle IDトークンによるサインインを処理する。
// トークン検証の結果、未登録ユーザーなら新規作成される。
// POST /api/auth/google
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if req.IDToken == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "MISSING_ID_TOKEN",
			Message:  "id_token is required",
			Category: "validation",
			Action:   "Send the Google ID token obtained on the device.",
		})
		return
	}

	input := auth.GoogleSignInInput{
		IDToken:        req.IDToken,
		Name:           req.Name,
		BirthTime:      req.BirthTime,
		BirthLocation:  req.BirthLocation,
		BirthLatitude:  req.BirthLatitude,
		BirthLongitude: req.BirthLongitude,
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError())
			return
		}
		input.BirthDate = &birthDate
	}

	result, err := h.service.GoogleSignIn(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toAuthResponse(result))
}

// Refresh はリフレッシュトークンによるアクセストークン再発行を処理する。
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toAuthResponse(result))
}

// Me は現在のログインユーザー情報を返す。
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserResponse(user))
}

// toUserResponse はmodel.UserをAPIレスポンス形式に変換する。
func toUserResponse(user *model.User) userResponse {
	var birthDate *string
	if user.BirthDate != nil {
		s := user.BirthDate.Format("2006-01-02")
		birthDate = &s
	}

	return userResponse{
		ID:                   user.ID,
		Email:                user.Email,
		Name:                 user.Name,
		BirthDate:            birthDate,
		BirthTime:            user.BirthTime,
		BirthLocation:        user.BirthLocation,
		BirthLatitude:        user.BirthLatitude,
		BirthLongitude:       user.BirthLongitude,
		ZodiacSign:           user.ZodiacSign,
		AvatarURL:            user.AvatarURL,
		Timezone:             user.Timezone,
		SubscriptionTier:     string(user.SubscriptionTier),
		IsPremium:            user.IsPremium(),
		IsEmailVerified:      user.IsEmailVerified,
		NotificationsEnabled: user.NotificationsEnabled,
		DailyHoroscopeTime:   user.DailyHoroscopeTime,
		Theme:                user.Theme,
		Language:             user.Language,
		CreatedAt:            user.CreatedAt,
	}
}

// toAuthResponse はauth.AuthResultをAPIレスポンス形式に変換する。
func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "bearer",
		User:         toUserResponse(result.User),
	}
}
