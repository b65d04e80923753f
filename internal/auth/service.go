// Package auth はトークン発行、パスワード認証、Googleサインインを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
)

// TokenIssuer はトークンの発行とリフレッシュトークン検証のインターフェース。
type TokenIssuer interface {
	IssueTokenPair(userID string) (*TokenPair, error)
	VerifyRefreshToken(tokenString string) (string, error)
}

// IDTokenVerifier は外部IdPのIDトークン検証のインターフェース。
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleUserInfo, error)
}

// RegisterInput はメール+パスワード登録の入力。
type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	BirthDate      time.Time
	BirthTime      *string
	BirthLocation  *string
	BirthLatitude  *float64
	BirthLongitude *float64
}

// GoogleSignInInput はGoogleサインインの入力。
// 出生情報は新規ユーザーの場合のみ必須。
type GoogleSignInInput struct {
	IDToken        string
	Name           string
	BirthDate      *time.Time
	BirthTime      *string
	BirthLocation  *string
	BirthLatitude  *float64
	BirthLongitude *float64
}

// AuthResult は認証成功時のトークンとユーザーを表す。
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users  repository.UserRepository
	tokens TokenIssuer
	google IDTokenVerifier
}

// NewService はServiceを生成する。
func NewService(users repository.UserRepository, tokens TokenIssuer, google IDTokenVerifier) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		google: google,
	}
}

// Register はメール+パスワードで新規ユーザーを登録する。
// 太陽星座は生年月日から日付範囲で導出する。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// 1. メールアドレスの重複チェック
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailTakenError()
	}

	// 2. パスワードをハッシュ化
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. ユーザーを作成
	now := time.Now()
	user := &model.User{
		ID:             uuid.New().String(),
		Email:          input.Email,
		PasswordHash:   &hash,
		AuthProvider:   model.AuthProviderEmail,
		Name:           input.Name,
		BirthDate:      &input.BirthDate,
		BirthTime:      input.BirthTime,
		BirthLocation:  input.BirthLocation,
		BirthLatitude:  input.BirthLatitude,
		BirthLongitude: input.BirthLongitude,
		ZodiacSign:     astro.SunSignFromDate(input.BirthDate),

		Timezone:             "UTC",
		SubscriptionTier:     model.TierFree,
		IsActive:             true,
		NotificationsEnabled: true,
		DailyHoroscopeTime:   "08:00",
		Theme:                "dark",
		Language:             "en",

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
		slog.String("zodiac_sign", user.ZodiacSign),
	)

	return s.issueFor(user)
}

// Login はメール+パスワードでログインする。
// メール未登録とパスワード不一致は同じエラーになる。
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := CheckPassword(*user.PasswordHash, password); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if !user.IsActive {
		return nil, model.NewAccountDisabledError()
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	slog.Info("user logged in", slog.String("user_id", user.ID))

	return s.issueFor(user)
}

// GoogleSignIn はGoogle IDトークンでサインインする。
// google_idで既存ユーザーを特定し、見つからなければメールアドレスで
// 既存アカウントに紐付け、それもなければ新規作成する。
// 新規作成には生年月日が必須になる。
func (s *Service) GoogleSignIn(ctx context.Context, input GoogleSignInInput) (*AuthResult, error) {
	// 1. IDトークンを検証
	info, err := s.google.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		slog.Debug("google token verification failed", slog.String("error", err.Error()))
		return nil, model.NewInvalidTokenError()
	}

	// 2. google_idで既存ユーザーを検索
	user, err := s.users.FindByGoogleID(ctx, info.GoogleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by google ID: %w", err)
	}

	now := time.Now()

	if user == nil {
		// 3a. メールアドレスで既存ユーザーを検索し、Googleアカウントを紐付け
		user, err = s.users.FindByEmail(ctx, info.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to find user by email: %w", err)
		}

		if user != nil {
			user.GoogleID = &info.GoogleID
			user.UpdatedAt = now
			if err := s.users.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to link google account: %w", err)
			}
			slog.Info("google account linked", slog.String("user_id", user.ID))
		} else {
			// 3b. 新規ユーザー: 出生日が必須
			if input.BirthDate == nil {
				return nil, model.NewBirthDateRequiredError()
			}

			name := input.Name
			if name == "" {
				name = info.Name
			}

			user = &model.User{
				ID:             uuid.New().String(),
				Email:          info.Email,
				GoogleID:       &info.GoogleID,
				AuthProvider:   model.AuthProviderGoogle,
				Name:           name,
				BirthDate:      input.BirthDate,
				BirthTime:      input.BirthTime,
				BirthLocation:  input.BirthLocation,
				BirthLatitude:  input.BirthLatitude,
				BirthLongitude: input.BirthLongitude,
				ZodiacSign:     astro.SunSignFromDate(*input.BirthDate),

				Timezone:             "UTC",
				SubscriptionTier:     model.TierFree,
				IsEmailVerified:      info.EmailVerified,
				IsActive:             true,
				NotificationsEnabled: true,
				DailyHoroscopeTime:   "08:00",
				Theme:                "dark",
				Language:             "en",

				CreatedAt: now,
				UpdatedAt: now,
			}
			if info.Picture != "" {
				user.AvatarURL = &info.Picture
			}

			if err := s.users.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
			slog.Info("new user created via google", slog.String("user_id", user.ID))
		}
	}

	if !user.IsActive {
		return nil, model.NewAccountDisabledError()
	}

	// 4. 最終ログイン日時を更新
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	return s.issueFor(user)
}

// Refresh はリフレッシュトークンで新しいトークンペアを発行する。
// 両トークンがローテーションされる。
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		slog.Debug("refresh token verification failed", slog.String("error", err.Error()))
		return nil, model.NewInvalidTokenError()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, model.NewInvalidTokenError()
	}

	return s.issueFor(user)
}

// CurrentUser はユーザーIDから現在のプロフィールを取得する。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// issueFor はユーザー向けのトークンペアを発行しAuthResultを組み立てる。
func (s *Service) issueFor(user *model.User) (*AuthResult, error) {
	pair, err := s.tokens.IssueTokenPair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &AuthResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// compile-time interface checks
var (
	_ TokenIssuer     = (*TokenService)(nil)
	_ IDTokenVerifier = (*GoogleVerifier)(nil)
)
