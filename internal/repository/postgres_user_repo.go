package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// userColumns はSELECT句で使用するusersテーブルの全カラム。
// Scanの順序とペアで管理する。
const userColumns = `id, email, password_hash, google_id, auth_provider, name,
	birth_date, birth_time, birth_location, birth_latitude, birth_longitude, zodiac_sign,
	avatar_url, timezone,
	subscription_tier, subscription_expires_at, subscription_platform, subscription_product_id, revenuecat_id,
	is_email_verified, is_active, notifications_enabled, notification_token,
	daily_horoscope_time, theme, language,
	created_at, updated_at, last_login_at`

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// scanUser は1行分のユーザーをScanする。
func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.GoogleID, &user.AuthProvider, &user.Name,
		&user.BirthDate, &user.BirthTime, &user.BirthLocation, &user.BirthLatitude, &user.BirthLongitude, &user.ZodiacSign,
		&user.AvatarURL, &user.Timezone,
		&user.SubscriptionTier, &user.SubscriptionExpiresAt, &user.SubscriptionPlatform, &user.SubscriptionProductID, &user.RevenueCatID,
		&user.IsEmailVerified, &user.IsActive, &user.NotificationsEnabled, &user.NotificationToken,
		&user.DailyHoroscopeTime, &user.Theme, &user.Language,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByGoogleID はGoogleアカウントIDでユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by google ID: %w", err)
	}
	return user, nil
}

// FindByRevenueCatID はRevenueCatのapp_user_idでユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByRevenueCatID(ctx context.Context, revenueCatID string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE revenuecat_id = $1`, revenueCatID)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by revenuecat ID: %w", err)
	}
	return user, nil
}

// Create はユーザーを作成する。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			id, email, password_hash, google_id, auth_provider, name,
			birth_date, birth_time, birth_location, birth_latitude, birth_longitude, zodiac_sign,
			avatar_url, timezone,
			subscription_tier, subscription_expires_at, subscription_platform, subscription_product_id, revenuecat_id,
			is_email_verified, is_active, notifications_enabled, notification_token,
			daily_horoscope_time, theme, language,
			created_at, updated_at, last_login_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14,
			$15, $16, $17, $18, $19,
			$20, $21, $22, $23,
			$24, $25, $26,
			$27, $28, $29
		)`,
		user.ID, user.Email, user.PasswordHash, user.GoogleID, user.AuthProvider, user.Name,
		user.BirthDate, user.BirthTime, user.BirthLocation, user.BirthLatitude, user.BirthLongitude, user.ZodiacSign,
		user.AvatarURL, user.Timezone,
		user.SubscriptionTier, user.SubscriptionExpiresAt, user.SubscriptionPlatform, user.SubscriptionProductID, user.RevenueCatID,
		user.IsEmailVerified, user.IsActive, user.NotificationsEnabled, user.NotificationToken,
		user.DailyHoroscopeTime, user.Theme, user.Language,
		user.CreatedAt, user.UpdatedAt, user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update はユーザーの全フィールドを上書き更新する。
func (r *PostgresUserRepo) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			email = $2, password_hash = $3, google_id = $4, auth_provider = $5, name = $6,
			birth_date = $7, birth_time = $8, birth_location = $9, birth_latitude = $10, birth_longitude = $11, zodiac_sign = $12,
			avatar_url = $13, timezone = $14,
			subscription_tier = $15, subscription_expires_at = $16, subscription_platform = $17, subscription_product_id = $18, revenuecat_id = $19,
			is_email_verified = $20, is_active = $21, notifications_enabled = $22, notification_token = $23,
			daily_horoscope_time = $24, theme = $25, language = $26,
			updated_at = $27, last_login_at = $28
		WHERE id = $1`,
		user.ID,
		user.Email, user.PasswordHash, user.GoogleID, user.AuthProvider, user.Name,
		user.BirthDate, user.BirthTime, user.BirthLocation, user.BirthLatitude, user.BirthLongitude, user.ZodiacSign,
		user.AvatarURL, user.Timezone,
		user.SubscriptionTier, user.SubscriptionExpiresAt, user.SubscriptionPlatform, user.SubscriptionProductID, user.RevenueCatID,
		user.IsEmailVerified, user.IsActive, user.NotificationsEnabled, user.NotificationToken,
		user.DailyHoroscopeTime, user.Theme, user.Language,
		user.UpdatedAt, user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", user.ID)
	}
	return nil
}

// UpdateLastLogin は最終ログイン日時を更新する。
func (r *PostgresUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのユーザーを削除する。
// 関連するjournal_entries、tarot_historyはCASCADE削除される。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
