// Package model はドメインモデルを定義する。
package model

import "time"

// AuthProvider は認証方式を表す。
type AuthProvider string

const (
	// AuthProviderEmail はメールアドレス+パスワード認証。
	AuthProviderEmail AuthProvider = "email"
	// AuthProviderGoogle はGoogle IDトークン認証。
	AuthProviderGoogle AuthProvider = "google"
)

// SubscriptionTier は課金プランを表す。
type SubscriptionTier string

const (
	// TierFree は無料プラン。
	TierFree SubscriptionTier = "free"
	// TierPremium はプレミアムプラン。
	TierPremium SubscriptionTier = "premium"
)

// User はサービス利用ユーザーを表す。
// 出生情報（生年月日・出生時刻・出生地座標）はネイタルチャート計算の入力になる。
type User struct {
	ID             string
	Email          string
	PasswordHash   *string // Google認証ユーザーはnil
	GoogleID       *string
	AuthProvider   AuthProvider
	Name           string
	BirthDate      *time.Time // 日付のみ有効（UTC 00:00）
	BirthTime      *string    // "HH:MM"
	BirthLocation  *string
	BirthLatitude  *float64
	BirthLongitude *float64
	ZodiacSign     string // 生年月日から導出される太陽星座

	AvatarURL *string
	Timezone  string // デフォルト "UTC"

	SubscriptionTier      SubscriptionTier
	SubscriptionExpiresAt *time.Time
	SubscriptionPlatform  *string // "ios", "android"
	SubscriptionProductID *string
	RevenueCatID          *string

	IsEmailVerified      bool
	IsActive             bool
	NotificationsEnabled bool
	NotificationToken    *string
	DailyHoroscopeTime   string // "HH:MM"、デフォルト "08:00"
	Theme                string // デフォルト "dark"
	Language             string // デフォルト "en"

	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

// IsPremium はプレミアム特典が現在有効かを返す。
// tierがpremiumでも有効期限切れならfalseになる。
func (u *User) IsPremium() bool {
	if u.SubscriptionTier != TierPremium {
		return false
	}
	if u.SubscriptionExpiresAt == nil {
		return false
	}
	return u.SubscriptionExpiresAt.After(time.Now())
}

// HasBirthData はネイタルチャート計算に必要な出生情報が揃っているかを返す。
// 出生時刻と座標は欠けていてもよい（デフォルト値で補完される）。
func (u *User) HasBirthData() bool {
	return u.BirthDate != nil
}
