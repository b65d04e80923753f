package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Auth
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	GoogleClientID  string // 未設定の場合audience検証をスキップ

	// Ephemeris
	EphemerisDir string // VSOP87データファイルの配置先。未設定なら惑星は縮退動作

	// Gemini
	GeminiAPIKey string // 未設定の場合AI生成は無効（静的フォールバック）
	GeminiModel  string

	// External APIs
	NominatimBaseURL    string
	HoroscopeAPIBaseURL string
	AztroAPIURL         string
	ExternalTimeout     time.Duration

	// RevenueCat
	RevenueCatWebhookSecret string

	// Rate Limit
	RateLimitGeneral int
	RateLimitAI      int

	// Worker
	WarmInterval         time.Duration
	WarmMaxConcurrent    int
	CleanupRetentionDays int

	// Server
	ServerPort  string
	Environment string // development | production
	LogLevel    string

	// CORS
	CORSAllowedOrigin string
}

// IsDevelopment は開発環境向けの限定機能（devエンドポイント等）を有効にするかを返す。
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.AccessTokenTTL = time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 10080)) * time.Minute
	cfg.RefreshTokenTTL = time.Duration(getEnvInt("REFRESH_TOKEN_TTL_HOURS", 720)) * time.Hour
	cfg.GoogleClientID = getEnvString("GOOGLE_CLIENT_ID", "")
	cfg.EphemerisDir = getEnvString("EPHEMERIS_DIR", "")
	cfg.GeminiAPIKey = getEnvString("GEMINI_API_KEY", "")
	cfg.GeminiModel = getEnvString("GEMINI_MODEL", "gemini-2.5-flash-lite")
	cfg.NominatimBaseURL = getEnvString("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.HoroscopeAPIBaseURL = getEnvString("HOROSCOPE_API_BASE_URL", "https://horoscope-app-api.vercel.app")
	cfg.AztroAPIURL = getEnvString("AZTRO_API_URL", "https://aztro.sameerkumar.website")
	cfg.ExternalTimeout = getEnvDuration("EXTERNAL_TIMEOUT", 10*time.Second)
	cfg.RevenueCatWebhookSecret = getEnvString("REVENUECAT_WEBHOOK_SECRET", "")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitAI = getEnvInt("RATE_LIMIT_AI", 10)
	cfg.WarmInterval = getEnvDuration("WARM_INTERVAL", 24*time.Hour)
	cfg.WarmMaxConcurrent = getEnvInt("WARM_MAX_CONCURRENT", 4)
	cfg.CleanupRetentionDays = getEnvInt("CLEANUP_RETENTION_DAYS", 365)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.Environment = getEnvString("ENVIRONMENT", "production")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
