package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/middleware"
)

// HealthChecker はDB疎通確認を行うインターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.AccessTokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// ヘルスチェック・メトリクス
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer

	// 認証・ユーザー
	AuthService AuthServiceInterface
	UserService UserServiceInterface
	UserFinder  UserFinder

	// チャート・レポート
	ChartService   ChartServiceInterface
	ReadingService ReadingServiceInterface
	ReportRenderer ReportRendererInterface

	// コンテンツ
	JournalService     JournalServiceInterface
	TarotService       TarotServiceInterface
	HoroscopeService   HoroscopeServiceInterface
	NumerologyService  NumerologyServiceInterface
	MoonService        MoonServiceInterface
	TransitService     TransitServiceInterface
	AffirmationService AffirmationServiceInterface
	SynastryService    SynastryServiceInterface
	ChatService        ChatServiceInterface
	GeocodingClient    GeocodingClientInterface

	// 課金
	SubscriptionService SubscriptionServiceInterface
	WebhookSecret       string
	DevMode             bool
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → AuthMiddleware → RateLimitMiddleware(GeneralMiddleware)
//
// 認証ルート（/api/auth/*）、エフェメリスヘルスチェック、RevenueCat Webhookは
// 認証ミドルウェアの外に配置する。AI生成を伴うエンドポイントは
// AIMiddlewareで追加のレート制限をかける。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェアを最上位に適用
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))

	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)
	chartHandler := NewChartHandler(deps.ChartService, deps.ReadingService)
	reportHandler := NewReportHandler(deps.ChartService, deps.ReportRenderer, deps.UserFinder)
	journalHandler := NewJournalHandler(deps.JournalService)
	tarotHandler := NewTarotHandler(deps.TarotService, deps.UserFinder)
	horoscopeHandler := NewHoroscopeHandler(deps.HoroscopeService)
	numerologyHandler := NewNumerologyHandler(deps.NumerologyService, deps.UserFinder)
	moonHandler := NewMoonHandler(deps.MoonService)
	transitHandler := NewTransitHandler(deps.TransitService, deps.UserFinder)
	affirmationHandler := NewAffirmationHandler(deps.AffirmationService, deps.UserFinder)
	synastryHandler := NewSynastryHandler(deps.SynastryService, deps.UserFinder)
	chatHandler := NewChatHandler(deps.ChatService, deps.UserFinder)
	geocodingHandler := NewGeocodingHandler(deps.GeocodingClient)
	subHandler := NewSubscriptionHandler(deps.SubscriptionService, deps.UserFinder, deps.WebhookSecret, deps.DevMode)

	// --- 認証不要のルート ---

	// コンテナオーケストレーション用のヘルスチェック
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
				writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Prometheusスクレイプエンドポイント
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// 認証ルート（トークン発行系）
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/google", authHandler.Google)
		r.Post("/refresh", authHandler.Refresh)
	})

	// エフェメリス自己診断（監視システムから叩くため認証不要）
	r.Get("/api/natal-chart/health", chartHandler.Health)

	// RevenueCat Webhook（Bearerシークレットで保護される）
	r.Post("/api/subscription/webhook/revenuecat", subHandler.Webhook)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/auth/me", authHandler.Me)

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.UpdateMe)
			r.Put("/me/preferences", userHandler.UpdatePreferences)
			r.Put("/me/notification-token", userHandler.UpdateNotificationToken)
			r.Delete("/me", userHandler.DeleteMe)
		})

		// ネイタルチャート
		r.Route("/api/natal-chart", func(r chi.Router) {
			r.Post("/calculate", chartHandler.Calculate)
			// POST /api/natal-chart/ai-reading - AI生成（AI専用レート制限を追加）
			r.With(deps.RateLimiter.AIMiddleware()).Post("/ai-reading", chartHandler.AIReading)
			r.Get("/report", reportHandler.Generate)
		})

		// ジャーナル
		r.Route("/api/journal", func(r chi.Router) {
			r.Post("/", journalHandler.Create)
			r.Get("/", journalHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", journalHandler.Get)
				r.Put("/", journalHandler.Update)
				r.Delete("/", journalHandler.Delete)
			})
		})

		// タロット
		r.Route("/api/tarot", func(r chi.Router) {
			r.Get("/cards", tarotHandler.Cards)
			r.Get("/cards/{id}", tarotHandler.Card)
			r.Get("/daily", tarotHandler.Daily)
			r.Post("/spread", tarotHandler.Spread)
			r.Get("/history", tarotHandler.History)
			r.With(deps.RateLimiter.AIMiddleware()).Post("/ai-reading", tarotHandler.AIReading)
		})

		// ホロスコープ
		r.Route("/api/horoscope", func(r chi.Router) {
			r.Get("/signs", horoscopeHandler.Signs)
			r.Get("/daily/{sign}", horoscopeHandler.Daily)
			r.Get("/weekly/{sign}", horoscopeHandler.Weekly)
			r.Get("/compatibility/{sign1}/{sign2}", horoscopeHandler.Compatibility)
		})

		// 数秘術
		r.Route("/api/numerology", func(r chi.Router) {
			r.Get("/profile", numerologyHandler.Profile)
			r.Get("/daily", numerologyHandler.Daily)
		})

		// 月相
		r.Route("/api/moon", func(r chi.Router) {
			r.Get("/current", moonHandler.Current)
			r.Get("/phase/{date}", moonHandler.Phase)
			r.Get("/calendar/{year}/{month}", moonHandler.Calendar)
			r.Get("/upcoming", moonHandler.Upcoming)
		})

		// トランジット
		r.Route("/api/transits", func(r chi.Router) {
			r.Get("/current", transitHandler.Current)
			r.Get("/upcoming", transitHandler.Upcoming)
		})

		// アファメーション
		r.Route("/api/affirmations", func(r chi.Router) {
			r.Get("/daily", affirmationHandler.Daily)
			r.Get("/categories", affirmationHandler.Categories)
		})

		// シナストリー（AI生成を含むためAI専用レート制限を追加）
		r.With(deps.RateLimiter.AIMiddleware()).Post("/api/synastry/compatibility", synastryHandler.Compatibility)

		// チャット
		r.Route("/api/chat", func(r chi.Router) {
			r.With(deps.RateLimiter.AIMiddleware()).Post("/message", chatHandler.Message)
			r.Get("/suggestions", chatHandler.Suggestions)
		})

		// ジオコーディング
		r.Get("/api/geocoding/search", geocodingHandler.Search)

		// 課金
		r.Route("/api/subscription", func(r chi.Router) {
			r.Get("/status", subHandler.Status)
			r.Post("/restore", subHandler.Restore)

			// 開発環境専用（本番環境では404を返す）
			r.Post("/grant-premium", subHandler.Grant)
			r.Post("/revoke-premium", subHandler.Revoke)
		})
	})

	return r
}
