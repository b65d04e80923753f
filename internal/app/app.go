package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/starman/internal/affirmation"
	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/auth"
	"github.com/hitoshi/starman/internal/chat"
	"github.com/hitoshi/starman/internal/config"
	"github.com/hitoshi/starman/internal/database"
	"github.com/hitoshi/starman/internal/gemini"
	"github.com/hitoshi/starman/internal/geocoding"
	"github.com/hitoshi/starman/internal/handler"
	"github.com/hitoshi/starman/internal/horoscope"
	"github.com/hitoshi/starman/internal/journal"
	"github.com/hitoshi/starman/internal/logger"
	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/moon"
	"github.com/hitoshi/starman/internal/numerology"
	"github.com/hitoshi/starman/internal/report"
	"github.com/hitoshi/starman/internal/repository"
	"github.com/hitoshi/starman/internal/security"
	"github.com/hitoshi/starman/internal/subscription"
	"github.com/hitoshi/starman/internal/synastry"
	"github.com/hitoshi/starman/internal/tarot"
	"github.com/hitoshi/starman/internal/transit"
	"github.com/hitoshi/starman/internal/user"
	"github.com/hitoshi/starman/internal/worker/cleanup"
	"github.com/hitoshi/starman/internal/worker/warm"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, "")

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルでロガーを再構成する
	logger.SetupDefault(w, cfg.LogLevel)

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("environment", cfg.Environment),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	journalRepo := repository.NewPostgresJournalRepo(db)
	tarotRepo := repository.NewPostgresTarotRepo(db)
	contentRepo := repository.NewPostgresDailyContentRepo(db)

	// 3. セキュリティサービスと外部API用HTTPクライアントの初期化
	sanitizer := security.NewContentSanitizer()
	externalClient, err := newExternalHTTPClient(cfg)
	if err != nil {
		return err
	}

	// 4. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 5. AI生成クライアントの初期化
	ai := gemini.NewClient(externalClient, slog.Default(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if !ai.Enabled() {
		slog.Warn("GEMINI_API_KEY is not set, AI generation falls back to static content")
	}

	// 6. ドメインサービスの初期化
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	googleVerifier := auth.NewGoogleVerifier(auth.GoogleVerifierConfig{
		ClientID: cfg.GoogleClientID,
	})
	authService := auth.NewService(userRepo, tokenService, googleVerifier)

	readings := astro.NewReadingTable()
	chartService := astro.NewService(astro.NewVSOP87Source(cfg.EphemerisDir), readings, collector)
	readingService := astro.NewReadingService(readings, ai, collector)

	contentCache := cache.New(time.Hour, 10*time.Minute)
	horoscopeFetcher := horoscope.NewExternalClient(
		externalClient, slog.Default(), cfg.HoroscopeAPIBaseURL, cfg.AztroAPIURL,
	)

	journalService := journal.NewService(journalRepo, sanitizer)
	tarotService := tarot.NewService(tarotRepo, ai, collector)
	horoscopeService := horoscope.NewService(horoscopeFetcher, contentRepo, contentCache, collector)
	affirmationService := affirmation.NewService(contentRepo, ai, contentCache, collector)
	synastryService := synastry.NewService(ai, collector)
	chatService := chat.NewService(ai, collector)
	subscriptionService := subscription.NewService(userRepo)
	userService := user.NewService(userRepo, journalRepo, tarotRepo, sanitizer)

	// 7. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigFromPerMinute(cfg.RateLimitGeneral, cfg.RateLimitAI),
	)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		TokenVerifier:     tokenService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,

		HealthChecker: db,
		Gatherer:      registry,

		AuthService: authService,
		UserService: userService,
		UserFinder:  userRepo,

		ChartService:   chartService,
		ReadingService: readingService,
		ReportRenderer: report.NewRenderer(),

		JournalService:     journalService,
		TarotService:       tarotService,
		HoroscopeService:   horoscopeService,
		NumerologyService:  numerology.NewService(),
		MoonService:        moon.NewService(),
		TransitService:     transit.NewService(),
		AffirmationService: affirmationService,
		SynastryService:    synastryService,
		ChatService:        chatService,
		GeocodingClient:    geocoding.NewClient(externalClient, slog.Default(), cfg.NominatimBaseURL),

		SubscriptionService: subscriptionService,
		WebhookSecret:       cfg.RevenueCatWebhookSecret,
		DevMode:             cfg.IsDevelopment(),
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker はワーカーモードで起動する。
// DB接続を開き、デイリーコンテンツの事前生成スケジューラと
// 保持期限切れデータのクリーンアップジョブを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established (worker)")

	// 2. リポジトリの初期化
	contentRepo := repository.NewPostgresDailyContentRepo(db)

	// 3. 外部クライアントの初期化
	externalClient, err := newExternalHTTPClient(cfg)
	if err != nil {
		return err
	}
	ai := gemini.NewClient(externalClient, slog.Default(), cfg.GeminiAPIKey, cfg.GeminiModel)
	horoscopeFetcher := horoscope.NewExternalClient(
		externalClient, slog.Default(), cfg.HoroscopeAPIBaseURL, cfg.AztroAPIURL,
	)

	// 4. 事前生成対象サービスの初期化
	// ワーカーは/metricsエンドポイントを持たないためメトリクスは記録しない
	contentCache := cache.New(time.Hour, 10*time.Minute)
	horoscopeService := horoscope.NewService(horoscopeFetcher, contentRepo, contentCache, metrics.NoopCollector{})
	affirmationService := affirmation.NewService(contentRepo, ai, contentCache, metrics.NoopCollector{})

	// 5. ウォームスケジューラの初期化
	scheduler := warm.NewScheduler(
		horoscopeService, affirmationService, slog.Default(), cfg.WarmMaxConcurrent,
	)

	// 6. クリーンアップジョブの初期化
	cleanupJob := cleanup.NewCleanupJob(db, slog.Default())
	cleanupJob.TarotRetentionDays = cfg.CleanupRetentionDays

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("warm_interval", cfg.WarmInterval),
		slog.Int("max_concurrent", cfg.WarmMaxConcurrent),
	)

	// クリーンアップジョブを日次でバックグラウンド実行
	go func() {
		// 起動直後に1回実行
		if err := cleanupJob.Run(ctx); err != nil {
			slog.Error("cleanup job failed", slog.String("error", err.Error()))
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := cleanupJob.Run(ctx); err != nil {
					slog.Error("cleanup job failed", slog.String("error", err.Error()))
				}
			}
		}
	}()

	// ウォームスケジューラをメインgoroutineで実行（ブロッキング）
	scheduler.Start(ctx, cfg.WarmInterval)

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	version, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully",
		slog.Uint64("version", uint64(version)),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// newExternalHTTPClient は外部API呼び出しに使う共有HTTPクライアントを構築する。
// 本番環境では設定済みの外部URLをSSRFガードで事前検証し、
// プライベートアドレスへの接続を拒否するセーフクライアントを返す。
// 開発環境ではローカルのモックサーバーへ接続できるよう通常のクライアントを返す。
func newExternalHTTPClient(cfg *config.Config) (*http.Client, error) {
	if cfg.IsDevelopment() {
		return &http.Client{Timeout: cfg.ExternalTimeout}, nil
	}

	guard := security.NewSSRFGuard()
	for _, rawURL := range []string{cfg.NominatimBaseURL, cfg.HoroscopeAPIBaseURL, cfg.AztroAPIURL} {
		if rawURL == "" {
			continue
		}
		if err := guard.ValidateURL(rawURL); err != nil {
			return nil, fmt.Errorf("external API URL rejected: %w", err)
		}
	}

	return guard.NewSafeClient(cfg.ExternalTimeout), nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
