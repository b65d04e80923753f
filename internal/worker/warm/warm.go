// Package warm はデイリーコンテンツの事前生成処理を提供する。
// 全十二星座のホロスコープとアファメーションプールを定期的に解決し、
// daily_contentテーブルに永続化することでユーザーアクセス時の
// 外部API呼び出しとAI生成を不要にする。
package warm

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/starman/internal/affirmation"
	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/horoscope"
)

// HoroscopeWarmer はデイリーホロスコープの解決インターフェース。
// 解決に成功した結果はサービス側でdaily_contentテーブルに永続化される。
type HoroscopeWarmer interface {
	Daily(ctx context.Context, signID, day string) (*horoscope.Daily, error)
}

// AffirmationWarmer はアファメーションプールの解決インターフェース。
type AffirmationWarmer interface {
	Pool(ctx context.Context, signID string) ([]affirmation.Affirmation, error)
}

// Scheduler はデイリーコンテンツ事前生成のスケジューリングと並列制御を行う。
// 日次間隔のティッカーで全星座を走査し、semaphoreパターンで
// 最大並列数を制御しながらコンテンツを解決する。
type Scheduler struct {
	horoscopes     HoroscopeWarmer
	affirmations   AffirmationWarmer
	logger         *slog.Logger
	maxConcurrency int
}

// NewScheduler はSchedulerの新しいインスタンスを生成する。
// maxConcurrencyが0以下の場合はデフォルト値4を使用する。
func NewScheduler(
	horoscopes HoroscopeWarmer,
	affirmations AffirmationWarmer,
	logger *slog.Logger,
	maxConcurrency int,
) *Scheduler {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &Scheduler{
		horoscopes:     horoscopes,
		affirmations:   affirmations,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// Start は指定間隔のティッカーでスケジューラを起動する。
// コンテキストがキャンセルされるまで実行を継続する。
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("ウォームスケジューラを開始しました",
		slog.Duration("interval", interval),
		slog.Int("max_concurrency", s.maxConcurrency),
	)

	// 起動直後に1回実行
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("ウォームサイクルの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ウォームスケジューラを停止しました")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("ウォームサイクルの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// RunOnce は全星座のデイリーコンテンツを1回解決する。
// semaphoreパターンで最大並列数を制御する。
// 一部の星座で解決に失敗してもサイクル全体は継続する。
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()

	s.logger.Info("ウォームサイクルを開始します",
		slog.Int("sign_count", len(astro.AllSigns)),
	)

	// semaphoreパターンで並列数を制御
	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for i := range astro.AllSigns {
		wg.Add(1)
		sem <- struct{}{} // semaphore取得（ブロック）

		go func(signID string) {
			defer wg.Done()
			defer func() { <-sem }() // semaphore解放

			if _, err := s.horoscopes.Daily(ctx, signID, "today"); err != nil {
				s.logger.Error("ホロスコープの事前生成に失敗しました",
					slog.String("sign", signID),
					slog.String("error", err.Error()),
				)
			}

			if _, err := s.affirmations.Pool(ctx, signID); err != nil {
				s.logger.Error("アファメーションの事前生成に失敗しました",
					slog.String("sign", signID),
					slog.String("error", err.Error()),
				)
			}
		}(astro.AllSigns[i].ID)
	}

	wg.Wait()

	duration := time.Since(start)
	s.logger.Info("ウォームサイクルが完了しました",
		slog.Int("sign_count", len(astro.AllSigns)),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}
