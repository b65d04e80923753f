// Package cleanup は保持期限切れデータの自動削除ジョブを提供する。
// 保持期間を超過したタロット履歴と、配信日を過ぎて参照されなくなった
// 事前生成済みデイリーコンテンツを日次バッチで削除する。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CleanupJob は保持期間を超過したデータの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	db     Executor
	logger *slog.Logger

	// TarotRetentionDays はタロット履歴の保持日数（デフォルト: 365）。
	TarotRetentionDays int
	// ContentRetentionDays は事前生成コンテンツの保持日数（デフォルト: 7）。
	// デイリーコンテンツは当日しか参照されないため短期で破棄してよい。
	ContentRetentionDays int
}

// NewCleanupJob は新しいCleanupJobを生成する。
func NewCleanupJob(db Executor, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		db:                   db,
		logger:               logger,
		TarotRetentionDays:   365,
		ContentRetentionDays: 7,
	}
}

// Run は保持期間を超過したデータを削除する。
// tarot_historyはcreated_atがTarotRetentionDays日前より古い行を、
// daily_contentはcontent_dateがContentRetentionDays日前より古い行をDELETEする。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	tarotDeleted, err := j.deleteOlderThan(ctx,
		`DELETE FROM tarot_history WHERE created_at < now() - $1::interval`,
		j.TarotRetentionDays,
	)
	if err != nil {
		j.logger.Error("タロット履歴クリーンアップの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.TarotRetentionDays),
		)
		return fmt.Errorf("タロット履歴クリーンアップの実行に失敗: %w", err)
	}

	contentDeleted, err := j.deleteOlderThan(ctx,
		`DELETE FROM daily_content WHERE content_date < now() - $1::interval`,
		j.ContentRetentionDays,
	)
	if err != nil {
		j.logger.Error("デイリーコンテンツクリーンアップの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.ContentRetentionDays),
		)
		return fmt.Errorf("デイリーコンテンツクリーンアップの実行に失敗: %w", err)
	}

	duration := time.Since(start)
	j.logger.Info("クリーンアップジョブが完了しました",
		slog.Int64("tarot_deleted_count", tarotDeleted),
		slog.Int64("content_deleted_count", contentDeleted),
		slog.Int("tarot_retention_days", j.TarotRetentionDays),
		slog.Int("content_retention_days", j.ContentRetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// deleteOlderThan は指定クエリをPostgreSQLのinterval型引数付きで実行し、
// 削除された行数を返す。
func (j *CleanupJob) deleteOlderThan(ctx context.Context, query string, retentionDays int) (int64, error) {
	interval := fmt.Sprintf("%d days", retentionDays)

	result, err := j.db.ExecContext(ctx, query, interval)
	if err != nil {
		return 0, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	return deleted, nil
}
