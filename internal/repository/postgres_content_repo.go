package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// PostgresDailyContentRepo はPostgreSQLを使用した日次コンテンツリポジトリ。
// ウォームワーカーが書き込み、サーブ側がキャッシュミス時に読む共有レイヤー。
type PostgresDailyContentRepo struct {
	db *sql.DB
}

// NewPostgresDailyContentRepo はPostgresDailyContentRepoを生成する。
func NewPostgresDailyContentRepo(db *sql.DB) *PostgresDailyContentRepo {
	return &PostgresDailyContentRepo{db: db}
}

// Upsert は(content_date, kind, sign)をキーにコンテンツを挿入または更新する。
func (r *PostgresDailyContentRepo) Upsert(ctx context.Context, content *model.DailyContent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_content (id, content_date, kind, sign, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (content_date, kind, sign)
		 DO UPDATE SET payload = EXCLUDED.payload`,
		content.ID, content.ContentDate, content.Kind, content.Sign, content.Payload, content.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily content: %w", err)
	}
	return nil
}

// Find は指定日・種別・星座のコンテンツを取得する。見つからない場合はnilを返す。
func (r *PostgresDailyContentRepo) Find(ctx context.Context, date time.Time, kind model.ContentKind, sign string) (*model.DailyContent, error) {
	content := &model.DailyContent{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content_date, kind, sign, payload, created_at
		 FROM daily_content
		 WHERE content_date = $1 AND kind = $2 AND sign = $3`,
		date, kind, sign,
	).Scan(&content.ID, &content.ContentDate, &content.Kind, &content.Sign, &content.Payload, &content.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find daily content: %w", err)
	}

	return content, nil
}

// compile-time interface check
var _ DailyContentRepository = (*PostgresDailyContentRepo)(nil)
