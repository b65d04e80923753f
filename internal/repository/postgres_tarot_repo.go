package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// PostgresTarotRepo はPostgreSQLを使用したタロット履歴リポジトリ。
type PostgresTarotRepo struct {
	db *sql.DB
}

// NewPostgresTarotRepo はPostgresTarotRepoを生成する。
func NewPostgresTarotRepo(db *sql.DB) *PostgresTarotRepo {
	return &PostgresTarotRepo{db: db}
}

// Create は引いたカードの履歴を作成する。
func (r *PostgresTarotRepo) Create(ctx context.Context, draw *model.TarotDraw) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tarot_history (id, user_id, card_id, is_reversed, position, reading_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		draw.ID, draw.UserID, draw.CardID, draw.IsReversed, draw.Position, draw.ReadingDate, draw.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tarot draw: %w", err)
	}
	return nil
}

// FindDailyDraw は指定日のデイリー引き（position=single）を取得する。
// 見つからない場合はnilを返す。
func (r *PostgresTarotRepo) FindDailyDraw(ctx context.Context, userID string, date time.Time) (*model.TarotDraw, error) {
	draw := &model.TarotDraw{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, card_id, is_reversed, position, reading_date, created_at
		 FROM tarot_history
		 WHERE user_id = $1 AND reading_date = $2 AND position = $3
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID, date, model.TarotPositionSingle,
	).Scan(&draw.ID, &draw.UserID, &draw.CardID, &draw.IsReversed, &draw.Position, &draw.ReadingDate, &draw.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find daily draw: %w", err)
	}

	return draw, nil
}

// DeleteDailyDraw は指定日のデイリー引きを削除する。force_new引き直しで使用する。
func (r *PostgresTarotRepo) DeleteDailyDraw(ctx context.Context, userID string, date time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tarot_history WHERE user_id = $1 AND reading_date = $2 AND position = $3`,
		userID, date, model.TarotPositionSingle,
	)
	if err != nil {
		return fmt.Errorf("failed to delete daily draw: %w", err)
	}
	return nil
}

// FindSpread は指定日の3枚スプレッドをpast→present→futureの順で返す。
// 見つからない場合は空スライスを返す。
func (r *PostgresTarotRepo) FindSpread(ctx context.Context, userID string, date time.Time) ([]*model.TarotDraw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, card_id, is_reversed, position, reading_date, created_at
		 FROM tarot_history
		 WHERE user_id = $1 AND reading_date = $2 AND position IN ('past', 'present', 'future')
		 ORDER BY CASE position WHEN 'past' THEN 0 WHEN 'present' THEN 1 ELSE 2 END`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find spread: %w", err)
	}
	defer rows.Close()

	var draws []*model.TarotDraw
	for rows.Next() {
		draw := &model.TarotDraw{}
		if err := rows.Scan(&draw.ID, &draw.UserID, &draw.CardID, &draw.IsReversed, &draw.Position, &draw.ReadingDate, &draw.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan spread draw: %w", err)
		}
		draws = append(draws, draw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spread: %w", err)
	}

	return draws, nil
}

// DeleteSpread は指定日のスプレッドを削除する。force_new引き直しで使用する。
func (r *PostgresTarotRepo) DeleteSpread(ctx context.Context, userID string, date time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tarot_history
		 WHERE user_id = $1 AND reading_date = $2 AND position IN ('past', 'present', 'future')`,
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete spread: %w", err)
	}
	return nil
}

// ListByUser はユーザーの履歴をcreated_at降順で返す。
func (r *PostgresTarotRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.TarotDraw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, card_id, is_reversed, position, reading_date, created_at
		 FROM tarot_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tarot history: %w", err)
	}
	defer rows.Close()

	var draws []*model.TarotDraw
	for rows.Next() {
		draw := &model.TarotDraw{}
		if err := rows.Scan(&draw.ID, &draw.UserID, &draw.CardID, &draw.IsReversed, &draw.Position, &draw.ReadingDate, &draw.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tarot draw: %w", err)
		}
		draws = append(draws, draw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tarot history: %w", err)
	}

	return draws, nil
}

// DeleteByUserID はユーザーの全履歴を削除する。退会処理で使用する。
func (r *PostgresTarotRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tarot_history WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete tarot history by user: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TarotRepository = (*PostgresTarotRepo)(nil)
