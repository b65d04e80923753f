package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/starman/internal/model"
)

// PostgresJournalRepo はPostgreSQLを使用したジャーナルリポジトリ。
type PostgresJournalRepo struct {
	db *sql.DB
}

// NewPostgresJournalRepo はPostgresJournalRepoを生成する。
func NewPostgresJournalRepo(db *sql.DB) *PostgresJournalRepo {
	return &PostgresJournalRepo{db: db}
}

// Create はエントリを作成する。
func (r *PostgresJournalRepo) Create(ctx context.Context, entry *model.JournalEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries (id, user_id, intention, gratitude, status, category, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.Intention, entry.Gratitude, entry.Status, entry.Category, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
func (r *PostgresJournalRepo) FindByID(ctx context.Context, id string) (*model.JournalEntry, error) {
	entry := &model.JournalEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, intention, gratitude, status, category, created_at, updated_at
		 FROM journal_entries WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.UserID, &entry.Intention, &entry.Gratitude, &entry.Status, &entry.Category, &entry.CreatedAt, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}

	return entry, nil
}

// ListByUser はユーザーのエントリ一覧をcreated_at降順で返す。
// statusが空文字列の場合は全ステータスを対象にする。
func (r *PostgresJournalRepo) ListByUser(ctx context.Context, userID string, status model.JournalStatus, offset, limit int) ([]*model.JournalEntry, error) {
	query := `SELECT id, user_id, intention, gratitude, status, category, created_at, updated_at
		FROM journal_entries WHERE user_id = $1`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = $2 ORDER BY created_at DESC OFFSET $3 LIMIT $4`
		args = append(args, status, offset, limit)
	} else {
		query += ` ORDER BY created_at DESC OFFSET $2 LIMIT $3`
		args = append(args, offset, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.JournalEntry
	for rows.Next() {
		entry := &model.JournalEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Intention, &entry.Gratitude, &entry.Status, &entry.Category, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return entries, nil
}

// Update はエントリを上書き更新する。
func (r *PostgresJournalRepo) Update(ctx context.Context, entry *model.JournalEntry) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE journal_entries
		 SET intention = $2, gratitude = $3, status = $4, category = $5, updated_at = $6
		 WHERE id = $1`,
		entry.ID, entry.Intention, entry.Gratitude, entry.Status, entry.Category, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("journal entry not found: %s", entry.ID)
	}
	return nil
}

// Delete は指定IDのエントリを削除する。
func (r *PostgresJournalRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("journal entry not found: %s", id)
	}
	return nil
}

// DeleteByUserID はユーザーの全エントリを削除する。退会処理で使用する。
func (r *PostgresJournalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete journal entries by user: %w", err)
	}
	return nil
}

// compile-time interface check
var _ JournalRepository = (*PostgresJournalRepo)(nil)
