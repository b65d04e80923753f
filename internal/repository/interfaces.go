// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByGoogleID はGoogleアカウントIDでユーザーを検索する。見つからない場合はnilを返す。
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)

	// FindByRevenueCatID はRevenueCatのapp_user_idでユーザーを検索する。見つからない場合はnilを返す。
	FindByRevenueCatID(ctx context.Context, revenueCatID string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーの全フィールドを上書き更新する。
	Update(ctx context.Context, user *model.User) error

	// UpdateLastLogin は最終ログイン日時を更新する。
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するjournal_entries、tarot_historyはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// JournalRepository はジャーナルエントリの永続化インターフェース。
type JournalRepository interface {
	// Create はエントリを作成する。
	Create(ctx context.Context, entry *model.JournalEntry) error

	// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
	// 所有者チェックはサービス層で行う。
	FindByID(ctx context.Context, id string) (*model.JournalEntry, error)

	// ListByUser はユーザーのエントリ一覧をcreated_at降順で返す。
	// statusが空文字列の場合は全ステータスを対象にする。
	ListByUser(ctx context.Context, userID string, status model.JournalStatus, offset, limit int) ([]*model.JournalEntry, error)

	// Update はエントリを上書き更新する。
	Update(ctx context.Context, entry *model.JournalEntry) error

	// Delete は指定IDのエントリを削除する。
	Delete(ctx context.Context, id string) error

	// DeleteByUserID はユーザーの全エントリを削除する。退会処理で使用する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// TarotRepository はタロット履歴の永続化インターフェース。
type TarotRepository interface {
	// Create は引いたカードの履歴を作成する。
	Create(ctx context.Context, draw *model.TarotDraw) error

	// FindDailyDraw は指定日のデイリー引き（position=single）を取得する。
	// 見つからない場合はnilを返す。
	FindDailyDraw(ctx context.Context, userID string, date time.Time) (*model.TarotDraw, error)

	// DeleteDailyDraw は指定日のデイリー引きを削除する。force_new引き直しで使用する。
	DeleteDailyDraw(ctx context.Context, userID string, date time.Time) error

	// FindSpread は指定日の3枚スプレッドをpast→present→futureの順で返す。
	// 見つからない場合は空スライスを返す。
	FindSpread(ctx context.Context, userID string, date time.Time) ([]*model.TarotDraw, error)

	// DeleteSpread は指定日のスプレッドを削除する。force_new引き直しで使用する。
	DeleteSpread(ctx context.Context, userID string, date time.Time) error

	// ListByUser はユーザーの履歴をcreated_at降順で返す。
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.TarotDraw, error)

	// DeleteByUserID はユーザーの全履歴を削除する。退会処理で使用する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// DailyContentRepository は日次事前生成コンテンツの永続化インターフェース。
type DailyContentRepository interface {
	// Upsert は(content_date, kind, sign)をキーにコンテンツをUPSERTする。
	Upsert(ctx context.Context, content *model.DailyContent) error

	// Find は指定日・種別・星座のコンテンツを取得する。見つからない場合はnilを返す。
	Find(ctx context.Context, date time.Time, kind model.ContentKind, sign string) (*model.DailyContent, error)
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
