// Package journal は意図設定ジャーナルのドメインロジックを提供する。
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
	"github.com/hitoshi/starman/internal/security"
)

// maxFieldLength はintention/gratitudeの最大文字数。
const maxFieldLength = 1000

// maxListLimit は一覧取得の上限件数。
const maxListLimit = 50

// defaultCategory はカテゴリ未指定時の値。
const defaultCategory = "general"

// CreateInput は新規エントリの入力。
type CreateInput struct {
	Intention string
	Gratitude *string
	Category  string
}

// UpdateInput は部分更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Intention *string
	Gratitude *string
	Status    *string
	Category  *string
}

// Service はジャーナルのサービス層。
// ユーザー入力は保存前にサニタイズし、他ユーザーのエントリへの
// アクセスは存在しないエントリと同じ扱いにする。
type Service struct {
	repo      repository.JournalRepository
	sanitizer security.ContentSanitizerService
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.JournalRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// Create は新規エントリを作成する。ステータスはpendingで始まる。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.JournalEntry, error) {
	intention := s.sanitizer.Sanitize(in.Intention)
	if intention == "" {
		return nil, model.NewIntentionRequiredError()
	}
	if utf8.RuneCountInString(intention) > maxFieldLength {
		return nil, model.NewFieldTooLongError("intention", maxFieldLength)
	}

	var gratitude *string
	if in.Gratitude != nil {
		g := s.sanitizer.Sanitize(*in.Gratitude)
		if utf8.RuneCountInString(g) > maxFieldLength {
			return nil, model.NewFieldTooLongError("gratitude", maxFieldLength)
		}
		if g != "" {
			gratitude = &g
		}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}

	now := s.now().UTC()
	entry := &model.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Intention: intention,
		Gratitude: gratitude,
		Status:    model.JournalStatusPending,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("ジャーナルエントリを作成できませんでした: %w", err)
	}

	return entry, nil
}

// List はユーザーのエントリ一覧を新しい順で返す。
// statusが空でなければそのステータスだけに絞り込む。limitは1〜50に丸める。
func (s *Service) List(ctx context.Context, userID, status string, skip, limit int) ([]*model.JournalEntry, error) {
	if status != "" && !model.ValidJournalStatus(status) {
		return nil, model.NewInvalidStatusError(status)
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	entries, err := s.repo.ListByUser(ctx, userID, model.JournalStatus(status), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("ジャーナル一覧を取得できませんでした: %w", err)
	}
	return entries, nil
}

// Get は指定IDのエントリを返す。
// 他ユーザーのエントリはIDの存在を漏らさないよう未検出として扱う。
func (s *Service) Get(ctx context.Context, userID, entryID string) (*model.JournalEntry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("ジャーナルエントリを取得できませんでした: %w", err)
	}
	if entry == nil || entry.UserID != userID {
		return nil, model.NewEntryNotFoundError()
	}
	return entry, nil
}

// Update はエントリを部分更新する。
func (s *Service) Update(ctx context.Context, userID, entryID string, in UpdateInput) (*model.JournalEntry, error) {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if in.Intention != nil {
		intention := s.sanitizer.Sanitize(*in.Intention)
		if intention == "" {
			return nil, model.NewIntentionRequiredError()
		}
		if utf8.RuneCountInString(intention) > maxFieldLength {
			return nil, model.NewFieldTooLongError("intention", maxFieldLength)
		}
		entry.Intention = intention
	}

	if in.Gratitude != nil {
		g := s.sanitizer.Sanitize(*in.Gratitude)
		if utf8.RuneCountInString(g) > maxFieldLength {
			return nil, model.NewFieldTooLongError("gratitude", maxFieldLength)
		}
		if g == "" {
			entry.Gratitude = nil
		} else {
			entry.Gratitude = &g
		}
	}

	if in.Status != nil {
		if !model.ValidJournalStatus(*in.Status) {
			return nil, model.NewInvalidStatusError(*in.Status)
		}
		entry.Status = model.JournalStatus(*in.Status)
	}

	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			category = defaultCategory
		}
		entry.Category = category
	}

	entry.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("ジャーナルエントリを更新できませんでした: %w", err)
	}

	return entry, nil
}

// Delete はエントリを削除する。
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	if _, err := s.Get(ctx, userID, entryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("ジャーナルエントリを削除できませんでした: %w", err)
	}
	return nil
}
