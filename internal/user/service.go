// Package user はユーザープロフィール管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
	"github.com/hitoshi/starman/internal/security"
)

// maxNameLength は表示名の最大文字数。
const maxNameLength = 100

// maxLocationLength は出生地表記の最大文字数。
const maxLocationLength = 255

// timePattern は"HH:MM"形式の検証パターン。
var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// JournalDeleter はジャーナルの一括削除インターフェース。
type JournalDeleter interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// TarotDeleter はタロット履歴の一括削除インターフェース。
type TarotDeleter interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// ProfileUpdate はプロフィールの部分更新入力。nilのフィールドは変更しない。
type ProfileUpdate struct {
	Name           *string
	AvatarURL      *string
	Timezone       *string
	BirthDate      *time.Time
	BirthTime      *string
	BirthLocation  *string
	BirthLatitude  *float64
	BirthLongitude *float64
}

// Preferences は通知・表示設定の部分更新入力。
type Preferences struct {
	NotificationsEnabled *bool
	DailyHoroscopeTime   *string
	Theme                *string
	Language             *string
}

// Service はユーザー管理のサービス層。
// プロフィール更新と退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo       repository.UserRepository
	journalDeleter JournalDeleter
	tarotDeleter   TarotDeleter
	sanitizer      security.ContentSanitizerService
	now            func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	journalDeleter JournalDeleter,
	tarotDeleter TarotDeleter,
	sanitizer security.ContentSanitizerService,
) *Service {
	return &Service{
		userRepo:       userRepo,
		journalDeleter: journalDeleter,
		tarotDeleter:   tarotDeleter,
		sanitizer:      sanitizer,
		now:            time.Now,
	}
}

// Profile は現在のユーザーを返す。
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// UpdateProfile はプロフィールを部分更新する。
// 生年月日が変わった場合は太陽星座を導出し直す。
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := s.sanitizer.Sanitize(*in.Name)
		if utf8.RuneCountInString(name) > maxNameLength {
			return nil, model.NewFieldTooLongError("name", maxNameLength)
		}
		user.Name = name
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}
	if in.Timezone != nil {
		user.Timezone = *in.Timezone
	}
	if in.BirthDate != nil {
		d := dateOnly(*in.BirthDate)
		user.BirthDate = &d
		user.ZodiacSign = astro.SunSignFromDate(d)
	}
	if in.BirthTime != nil {
		if !timePattern.MatchString(*in.BirthTime) {
			return nil, model.NewInvalidTimeFormatError("birth_time")
		}
		user.BirthTime = in.BirthTime
	}
	if in.BirthLocation != nil {
		loc := s.sanitizer.Sanitize(*in.BirthLocation)
		if utf8.RuneCountInString(loc) > maxLocationLength {
			return nil, model.NewFieldTooLongError("birth_location", maxLocationLength)
		}
		user.BirthLocation = &loc
	}
	if in.BirthLatitude != nil {
		user.BirthLatitude = in.BirthLatitude
	}
	if in.BirthLongitude != nil {
		user.BirthLongitude = in.BirthLongitude
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("プロフィールを更新できませんでした: %w", err)
	}

	return user, nil
}

// UpdatePreferences は通知・表示設定を部分更新する。
func (s *Service) UpdatePreferences(ctx context.Context, userID string, in Preferences) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.NotificationsEnabled != nil {
		user.NotificationsEnabled = *in.NotificationsEnabled
	}
	if in.DailyHoroscopeTime != nil {
		if !timePattern.MatchString(*in.DailyHoroscopeTime) {
			return nil, model.NewInvalidTimeFormatError("daily_horoscope_time")
		}
		user.DailyHoroscopeTime = *in.DailyHoroscopeTime
	}
	if in.Theme != nil {
		user.Theme = *in.Theme
	}
	if in.Language != nil {
		user.Language = *in.Language
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("設定を更新できませんでした: %w", err)
	}

	return user, nil
}

// UpdateNotificationToken はプッシュ通知トークンを差し替える。空文字は解除。
func (s *Service) UpdateNotificationToken(ctx context.Context, userID, token string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if token == "" {
		user.NotificationToken = nil
	} else {
		user.NotificationToken = &token
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("通知トークンを更新できませんでした: %w", err)
	}
	return nil
}

// Withdraw はユーザーの退会処理を実行する。
// 削除順序: journal_entries → tarot_history → user（CASCADEは保険）。
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	// ユーザー存在確認
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	slog.Info("退会処理を開始します",
		slog.String("user_id", userID),
	)

	// 1. ジャーナルを削除
	if s.journalDeleter != nil {
		if err := s.journalDeleter.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("ジャーナルの削除に失敗しました: %w", err)
		}
	}

	// 2. タロット履歴を削除
	if s.tarotDeleter != nil {
		if err := s.tarotDeleter.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("タロット履歴の削除に失敗しました: %w", err)
		}
	}

	// 3. ユーザーを削除
	if err := s.userRepo.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.String("user_id", userID),
	)

	return nil
}

// dateOnly は時刻を切り捨ててUTCの日付にする。
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
