package tarot

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
)

// reversedProbability はカードが逆位置で出る確率。
const reversedProbability = 0.33

// maxHistoryLimit は履歴取得の上限件数。
const maxHistoryLimit = 50

// spreadPositions は3枚スプレッドの位置の並び。
var spreadPositions = []model.TarotPosition{
	model.TarotPositionPast,
	model.TarotPositionPresent,
	model.TarotPositionFuture,
}

// DailyDraw はデイリー1枚引きのレスポンス。
type DailyDraw struct {
	Card           *Card    `json:"card"`
	IsReversed     bool     `json:"is_reversed"`
	AlreadyDrawn   bool     `json:"already_drawn"`
	Interpretation string   `json:"interpretation"`
	DailyGuidance  string   `json:"daily_guidance"`
	Keywords       []string `json:"keywords"`
}

// SpreadCard は3枚スプレッド内の1枚。
type SpreadCard struct {
	Card           *Card               `json:"card"`
	IsReversed     bool                `json:"is_reversed"`
	Position       model.TarotPosition `json:"position"`
	AlreadyDrawn   bool                `json:"already_drawn"`
	Interpretation string              `json:"interpretation"`
	DailyGuidance  string              `json:"daily_guidance"`
	Keywords       []string            `json:"keywords"`
}

// Service はタロット機能のサービス。
// 無料ユーザーの引きは(ユーザー, 日付)でシードされ、同じ日に何度
// 呼んでも同じカードになる。引き直しはプレミアム限定。
type Service struct {
	repo    repository.TarotRepository
	ai      Generator
	metrics metrics.MetricsCollector
	now     func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// aiはnil可（AIリーディングは常に静的フォールバックになる）。metricsもnil可。
func NewService(repo repository.TarotRepository, ai Generator, m metrics.MetricsCollector) *Service {
	if m == nil {
		m = metrics.NoopCollector{}
	}
	return &Service{
		repo:    repo,
		ai:      ai,
		metrics: m,
		now:     time.Now,
	}
}

// Cards は大アルカナ全22枚を返す。
func (s *Service) Cards() []Card {
	return MajorArcana
}

// CardByID はアルカナ番号からカードを取得する。範囲外はエラーを返す。
func (s *Service) CardByID(id int) (*Card, error) {
	card := CardByID(id)
	if card == nil {
		return nil, model.NewCardNotFoundError(id)
	}
	return card, nil
}

// Daily はデイリーカードを返す。
// 1. 今日すでに引いていればその結果を返す（already_drawn=true）。
// 2. 未引きなら日付シードで引いて履歴に保存する。
// 3. force_new=trueはプレミアム限定で、当日分を消して真の乱数で引き直す。
func (s *Service) Daily(ctx context.Context, user *model.User, forceNew bool) (*DailyDraw, error) {
	date := s.userToday(user)

	if forceNew {
		if !user.IsPremium() {
			return nil, model.NewPremiumRequiredError()
		}
		if err := s.repo.DeleteDailyDraw(ctx, user.ID, date); err != nil {
			return nil, fmt.Errorf("当日のデイリーカードを削除できませんでした: %w", err)
		}
	} else {
		existing, err := s.repo.FindDailyDraw(ctx, user.ID, date)
		if err != nil {
			return nil, fmt.Errorf("デイリーカードの履歴を取得できませんでした: %w", err)
		}
		if existing != nil {
			if card := CardByID(existing.CardID); card != nil {
				return newDailyDraw(card, existing.IsReversed, true), nil
			}
			slog.Warn("tarot history references unknown card", "card_id", existing.CardID)
		}
	}

	r := s.newRand(dailySeed(user.ID, date), forceNew)
	card := &MajorArcana[r.Intn(len(MajorArcana))]
	isReversed := r.Float64() < reversedProbability

	draw := &model.TarotDraw{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		CardID:      card.ID,
		IsReversed:  isReversed,
		Position:    model.TarotPositionSingle,
		ReadingDate: date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, draw); err != nil {
		return nil, fmt.Errorf("デイリーカードを保存できませんでした: %w", err)
	}

	return newDailyDraw(card, isReversed, false), nil
}

// Spread は3枚スプレッド（過去・現在・未来）を返す。
// デイリーと同じく1日1回で、引き直しはプレミアム限定。
func (s *Service) Spread(ctx context.Context, user *model.User, forceNew bool) ([]*SpreadCard, error) {
	date := s.userToday(user)

	if forceNew {
		if !user.IsPremium() {
			return nil, model.NewPremiumRequiredError()
		}
		if err := s.repo.DeleteSpread(ctx, user.ID, date); err != nil {
			return nil, fmt.Errorf("当日のスプレッドを削除できませんでした: %w", err)
		}
	} else {
		rows, err := s.repo.FindSpread(ctx, user.ID, date)
		if err != nil {
			return nil, fmt.Errorf("スプレッドの履歴を取得できませんでした: %w", err)
		}
		if len(rows) == len(spreadPositions) {
			cards := make([]*SpreadCard, 0, len(rows))
			for _, row := range rows {
				card := CardByID(row.CardID)
				if card == nil {
					slog.Warn("tarot history references unknown card", "card_id", row.CardID)
					card = &MajorArcana[0]
				}
				cards = append(cards, newSpreadCard(card, row.IsReversed, row.Position, true))
			}
			return cards, nil
		}
	}

	r := s.newRand(spreadSeed(user.ID, date), forceNew)
	picked := r.Perm(len(MajorArcana))[:len(spreadPositions)]

	cards := make([]*SpreadCard, 0, len(spreadPositions))
	for i, pos := range spreadPositions {
		card := &MajorArcana[picked[i]]
		isReversed := r.Float64() < reversedProbability

		draw := &model.TarotDraw{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			CardID:      card.ID,
			IsReversed:  isReversed,
			Position:    pos,
			ReadingDate: date,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.repo.Create(ctx, draw); err != nil {
			return nil, fmt.Errorf("スプレッドを保存できませんでした: %w", err)
		}

		cards = append(cards, newSpreadCard(card, isReversed, pos, false))
	}

	return cards, nil
}

// History はユーザーの引き履歴を新しい順で返す。limitは1〜50に丸める。
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*model.TarotDraw, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	draws, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("タロット履歴を取得できませんでした: %w", err)
	}
	return draws, nil
}

// userToday はユーザーのタイムゾーンでの今日の暦日をUTC日付として返す。
// タイムゾーンが不正な場合はUTCで計算する。
func (s *Service) userToday(user *model.User) time.Time {
	loc := time.UTC
	if user.Timezone != "" {
		if l, err := time.LoadLocation(user.Timezone); err == nil {
			loc = l
		}
	}
	t := s.now().In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newRand は引きに使う乱数源を返す。引き直しのときだけ非決定論的になる。
func (s *Service) newRand(seed int64, forceNew bool) *rand.Rand {
	if forceNew {
		return rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return rand.New(rand.NewSource(seed))
}

// dailySeed はデイリー引きのシード。日付とユーザーで安定する。
func dailySeed(userID string, date time.Time) int64 {
	return dateOrdinal(date) + userSeed(userID)%1000
}

// spreadSeed はスプレッドのシード。デイリーとは別系列になるようずらす。
func spreadSeed(userID string, date time.Time) int64 {
	return dateOrdinal(date) + userSeed(userID)%10000 + 1000
}

// userSeed はユーザーIDから安定したシード成分を導出する。
func userSeed(userID string) int64 {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int64(h.Sum32())
}

// dateOrdinal はUTC日付の通算日数を返す。
func dateOrdinal(t time.Time) int64 {
	return t.Unix() / 86400
}

func newDailyDraw(card *Card, reversed, alreadyDrawn bool) *DailyDraw {
	m := card.MeaningFor(reversed)
	return &DailyDraw{
		Card:           card,
		IsReversed:     reversed,
		AlreadyDrawn:   alreadyDrawn,
		Interpretation: m.Meaning,
		DailyGuidance:  m.DailyGuidance,
		Keywords:       m.Keywords,
	}
}

func newSpreadCard(card *Card, reversed bool, pos model.TarotPosition, alreadyDrawn bool) *SpreadCard {
	m := card.MeaningFor(reversed)
	return &SpreadCard{
		Card:           card,
		IsReversed:     reversed,
		Position:       pos,
		AlreadyDrawn:   alreadyDrawn,
		Interpretation: m.Meaning,
		DailyGuidance:  m.DailyGuidance,
		Keywords:       m.Keywords,
	}
}
