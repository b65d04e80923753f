// Package affirmation は星座別デイリーアファメーションを提供する。
//
// プールは星座ごとに1日10件で、L1キャッシュ → daily_contentテーブル →
// Gemini一括生成 → 静的フォールバックの順に解決する。デイリーの1件は
// 年内通算日から決定論的に選ぶため、同じ日は常に同じ結果になる。
package affirmation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/gemini"
	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
)

// ckPool はアファメーションプールのL1キャッシュキー（星座, 日付）。
const ckPool = "affirmations:%s:%s"

// fallbackCacheTTL はフォールバックプールのキャッシュ保持時間。
// 生成の復旧を妨げないよう当日いっぱいではなく短時間にする。
const fallbackCacheTTL = time.Hour

// Generator はアファメーションのテキスト生成を抽象化する。
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

var _ Generator = (*gemini.Client)(nil)

// DailyPick は今日の1件のレスポンス。
type DailyPick struct {
	Affirmation Affirmation `json:"affirmation"`
	Date        string      `json:"date"`
	Index       int         `json:"index"`
	Total       int         `json:"total"`
	Source      string      `json:"source"`
}

// cachedPool はL1キャッシュに載せるプールと出自の組。
type cachedPool struct {
	list   []Affirmation
	source string
}

// Service はアファメーション機能のサービス。
type Service struct {
	content repository.DailyContentRepository
	ai      Generator
	cache   *cache.Cache
	metrics metrics.MetricsCollector
	now     func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// aiはnil可（常に静的フォールバックになる）。metricsもnil可。
func NewService(content repository.DailyContentRepository, ai Generator, c *cache.Cache, m metrics.MetricsCollector) *Service {
	if m == nil {
		m = metrics.NoopCollector{}
	}
	return &Service{
		content: content,
		ai:      ai,
		cache:   c,
		metrics: m,
		now:     time.Now,
	}
}

// Categories はカテゴリの一覧を返す。
func (s *Service) Categories() []Category {
	return categories[:]
}

// Pool は星座の今日のアファメーション一式を返す。
func (s *Service) Pool(ctx context.Context, signID string) ([]Affirmation, error) {
	list, _, err := s.pool(ctx, signID)
	return list, err
}

// Daily は今日の1件を返す。categoryを指定するとそのカテゴリに絞って選ぶ
// （該当がなければプール全体から選ぶ）。
func (s *Service) Daily(ctx context.Context, user *model.User, signID, category string) (*DailyPick, error) {
	list, source, err := s.pool(ctx, signID)
	if err != nil {
		return nil, err
	}

	today := s.userToday(user)

	picks := list
	if category != "" {
		if filtered := filterByCategory(list, category); len(filtered) > 0 {
			picks = filtered
		}
	}

	idx := today.YearDay() % len(picks)
	return &DailyPick{
		Affirmation: picks[idx],
		Date:        today.Format("2006-01-02"),
		Index:       idx + 1,
		Total:       len(picks),
		Source:      source,
	}, nil
}

func (s *Service) pool(ctx context.Context, signID string) ([]Affirmation, string, error) {
	sign := astro.SignByID(signID)
	if sign == nil {
		return nil, "", model.NewInvalidSignError(signID)
	}

	now := s.now().UTC()
	date := dateOnly(now)
	key := fmt.Sprintf(ckPool, sign.ID, date.Format("2006-01-02"))

	// 1. L1キャッシュ
	if v, found := s.cache.Get(key); found {
		if p, ok := v.(*cachedPool); ok {
			s.metrics.RecordContentSource("cache")
			return p.list, p.source, nil
		}
	}

	// 2. ウォームワーカーが事前生成したdaily_content
	if row, err := s.content.Find(ctx, date, model.ContentKindAffirmation, sign.ID); err != nil {
		slog.Warn("failed to read affirmation pool", "sign", sign.ID, "error", err)
	} else if row != nil {
		var list []Affirmation
		if err := json.Unmarshal(row.Payload, &list); err != nil {
			slog.Warn("broken affirmation payload", "sign", sign.ID, "error", err)
		} else if len(list) > 0 {
			s.cache.Set(key, &cachedPool{list: list, source: "ai"}, untilEndOfDay(now))
			s.metrics.RecordContentSource("db")
			return list, "ai", nil
		}
	}

	// 3. Gemini一括生成
	if s.ai != nil && s.ai.Enabled() {
		list, err := s.generate(ctx, sign, date)
		if err == nil {
			s.metrics.RecordExternalRequest("gemini", "success")
			s.metrics.RecordAIGeneration("success")
			s.cache.Set(key, &cachedPool{list: list, source: "ai"}, untilEndOfDay(now))
			s.persist(ctx, sign.ID, date, list)
			s.metrics.RecordContentSource("external")
			return list, "ai", nil
		}
		s.metrics.RecordExternalRequest("gemini", "failure")
		s.metrics.RecordAIGeneration("failure")
		slog.Warn("アファメーションの生成に失敗", "sign", sign.ID, "error", err)
	}

	// 4. 静的フォールバック。復旧を試せるよう短時間だけキャッシュし、DBには書かない
	list := fallbackPools[sign.ID]
	s.cache.Set(key, &cachedPool{list: list, source: "fallback"}, fallbackCacheTTL)
	s.metrics.RecordContentSource("fallback")
	return list, "fallback", nil
}

// batchPrompt は10カテゴリ分を1回の呼び出しで生成させるプロンプト。
const batchPrompt = `Generate 10 powerful, personalized daily affirmations for a %s person.

Context:
- Zodiac traits: %s
- Today's date: %s

Generate one affirmation for each of these categories (in order):
%s

Requirements for each affirmation:
- Start with "I am" or "I"
- Be specific to %s's nature
- Keep each under 15 words
- Be inspiring and empowering

Format your response EXACTLY like this (one per line, no numbering):
Power: I am bold and courageous in all I do.
Love: I attract deep and meaningful connections.
... (continue for all 10 categories)`

func (s *Service) generate(ctx context.Context, sign *astro.Sign, date time.Time) ([]Affirmation, error) {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = fmt.Sprintf("%s (%s)", c.Name, c.Emoji)
	}
	prompt := fmt.Sprintf(batchPrompt,
		sign.Name, zodiacTraits[sign.ID], date.Format("January 02, 2006"),
		strings.Join(parts, ", "), sign.ID)

	text, err := s.ai.Generate(ctx, prompt, gemini.GenerateOptions{
		Temperature:     0.9,
		MaxOutputTokens: 500,
	})
	if err != nil {
		return nil, err
	}

	list := parseBatch(sign.ID, text)
	if len(list) == 0 {
		return nil, errors.New("応答からアファメーションを抽出できなかった")
	}
	return list, nil
}

// parseBatch は「Category: text」形式の応答行をカテゴリ順に取り出す。
// 一致しなかったカテゴリは読み飛ばす。
func parseBatch(signID, text string) []Affirmation {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	out := make([]Affirmation, 0, len(categories))
	for i, cat := range categories {
		prefix := strings.ToLower(cat.Name) + ":"
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(strings.ToLower(line), prefix) {
				continue
			}
			body := strings.Trim(strings.TrimSpace(line[len(prefix):]), `"'`)
			if body != "" {
				out = append(out, Affirmation{
					ID:       fmt.Sprintf("%s_ai_%d", signID, i+1),
					Text:     body,
					Category: cat.Name,
					Emoji:    cat.Emoji,
				})
			}
			break
		}
	}
	return out
}

// persist は当日のプールをdaily_contentへ保存する。
// 保存失敗は応答に影響させない。
func (s *Service) persist(ctx context.Context, signID string, date time.Time, list []Affirmation) {
	payload, err := json.Marshal(list)
	if err != nil {
		slog.Warn("failed to encode affirmation pool", "sign", signID, "error", err)
		return
	}
	err = s.content.Upsert(ctx, &model.DailyContent{
		ID:          uuid.New().String(),
		ContentDate: date,
		Kind:        model.ContentKindAffirmation,
		Sign:        signID,
		Payload:     payload,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		slog.Warn("failed to persist affirmation pool", "sign", signID, "error", err)
	}
}

func filterByCategory(list []Affirmation, category string) []Affirmation {
	out := make([]Affirmation, 0, len(list))
	for _, a := range list {
		if strings.EqualFold(a.Category, category) {
			out = append(out, a)
		}
	}
	return out
}

// userToday はユーザーのタイムゾーンでの今日をUTC深夜0時の日付として返す。
func (s *Service) userToday(user *model.User) time.Time {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := s.now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// dateOnly は時刻を切り捨ててUTCの日付にする。
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// untilEndOfDay は現在からUTC日付の切り替わりまでの時間を返す。
func untilEndOfDay(now time.Time) time.Duration {
	next := dateOnly(now).AddDate(0, 0, 1)
	d := next.Sub(now)
	if d <= 0 {
		return time.Hour
	}
	return d
}
