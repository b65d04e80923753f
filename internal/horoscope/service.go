package horoscope

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
)

// ckDaily はデイリーホロスコープのL1キャッシュキー（星座, 日付）。
const ckDaily = "horoscope:daily:%s:%s"

// fallbackCacheTTL はフォールバック生成結果のキャッシュ保持時間。
// 外部APIの復旧を妨げないよう当日いっぱいではなく短時間にする。
const fallbackCacheTTL = time.Hour

// Daily はデイリーホロスコープのレスポンス。
type Daily struct {
	SignID        string      `json:"sign_id"`
	Sign          *astro.Sign `json:"sign"`
	Date          string      `json:"date"`
	Content       string      `json:"content"`
	Mood          string      `json:"mood"`
	LuckyTime     string      `json:"lucky_time"`
	LuckyNumber   string      `json:"lucky_number"`
	Color         string      `json:"color,omitempty"`
	Compatibility string      `json:"compatibility,omitempty"`
	Source        string      `json:"source"`
	Rating        int         `json:"rating"`
}

// Weekly は週間ホロスコープのレスポンス。
type Weekly struct {
	SignID     string      `json:"sign_id"`
	Sign       *astro.Sign `json:"sign"`
	Week       int         `json:"week"`
	Content    string      `json:"content"`
	FocusAreas []string    `json:"focus_areas"`
	Challenges []string    `json:"challenges"`
}

// Compatibility は星座相性のレスポンス。
type Compatibility struct {
	Sign1              *astro.Sign `json:"sign1"`
	Sign2              *astro.Sign `json:"sign2"`
	OverallScore       int         `json:"overall_score"`
	LoveScore          int         `json:"love_score"`
	FriendshipScore    int         `json:"friendship_score"`
	CommunicationScore int         `json:"communication_score"`
	Summary            string      `json:"summary"`
	Strengths          []string    `json:"strengths"`
	Challenges         []string    `json:"challenges"`
}

// ExternalFetcher は外部ホロスコープAPIへのアクセスを抽象化する。
type ExternalFetcher interface {
	FetchDaily(ctx context.Context, signID, day string) (*External, error)
}

// Service はホロスコープ機能のサービス。
// デイリーはL1キャッシュ → daily_contentテーブル → 外部API → 決定論的
// フォールバックの順に解決する。
type Service struct {
	external ExternalFetcher
	content  repository.DailyContentRepository
	cache    *cache.Cache
	metrics  metrics.MetricsCollector
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。metricsはnil可。
func NewService(external ExternalFetcher, content repository.DailyContentRepository, c *cache.Cache, m metrics.MetricsCollector) *Service {
	if m == nil {
		m = metrics.NoopCollector{}
	}
	return &Service{
		external: external,
		content:  content,
		cache:    c,
		metrics:  m,
		now:      time.Now,
	}
}

// Signs は12星座の一覧を返す。
func (s *Service) Signs() []astro.Sign {
	return astro.AllSigns
}

// Daily はデイリーホロスコープを返す。dayはtoday/tomorrow/yesterday（空はtoday）。
func (s *Service) Daily(ctx context.Context, signID, day string) (*Daily, error) {
	sign := astro.SignByID(signID)
	if sign == nil {
		return nil, model.NewInvalidSignError(signID)
	}

	day, offset, ok := resolveDay(day)
	if !ok {
		return nil, model.NewInvalidDayError(day)
	}

	now := s.now().UTC()
	date := dateOnly(now.AddDate(0, 0, offset))
	key := fmt.Sprintf(ckDaily, signID, date.Format("2006-01-02"))

	// 1. L1キャッシュ
	if v, found := s.cache.Get(key); found {
		if d, castOK := v.(*Daily); castOK {
			s.metrics.RecordContentSource("cache")
			return d, nil
		}
	}

	// 2. ウォームワーカーが事前生成したdaily_content
	if row, err := s.content.Find(ctx, date, model.ContentKindHoroscope, signID); err != nil {
		slog.Warn("failed to read daily content", "sign", signID, "error", err)
	} else if row != nil {
		d := &Daily{}
		if err := json.Unmarshal(row.Payload, d); err != nil {
			slog.Warn("broken daily content payload", "sign", signID, "error", err)
		} else {
			d.Sign = sign
			s.cache.Set(key, d, untilEndOfDay(now))
			s.metrics.RecordContentSource("db")
			return d, nil
		}
	}

	// 3. 外部APIチェーン → 4. 決定論的フォールバック
	ext, err := s.external.FetchDaily(ctx, signID, day)
	if err != nil {
		s.metrics.RecordExternalRequest("horoscope", "failure")
		s.metrics.RecordContentSource("fallback")

		d := s.assemble(sign, date, generateFallback(signID, date), "fallback")
		// 外部APIの復旧を試せるよう短時間だけキャッシュし、DBには書かない
		s.cache.Set(key, d, fallbackCacheTTL)
		return d, nil
	}

	s.metrics.RecordExternalRequest("horoscope", "success")
	s.metrics.RecordContentSource("external")

	d := s.assemble(sign, date, ext, "real_api")
	s.cache.Set(key, d, untilEndOfDay(now))
	s.persist(ctx, signID, date, d)
	return d, nil
}

// assemble は取得結果からレスポンスを組み立てる。
// 外部APIが持たないフィールドは日付シードの生成値で補う。
func (s *Service) assemble(sign *astro.Sign, date time.Time, ext *External, source string) *Daily {
	fill := generateFallback(sign.ID, date)

	mood := ext.Mood
	if mood == "" {
		mood = fill.Mood
	}
	luckyNumber := ext.LuckyNumber
	if luckyNumber == "" {
		luckyNumber = fill.LuckyNumber
	}

	return &Daily{
		SignID:        sign.ID,
		Sign:          sign,
		Date:          s.now().UTC().Format(time.RFC3339),
		Content:       ext.Content,
		Mood:          mood,
		LuckyTime:     ext.LuckyTime,
		LuckyNumber:   luckyNumber,
		Color:         ext.Color,
		Compatibility: ext.Compatibility,
		Source:        source,
		Rating:        dailyRating(sign.ID, date),
	}
}

// persist は当日のコンテンツをdaily_contentへ保存する。
// 保存失敗は応答に影響させない。
func (s *Service) persist(ctx context.Context, signID string, date time.Time, d *Daily) {
	payload, err := json.Marshal(d)
	if err != nil {
		slog.Warn("failed to encode daily content", "sign", signID, "error", err)
		return
	}
	err = s.content.Upsert(ctx, &model.DailyContent{
		ID:          uuid.New().String(),
		ContentDate: date,
		Kind:        model.ContentKindHoroscope,
		Sign:        signID,
		Payload:     payload,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		slog.Warn("failed to persist daily content", "sign", signID, "error", err)
	}
}

// weeklyThemes は週間ホロスコープの導入フレーズ。
var weeklyThemes = []string{"exciting opportunities", "time for reflection", "new connections", "creative energy"}

// focusAreas は週間ホロスコープの注目領域プール。
var focusAreas = []string{"Love", "Career", "Health", "Finance", "Personal Growth"}

// weeklyChallenges は週間ホロスコープの課題プール。
var weeklyChallenges = []string{"Patience", "Communication", "Balance", "Focus", "Trust"}

// Weekly は週間ホロスコープを返す。ISO週番号でシードし週内は安定する。
func (s *Service) Weekly(ctx context.Context, signID string) (*Weekly, error) {
	sign := astro.SignByID(signID)
	if sign == nil {
		return nil, model.NewInvalidSignError(signID)
	}

	_, week := s.now().UTC().ISOWeek()
	r := rand.New(rand.NewSource(int64(week) + signSeed(signID)))

	theme := weeklyThemes[r.Intn(len(weeklyThemes))]
	content := fmt.Sprintf("This week brings %s for %s. %s",
		theme, sign.Name, fallbackMessages[r.Intn(len(fallbackMessages))])

	return &Weekly{
		SignID:     signID,
		Sign:       sign,
		Week:       week,
		Content:    content,
		FocusAreas: sampleStrings(r, focusAreas, 3),
		Challenges: sampleStrings(r, weeklyChallenges, 2),
	}, nil
}

// elementScores は四元素の組み合わせごとの基礎相性スコア。
var elementScores = map[string]int{
	"fire|fire": 85, "fire|air": 90, "fire|earth": 50, "fire|water": 60,
	"air|air": 80, "air|earth": 55, "air|water": 65,
	"earth|earth": 85, "earth|water": 90,
	"water|water": 80,
}

// elementBaseScore は2つの元素の基礎スコアを返す（順序に依存しない）。
func elementBaseScore(e1, e2 string) int {
	if v, ok := elementScores[e1+"|"+e2]; ok {
		return v
	}
	if v, ok := elementScores[e2+"|"+e1]; ok {
		return v
	}
	return 70
}

// Compatibility は2星座の相性を返す。
// シードは星座ペアの辞書順で正規化し、引数の順序を入れ替えても
// 同じスコアになる。
func (s *Service) Compatibility(ctx context.Context, sign1ID, sign2ID string) (*Compatibility, error) {
	sign1 := astro.SignByID(sign1ID)
	if sign1 == nil {
		return nil, model.NewInvalidSignError(sign1ID)
	}
	sign2 := astro.SignByID(sign2ID)
	if sign2 == nil {
		return nil, model.NewInvalidSignError(sign2ID)
	}

	base := elementBaseScore(sign1.Element, sign2.Element)

	a, b := sign1ID, sign2ID
	if a > b {
		a, b = b, a
	}
	r := rand.New(rand.NewSource(signSeed(a + "_" + b)))

	overall := clampScore(base+r.Intn(21)-10, 40, 98)

	var chemistry string
	switch {
	case base > 80:
		chemistry = "share great natural chemistry"
	case base > 60:
		chemistry = "can create balance with effort"
	default:
		chemistry = "have an interesting dynamic"
	}

	return &Compatibility{
		Sign1:              sign1,
		Sign2:              sign2,
		OverallScore:       overall,
		LoveScore:          clampScore(overall+r.Intn(31)-15, 40, 98),
		FriendshipScore:    clampScore(overall+r.Intn(21)-10, 50, 98),
		CommunicationScore: clampScore(overall+r.Intn(25)-12, 45, 98),
		Summary: fmt.Sprintf("%s (%s) and %s (%s) %s.",
			sign1.Name, astro.TitleSign(sign1.Element),
			sign2.Name, astro.TitleSign(sign2.Element), chemistry),
		Strengths:  []string{"Mutual respect", "Complementary energies", "Shared interests"},
		Challenges: []string{"Different communication styles", "Need for patience"},
	}, nil
}

// resolveDay はday指定を正規化し、今日からのオフセット日数を返す。
func resolveDay(day string) (string, int, bool) {
	switch day {
	case "", "today":
		return "today", 0, true
	case "tomorrow":
		return "tomorrow", 1, true
	case "yesterday":
		return "yesterday", -1, true
	default:
		return day, 0, false
	}
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

// sampleStrings はプールから重複なくn件選ぶ。
func sampleStrings(r *rand.Rand, pool []string, n int) []string {
	idx := r.Perm(len(pool))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

func clampScore(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ ExternalFetcher = (*ExternalClient)(nil)
