// Package synastry はユーザーとパートナーの相性診断を提供する。
//
// スコアは太陽星座ペアの基礎相性行列から導出する。サブスコアは
// ペアでシードした乱数で散らすため、同じ組み合わせでは常に同じ
// 結果になる。
package synastry

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/gemini"
	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/model"
)

var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Generator は相性リーディングのテキスト生成を抽象化する。
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

var _ Generator = (*gemini.Client)(nil)

// Input は相性診断のリクエスト。出生日以外のパートナー情報は任意。
// 出生時刻と出生地は現状スコアに影響しないが、入力として受け付ける。
type Input struct {
	PartnerName      string
	PartnerBirthDate time.Time
	PartnerBirthTime string
	PartnerLatitude  *float64
	PartnerLongitude *float64
}

// Result は相性診断のレスポンス。
type Result struct {
	UserSign           *astro.Sign `json:"user_sign"`
	PartnerSign        *astro.Sign `json:"partner_sign"`
	PartnerName        string      `json:"partner_name,omitempty"`
	OverallScore       int         `json:"overall_score"`
	LoveScore          int         `json:"love_score"`
	CommunicationScore int         `json:"communication_score"`
	TrustScore         int         `json:"trust_score"`
	SharedGoalsScore   int         `json:"shared_goals_score"`
	Strengths          []string    `json:"strengths"`
	Challenges         []string    `json:"challenges"`
	Advice             string      `json:"advice"`
	AIReading          string      `json:"ai_reading,omitempty"`
}

// Service は相性診断のサービス。
type Service struct {
	ai      Generator
	metrics metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// aiはnil可（AIリーディングなしで応答する）。metricsもnil可。
func NewService(ai Generator, m metrics.MetricsCollector) *Service {
	if m == nil {
		m = metrics.NoopCollector{}
	}
	return &Service{ai: ai, metrics: m}
}

// Analyze はユーザーとパートナーの相性を診断する。
// ユーザーの太陽星座は登録済みの出生データから求める。
func (s *Service) Analyze(ctx context.Context, user *model.User, in Input) (*Result, error) {
	if !user.HasBirthData() {
		return nil, model.NewBirthDateRequiredError()
	}
	if in.PartnerBirthDate.IsZero() {
		return nil, model.NewInvalidDateError()
	}
	if in.PartnerBirthTime != "" && !timePattern.MatchString(in.PartnerBirthTime) {
		return nil, model.NewInvalidTimeFormatError("partner_birth_time")
	}

	userSign := astro.SignByID(astro.SunSignFromDate(*user.BirthDate))
	partnerSign := astro.SignByID(astro.SunSignFromDate(in.PartnerBirthDate))

	base := baseCompatibility[userSign.ID][partnerSign.ID]

	// サブスコアは正規化したペアでシードするため、ユーザーと
	// パートナーを入れ替えても同じ値になる
	r := rand.New(rand.NewSource(pairSeed(userSign.ID, partnerSign.ID)))
	love := clampScore(base+r.Intn(25)-12, 5, 99)
	communication := clampScore(base+r.Intn(25)-12, 5, 99)
	trust := clampScore(base+r.Intn(25)-12, 5, 99)
	sharedGoals := clampScore(base+r.Intn(25)-12, 5, 99)

	// 恋愛とコミュニケーションを重めにした加重平均
	overall := (3*love + 3*communication + 2*trust + 2*sharedGoals) / 10

	strengths, challenges := elementInsights(userSign.Element, partnerSign.Element)

	res := &Result{
		UserSign:           userSign,
		PartnerSign:        partnerSign,
		PartnerName:        in.PartnerName,
		OverallScore:       overall,
		LoveScore:          love,
		CommunicationScore: communication,
		TrustScore:         trust,
		SharedGoalsScore:   sharedGoals,
		Strengths:          strengths,
		Challenges:         challenges,
		Advice:             adviceFor(userSign, partnerSign, overall),
	}

	if s.ai != nil && s.ai.Enabled() {
		reading, err := s.generateReading(ctx, userSign, partnerSign, overall)
		if err != nil {
			s.metrics.RecordExternalRequest("gemini", "failure")
			s.metrics.RecordAIGeneration("failure")
			slog.Warn("相性リーディングの生成に失敗", "signs", userSign.ID+"-"+partnerSign.ID, "error", err)
		} else {
			s.metrics.RecordExternalRequest("gemini", "success")
			s.metrics.RecordAIGeneration("success")
			res.AIReading = reading
		}
	}

	return res, nil
}

// elementInsights は四元素の関係から強みと課題を組み立てる。
func elementInsights(e1, e2 string) ([]string, []string) {
	if e1 == e2 {
		strengths := []string{
			fmt.Sprintf("Natural understanding as both are %s signs", e1),
			"Similar emotional needs and communication styles",
			"Intuitive connection and shared values",
		}
		challenges := []string{
			"May amplify each other's weaknesses",
			"Can lack balance without opposing elements",
		}
		return strengths, challenges
	}

	if complementary(e1, e2) {
		strengths := []string{
			fmt.Sprintf("%s and %s naturally complement each other", astro.TitleSign(e1), astro.TitleSign(e2)),
			"Balance of energy and stability",
			"Mutual inspiration and growth",
		}
		challenges := []string{
			"Different paces may cause friction",
			"Need to actively understand each other's nature",
		}
		return strengths, challenges
	}

	strengths := []string{
		"Opportunity to learn and grow from differences",
		"Each brings unique strengths to the relationship",
	}
	challenges := []string{
		"Fundamentally different approaches to life",
		"Communication may require extra effort",
		"Different emotional needs",
	}
	return strengths, challenges
}

// complementary は火と風、地と水の補完関係かを返す。
func complementary(e1, e2 string) bool {
	switch {
	case e1 == "fire" && e2 == "air", e1 == "air" && e2 == "fire":
		return true
	case e1 == "earth" && e2 == "water", e1 == "water" && e2 == "earth":
		return true
	}
	return false
}

func adviceFor(s1, s2 *astro.Sign, score int) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("This is a highly compatible match! Your %s-%s connection has natural flow and mutual understanding. Nurture your bond through shared adventures and deep conversations.", s1.Name, s2.Name)
	case score >= 60:
		return fmt.Sprintf("Your %s-%s pairing has good potential. Focus on celebrating your differences and finding common ground. With effort, this can be a deeply rewarding relationship.", s1.Name, s2.Name)
	default:
		return fmt.Sprintf("While %s and %s face some challenges, growth often comes from differences. Patience, open communication, and mutual respect are key to making this connection work.", s1.Name, s2.Name)
	}
}

// readingPrompt はAIリーディングの生成プロンプト。
const readingPrompt = `As an expert astrologer, provide a personalized synastry reading for a %s and %s relationship.

Their base compatibility score is %d/100.

Write a warm, insightful 2-3 paragraph reading that covers:
1. The unique dynamic between these two signs
2. How their elements and modalities interact
3. Specific advice for making this relationship thrive

Be specific to these signs, not generic. Use engaging, mystical language. Keep it under 200 words.`

func (s *Service) generateReading(ctx context.Context, s1, s2 *astro.Sign, score int) (string, error) {
	prompt := fmt.Sprintf(readingPrompt, s1.Name, s2.Name, score)

	text, err := s.ai.Generate(ctx, prompt, gemini.GenerateOptions{
		Temperature:     0.8,
		MaxOutputTokens: 400,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// pairSeed は星座ペアの決定論的シード。辞書順に正規化する。
func pairSeed(a, b string) int64 {
	if a > b {
		a, b = b, a
	}
	h := fnv.New32a()
	h.Write([]byte(a + "_" + b))
	return int64(h.Sum32())
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
