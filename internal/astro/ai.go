package astro

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/starman/internal/gemini"
)

// ReadingGenerator はAIリーディングのテキスト生成を抽象化する。
type ReadingGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

var _ ReadingGenerator = (*gemini.Client)(nil)

// ReadingMetrics はAIリーディングが記録するメトリクス。
type ReadingMetrics interface {
	RecordExternalRequest(service, outcome string)
	RecordAIGeneration(outcome string)
}

type noopReadingMetrics struct{}

func (noopReadingMetrics) RecordExternalRequest(string, string) {}
func (noopReadingMetrics) RecordAIGeneration(string)            {}

// ReadingInput はAIリーディングの入力。計算済みチャートの主要配置を渡す。
type ReadingInput struct {
	SunSign      string
	SunDegree    float64
	MoonSign     string
	MoonDegree   float64
	RisingSign   string
	RisingDegree float64
	Planets      []BodyPosition
	UserName     string
	BirthDate    string // YYYY-MM-DD、空可
}

// AIReading はパーソナライズされたチャート解釈。
type AIReading struct {
	PersonalizedReading  string   `json:"personalized_reading"`
	SunInterpretation    string   `json:"sun_interpretation"`
	MoonInterpretation   string   `json:"moon_interpretation"`
	RisingInterpretation string   `json:"rising_interpretation"`
	LifeThemes           []string `json:"life_themes"`
}

// ReadingService はチャート全体のAIリーディングを生成する。
// AIが使えない場合は解釈テーブルから定型リーディングを組み立てる。
type ReadingService struct {
	readings *ReadingTable
	ai       ReadingGenerator
	metrics  ReadingMetrics
}

// NewReadingService はReadingServiceの新しいインスタンスを生成する。
// aiはnil可（常に定型リーディングになる）。metricsもnil可。
func NewReadingService(readings *ReadingTable, ai ReadingGenerator, m ReadingMetrics) *ReadingService {
	if m == nil {
		m = noopReadingMetrics{}
	}
	return &ReadingService{readings: readings, ai: ai, metrics: m}
}

// Generate はチャートのリーディングを生成する。
// AI生成もJSONパースも失敗したら定型リーディングへ切り替えるため、
// エラーは返さない。
func (s *ReadingService) Generate(ctx context.Context, in ReadingInput) *AIReading {
	if s.ai != nil && s.ai.Enabled() {
		text, err := s.ai.Generate(ctx, readingPrompt(in), gemini.GenerateOptions{
			Temperature:     0.85,
			MaxOutputTokens: 800,
		})
		if err == nil {
			var reading AIReading
			if err = gemini.DecodeJSON(text, &reading); err == nil {
				s.metrics.RecordExternalRequest("gemini", "success")
				s.metrics.RecordAIGeneration("success")
				return &reading
			}
		}
		s.metrics.RecordExternalRequest("gemini", "failure")
		s.metrics.RecordAIGeneration("failure")
		slog.Warn("AIリーディングの生成に失敗", "error", err)
	}

	return s.staticReading(in)
}

// chartSummary は主要配置をプロンプト用のテキストにする。
func chartSummary(in ReadingInput) string {
	greeting := ""
	if in.UserName != "" {
		greeting = "for " + in.UserName
	}

	birthInfo := ""
	if in.BirthDate != "" {
		if bd, err := time.Parse("2006-01-02", in.BirthDate); err == nil {
			birthInfo = "Born on " + bd.Format("January 02, 2006")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nBirth Chart Analysis %s:\n%s\n\nCore Placements:\n", greeting, birthInfo)
	fmt.Fprintf(&b, "- Sun: %s at %.1f°\n", TitleSign(in.SunSign), in.SunDegree)
	fmt.Fprintf(&b, "- Moon: %s at %.1f°\n", TitleSign(in.MoonSign), in.MoonDegree)
	fmt.Fprintf(&b, "- Rising: %s at %.1f°\n", TitleSign(in.RisingSign), in.RisingDegree)
	b.WriteString("\nOther Planets:\n")
	for _, p := range in.Planets {
		fmt.Fprintf(&b, "- %s: %s at %.1f°\n", TitleSign(p.Planet), TitleSign(p.Sign), p.Degree)
	}
	return b.String()
}

// readingPrompt はGeminiに渡すプロンプトを組み立てる。
// 応答はフラットなJSONオブジェクトを要求する。
func readingPrompt(in ReadingInput) string {
	nameInstruction := "Address the person as 'you'."
	if in.UserName != "" {
		nameInstruction = fmt.Sprintf("Address the person as %s.", in.UserName)
	}

	return fmt.Sprintf(`You are an expert astrologer providing a deeply personalized birth chart reading.

%s

Please provide a warm, insightful reading. %s

Generate:
1. personalized_reading: A 3-4 sentence overall reading that weaves together the Sun, Moon, and Rising signs. Make it feel personal and specifically about THIS combination.
2. sun_interpretation: 2 sentences about their core identity based on Sun in %s
3. moon_interpretation: 2 sentences about their emotional nature based on Moon in %s
4. rising_interpretation: 2 sentences about how others perceive them based on %s Rising
5. life_themes: 3 specific life themes based on their unique planetary positions

Be warm, mystical yet grounded. Avoid generic statements. Focus on the unique combination of energies.

Respond ONLY with valid JSON (no markdown, no extra text):
{"personalized_reading": "...", "sun_interpretation": "...", "moon_interpretation": "...", "rising_interpretation": "...", "life_themes": ["...", "...", "..."]}`,
		chartSummary(in), nameInstruction, TitleSign(in.SunSign), TitleSign(in.MoonSign), TitleSign(in.RisingSign))
}

// staticReading はAIなしで解釈テーブルから定型リーディングを組み立てる。
func (s *ReadingService) staticReading(in ReadingInput) *AIReading {
	namePrefix := "Your"
	if in.UserName != "" {
		namePrefix = in.UserName + ", your"
	}

	sun := TitleSign(in.SunSign)
	moon := TitleSign(in.MoonSign)
	rising := TitleSign(in.RisingSign)

	return &AIReading{
		PersonalizedReading: fmt.Sprintf(
			"%s unique cosmic blueprint combines the creative fire of %s Sun with the emotional depth of %s Moon. "+
				"With %s Rising, you present yourself to the world with distinctive charm. "+
				"This combination creates a beautiful balance between your inner world and outer expression.",
			namePrefix, sun, moon, rising),
		SunInterpretation:    s.readings.Reading("sun", in.SunSign),
		MoonInterpretation:   s.readings.Reading("moon", in.MoonSign),
		RisingInterpretation: s.readings.Reading("ascendant", in.RisingSign),
		LifeThemes: []string{
			fmt.Sprintf("Embracing your %s authenticity", sun),
			fmt.Sprintf("Nurturing your %s emotional wisdom", moon),
			fmt.Sprintf("Expressing your %s Rising confidence", rising),
		},
	}
}
