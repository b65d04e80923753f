package tarot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/gemini"
	"github.com/hitoshi/starman/internal/model"
)

// Generator はAIリーディングのテキスト生成を抽象化する。
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

var _ Generator = (*gemini.Client)(nil)

// AIReadingInput はAIリーディングのリクエスト。
// UserName/ZodiacSign/Questionは任意で、あればプロンプトに織り込む。
type AIReadingInput struct {
	CardID     int
	IsReversed bool
	UserName   string
	ZodiacSign string
	Question   string
}

// AIReading はパーソナライズされたタロットリーディング。
type AIReading struct {
	PersonalizedReading string `json:"personalized_reading"`
	DailyAdvice         string `json:"daily_advice"`
	ReflectionPrompt    string `json:"reflection_prompt"`
	Affirmation         string `json:"affirmation"`
}

// aiReadingPrompt はGeminiへのプロンプトテンプレート。
// JSONのみで応答させ、呼び出し側で抽出する。
const aiReadingPrompt = `You are a mystical tarot reader providing a deeply personal reading.

Card Drawn: %s (%s)
Base Meaning: %s
%s
%s

Generate a personalized tarot reading %s. Be warm, insightful, and mystical.

Provide:
1. personalized_reading: A 3-4 sentence reading that feels personal and speaks directly to them. If they asked a question, address it. Reference their zodiac if provided.
2. daily_advice: One practical piece of advice for today (1-2 sentences)
3. reflection_prompt: One question for them to reflect on today
4. affirmation: A short, powerful affirmation related to the card (one sentence)

Respond ONLY with valid JSON:
{"personalized_reading": "...", "daily_advice": "...", "reflection_prompt": "...", "affirmation": "..."}`

// AIReading はGeminiでパーソナルリーディングを生成する。
// 生成が無効・失敗の場合は静的解釈から組み立てたリーディングを返す。
func (s *Service) AIReading(ctx context.Context, in AIReadingInput) (*AIReading, error) {
	card := CardByID(in.CardID)
	if card == nil {
		return nil, model.NewCardNotFoundError(in.CardID)
	}

	orientation := "upright"
	if in.IsReversed {
		orientation = "reversed"
	}
	meaning := card.MeaningFor(in.IsReversed)

	if s.ai != nil && s.ai.Enabled() {
		reading, err := s.generateReading(ctx, card, orientation, meaning.Meaning, in)
		if err == nil {
			s.metrics.RecordExternalRequest("gemini", "success")
			s.metrics.RecordAIGeneration("success")
			return reading, nil
		}
		s.metrics.RecordExternalRequest("gemini", "failure")
		s.metrics.RecordAIGeneration("failure")
		slog.Warn("AIタロットリーディングの生成に失敗", "card_id", in.CardID, "error", err)
	}

	return fallbackReading(card, orientation, meaning, in), nil
}

func (s *Service) generateReading(ctx context.Context, card *Card, orientation, baseMeaning string, in AIReadingInput) (*AIReading, error) {
	var nameText string
	if in.UserName != "" {
		nameText = fmt.Sprintf("for %s", in.UserName)
	}
	var zodiacText string
	if in.ZodiacSign != "" {
		zodiacText = fmt.Sprintf("Their zodiac sign is %s.", astro.TitleSign(in.ZodiacSign))
	}
	questionText := "They drew this card for general daily guidance."
	if in.Question != "" {
		questionText = fmt.Sprintf("They asked: %q", in.Question)
	}

	prompt := fmt.Sprintf(aiReadingPrompt, card.Name, orientation, baseMeaning, zodiacText, questionText, nameText)

	text, err := s.ai.Generate(ctx, prompt, gemini.GenerateOptions{
		Temperature:     0.85,
		MaxOutputTokens: 500,
	})
	if err != nil {
		return nil, err
	}

	reading := &AIReading{}
	if err := gemini.DecodeJSON(text, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// fallbackReading は静的解釈からリーディングを組み立てる。
func fallbackReading(card *Card, orientation string, meaning Meaning, in AIReadingInput) *AIReading {
	var namePrefix string
	if in.UserName != "" {
		namePrefix = in.UserName + ", "
	}
	var zodiacFlavor string
	if in.ZodiacSign != "" {
		zodiacFlavor = fmt.Sprintf(" As a %s, this resonates with your natural strengths.", astro.TitleSign(in.ZodiacSign))
	}

	advice := meaning.DailyGuidance
	if advice == "" {
		advice = "Trust your intuition and stay open to the messages around you."
	}

	return &AIReading{
		PersonalizedReading: fmt.Sprintf("%s%s (%s) has appeared for you today. %s%s",
			namePrefix, card.Name, orientation, meaning.Meaning, zodiacFlavor),
		DailyAdvice:      advice,
		ReflectionPrompt: fmt.Sprintf("How does the energy of %s show up in your current situation?", card.Name),
		Affirmation:      fmt.Sprintf("I embrace the wisdom of %s and trust my journey.", card.Name),
	}
}
