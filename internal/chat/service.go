// Package chat はAI占星術師「Astra」とのチャットを提供する。
//
// 各リクエストでペルソナプロンプトにユーザーの出生情報と直近の会話
// 履歴を連結し、1回の生成呼び出しで応答を得る。会話の状態はサーバー
// 側に持たず、履歴はクライアントから渡される。
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/gemini"
	"github.com/hitoshi/starman/internal/metrics"
	"github.com/hitoshi/starman/internal/model"
)

// historyWindow はプロンプトに含める履歴メッセージの上限。
const historyWindow = 10

// astraSystemPrompt はAstraのペルソナ定義。
const astraSystemPrompt = `You are Astra, a wise and mystical AI astrologer in the Starman app. You combine ancient astrological wisdom with modern psychological insights.

Your personality:
- Warm, encouraging, and insightful
- You speak with gentle mystical flair but stay grounded and practical
- You reference celestial bodies, transits, and cosmic energy naturally
- You're empathetic and supportive, never judgmental

Your knowledge includes:
- Natal chart interpretation (Sun, Moon, Rising, planets in signs/houses)
- Planetary transits and their effects
- Compatibility and synastry
- Tarot card meanings
- Numerology basics
- Moon phases and their significance

Guidelines:
- Keep responses concise (2-4 paragraphs max)
- Always tie advice back to the user's natal chart when relevant
- Use emojis sparingly for warmth (✨, 🌙, ⭐)
- If you don't know something specific about astrology, say so gracefully
- Never give medical, legal, or financial advice
- Encourage self-reflection and personal growth

The user's birth details and natal chart information will be provided for context.`

// suggestions は会話のきっかけになる定型質問。
var suggestions = []string{
	"What does my Sun sign say about my personality?",
	"How will Mercury retrograde affect me?",
	"What career paths suit my zodiac sign?",
	"Tell me about love compatibility for my sign",
	"What should I focus on this month?",
	"Explain my strengths and challenges",
	"What crystals are good for my sign?",
	"How can I use moon phases in my life?",
}

// Generator はチャット応答のテキスト生成を抽象化する。
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

var _ Generator = (*gemini.Client)(nil)

// Message は会話履歴の1件。Roleは"user"または"assistant"。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply はチャット応答。AIが使えなかった場合はSuccessがfalseになり、
// Responseには定型文が入る。
type Reply struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

// Service はチャット機能のサービス。
type Service struct {
	ai      Generator
	metrics metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// aiはnil可（常に定型応答になる）。metricsもnil可。
func NewService(ai Generator, m metrics.MetricsCollector) *Service {
	if m == nil {
		m = metrics.NoopCollector{}
	}
	return &Service{ai: ai, metrics: m}
}

// Send はメッセージをAstraへ送り応答を返す。
// 生成に失敗しても会話を途切れさせないようエラーではなく定型文で返す。
func (s *Service) Send(ctx context.Context, user *model.User, message string, history []Message) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, model.NewMessageRequiredError()
	}

	if s.ai == nil || !s.ai.Enabled() {
		return &Reply{Response: fallbackResponse(user), Success: false}, nil
	}

	prompt := buildPrompt(user, message, history)

	text, err := s.ai.Generate(ctx, prompt, gemini.GenerateOptions{
		Temperature:     0.8,
		MaxOutputTokens: 500,
	})
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errors.New("空の応答が返された")
		}
	}
	if err != nil {
		s.metrics.RecordExternalRequest("gemini", "failure")
		s.metrics.RecordAIGeneration("failure")
		slog.Warn("チャット応答の生成に失敗", "user_id", user.ID, "error", err)
		return &Reply{Response: fallbackResponse(user), Success: false}, nil
	}

	s.metrics.RecordExternalRequest("gemini", "success")
	s.metrics.RecordAIGeneration("success")
	return &Reply{Response: text, Success: true}, nil
}

// Suggestions は会話のきっかけになる質問の一覧を返す。
func (s *Service) Suggestions() []string {
	return suggestions
}

// buildPrompt はペルソナ、出生情報、直近の履歴、今回のメッセージを
// 1つのプロンプトに連結する。
func buildPrompt(user *model.User, message string, history []Message) string {
	var b strings.Builder
	b.WriteString(astraSystemPrompt)
	b.WriteString("\n\n")
	b.WriteString(natalContext(user))
	b.WriteString("\n\n")

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, m := range history[start:] {
		role := "Astra"
		if m.Role == "user" {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", role, m.Content)
	}

	fmt.Fprintf(&b, "User: %s\n\nAstra:", message)
	return b.String()
}

// natalContext はユーザーの出生情報をプロンプト用の文字列にする。
func natalContext(user *model.User) string {
	if user.BirthDate == nil {
		return "User has not provided birth details yet."
	}

	sign := astro.SignByID(astro.SunSignFromDate(*user.BirthDate))

	name := user.Name
	if name == "" {
		name = "Unknown"
	}

	var b strings.Builder
	b.WriteString("\nUSER'S BIRTH INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Birth Date: %s\n", user.BirthDate.Format("January 02, 2006"))
	fmt.Fprintf(&b, "- Sun Sign: %s\n", sign.Name)
	if user.BirthTime != nil {
		fmt.Fprintf(&b, "- Birth Time: %s\n", *user.BirthTime)
	}
	if user.BirthLocation != nil {
		fmt.Fprintf(&b, "- Birth Location: %s\n", *user.BirthLocation)
	}
	return b.String()
}

// fallbackResponse はAIが使えないときの定型応答。
// 星座が分かっていればそれを織り込む。
func fallbackResponse(user *model.User) string {
	sign := astro.SignByID(user.ZodiacSign)
	if sign == nil {
		return "✨ The cosmic connection is hazy. Please try again!"
	}
	return fmt.Sprintf("✨ The cosmic connection is hazy right now, but the stars still shine on you, %s %s. Please try again in a moment!", sign.Name, sign.Symbol)
}
