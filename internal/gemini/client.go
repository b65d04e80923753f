// Package gemini はGoogle Gemini APIのクライアントを提供する。
// AIリーディング、チャット、アファメーション生成で共有される。
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
)

// defaultBaseURL はGemini APIのベースURL。
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrDisabled はAPIキー未設定でAI生成が無効なことを表す。
// 呼び出し元は静的フォールバックに切り替える。
var ErrDisabled = errors.New("gemini: API key not configured")

// GenerateOptions は1回の生成リクエストのパラメータ。
// 機能ごとに温度とトークン上限が異なる。
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// Client はGemini generateContent APIのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	model      string
	baseURL    string // テスト用にエンドポイントを差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
// apiKeyが空の場合、GenerateはErrDisabledを返す。
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey, model string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
	}
}

// Enabled はAPIキーが設定されているかを返す。
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate はプロンプトを送信し、最初の候補のテキストを返す。
// APIキー未設定時はErrDisabled。候補が空の場合もエラーを返す。
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if c.apiKey == "" {
		return "", ErrDisabled
	}

	// リクエストボディ構築
	reqBody := generateRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("リクエストJSONの構築に失敗しました: %w", err)
	}

	// APIキーはクエリパラメータで渡す（ログには出さない）
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Gemini APIの呼び出しに失敗しました",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("Gemini APIの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Gemini APIがエラーステータスを返しました",
			slog.String("model", c.model),
			slog.Int("http_status", resp.StatusCode),
		)
		return "", fmt.Errorf("Gemini APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("Gemini APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("Gemini APIが候補テキストを返しませんでした")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// jsonObjectPattern はモデル出力からJSONオブジェクトを抜き出すパターン。
// モデルはコードフェンスや前置きを付けることがあるため、最初の
// ブレース対を取り出してからパースする。
var jsonObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)

// DecodeJSON はモデル出力のテキストからJSONオブジェクトを抽出してoutに
// デコードする。ネストしたオブジェクトは対象外（期待するレスポンスは
// フラットなオブジェクトのみ）。
func DecodeJSON(text string, out any) error {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return errors.New("モデル出力にJSONオブジェクトが含まれていません")
	}
	if err := json.Unmarshal([]byte(match), out); err != nil {
		return fmt.Errorf("モデル出力のJSONパースに失敗しました: %w", err)
	}
	return nil
}
