// Package horoscope はデイリー・週間ホロスコープと相性診断を提供する。
// 外部の無料ホロスコープAPIを優先し、失敗時は決定論的な生成にフォールバックする。
package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const (
	// defaultPrimaryBaseURL はHoroscope App APIのベースURL。
	defaultPrimaryBaseURL = "https://horoscope-app-api.vercel.app"
	// defaultAztroURL はAztro APIのエンドポイント。
	defaultAztroURL = "https://aztro.sameerkumar.website"
)

// External は外部APIから取得したホロスコープ。
// 取得元によって埋まるフィールドが異なる（Aztroのみラッキー情報を持つ）。
type External struct {
	Content       string
	Date          string
	Mood          string
	LuckyNumber   string
	LuckyTime     string
	Color         string
	Compatibility string
	DateRange     string
}

// ExternalClient は外部ホロスコープAPIのクライアント。
// Horoscope App APIを先に試し、失敗したらAztro APIへフォールバックする。
type ExternalClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	primaryURL string // テスト用に差し替え可能
	aztroURL   string
}

// NewExternalClient はExternalClientの新しいインスタンスを生成する。
// URLが空の場合は公式エンドポイントを使う。
func NewExternalClient(httpClient *http.Client, logger *slog.Logger, primaryURL, aztroURL string) *ExternalClient {
	if primaryURL == "" {
		primaryURL = defaultPrimaryBaseURL
	}
	if aztroURL == "" {
		aztroURL = defaultAztroURL
	}
	return &ExternalClient{
		httpClient: httpClient,
		logger:     logger,
		primaryURL: primaryURL,
		aztroURL:   aztroURL,
	}
}

// FetchDaily は外部APIからデイリーホロスコープを取得する。
// 両方のAPIが失敗した場合はエラーを返す（呼び出し元がフォールバック生成を判断する）。
func (c *ExternalClient) FetchDaily(ctx context.Context, signID, day string) (*External, error) {
	if h, err := c.fetchPrimary(ctx, signID, day); err == nil {
		return h, nil
	} else {
		c.logger.Warn("ホロスコープAPIの取得に失敗しました。Aztroを試します",
			slog.String("sign", signID),
			slog.String("error", err.Error()),
		)
	}

	h, err := c.fetchAztro(ctx, signID, day)
	if err != nil {
		c.logger.Warn("Aztro APIの取得にも失敗しました",
			slog.String("sign", signID),
			slog.String("error", err.Error()),
		)
		return nil, errors.New("外部ホロスコープAPIが利用できません")
	}
	return h, nil
}

// primaryResponse はHoroscope App APIのレスポンス。
type primaryResponse struct {
	Data struct {
		HoroscopeData string `json:"horoscope_data"`
		Date          string `json:"date"`
	} `json:"data"`
}

func (c *ExternalClient) fetchPrimary(ctx context.Context, signID, day string) (*External, error) {
	reqURL, err := url.Parse(c.primaryURL + "/api/v1/get-horoscope/daily")
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}
	q := reqURL.Query()
	q.Set("sign", signID)
	q.Set("day", day)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ホロスコープAPIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var result primaryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	if result.Data.HoroscopeData == "" {
		return nil, errors.New("ホロスコープAPIが本文を返しませんでした")
	}

	return &External{
		Content: result.Data.HoroscopeData,
		Date:    result.Data.Date,
	}, nil
}

// aztroResponse はAztro APIのレスポンス。
type aztroResponse struct {
	Description   string `json:"description"`
	Mood          string `json:"mood"`
	LuckyNumber   string `json:"lucky_number"`
	LuckyTime     string `json:"lucky_time"`
	Color         string `json:"color"`
	Compatibility string `json:"compatibility"`
	DateRange     string `json:"date_range"`
}

func (c *ExternalClient) fetchAztro(ctx context.Context, signID, day string) (*External, error) {
	reqURL, err := url.Parse(c.aztroURL)
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}
	q := reqURL.Query()
	q.Set("sign", signID)
	q.Set("day", day)
	reqURL.RawQuery = q.Encode()

	// Aztroはクエリパラメータ付きPOSTという変わった形式を取る
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Aztro APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var result aztroResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	if result.Description == "" {
		return nil, errors.New("Aztro APIが本文を返しませんでした")
	}

	return &External{
		Content:       result.Description,
		Mood:          result.Mood,
		LuckyNumber:   result.LuckyNumber,
		LuckyTime:     result.LuckyTime,
		Color:         result.Color,
		Compatibility: result.Compatibility,
		DateRange:     result.DateRange,
	}, nil
}
