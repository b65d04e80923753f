// Package geocoding は出生地検索のためのジオコーディング機能を提供する。
// OpenStreetMap Nominatim APIを使用する（APIキー不要）。
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"
)

const (
	// defaultBaseURL はNominatim APIのベースURL。
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	// userAgent はNominatimの利用規約が要求する識別子。
	userAgent = "starman/1.0"
	// minQueryLength は検索を実行する最小クエリ長（文字数）。
	minQueryLength = 2
	// defaultLimit は1回の検索で返す最大件数。
	defaultLimit = 10
)

// Place は検索結果の1地点。
type Place struct {
	DisplayName string  `json:"display_name"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Client はNominatim検索APIのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient はClientの新しいインスタンスを生成する。
// baseURLが空の場合は公式エンドポイントを使う。
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// nominatimPlace はNominatimレスポンスの1件。緯度経度は文字列で返る。
type nominatimPlace struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Search は地名で都市を検索する。
// クエリが2文字未満の場合はAPIを呼ばず空リストを返す。
// 取得失敗時はエラーを返す（呼び出し元が空リスト応答を判断する）。
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if utf8.RuneCountInString(query) < minQueryLength {
		return []Place{}, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	// リクエストURL構築
	reqURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}
	q := reqURL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")
	q.Set("featuretype", "city")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Nominatim APIの呼び出しに失敗しました",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Nominatim APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, fmt.Errorf("Nominatim APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var results []nominatimPlace
	if err := json.Unmarshal(body, &results); err != nil {
		c.logger.Error("Nominatim APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, item := range results {
		places = append(places, toPlace(item))
	}
	return places, nil
}

// toPlace はNominatim形式を検索結果に変換する。
// 市名はcity > town > villageの優先順で拾い、どれもなければ地点名を使う。
func toPlace(item nominatimPlace) Place {
	city := item.Address.City
	if city == "" {
		city = item.Address.Town
	}
	if city == "" {
		city = item.Address.Village
	}
	if city == "" {
		city = item.Name
	}

	displayName := joinNonEmpty(city, item.Address.State, item.Address.Country)
	if displayName == "" {
		displayName = item.DisplayName
	}

	lat, _ := strconv.ParseFloat(item.Lat, 64)
	lon, _ := strconv.ParseFloat(item.Lon, 64)

	return Place{
		DisplayName: displayName,
		City:        city,
		State:       item.Address.State,
		Country:     item.Address.Country,
		Latitude:    lat,
		Longitude:   lon,
	}
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
