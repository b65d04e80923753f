package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/starman/internal/geocoding"
)

// --- モック定義 ---

// mockGeocodingClient はGeocodingClientInterfaceのモック実装。
type mockGeocodingClient struct {
	searchFn func(ctx context.Context, query string, limit int) ([]geocoding.Place, error)
}

func (m *mockGeocodingClient) Search(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

// --- GET /api/geocoding/search テスト ---

func TestGeocodingHandler_Search_Success(t *testing.T) {
	client := &mockGeocodingClient{
		searchFn: func(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
			if query != "Tokyo" {
				t.Errorf("query = %q, want %q", query, "Tokyo")
			}
			if limit != 5 {
				t.Errorf("limit = %d, want 5", limit)
			}
			return []geocoding.Place{
				{
					DisplayName: "Tokyo, Japan",
					City:        "Tokyo",
					Country:     "Japan",
					Latitude:    35.6763,
					Longitude:   139.6503,
				},
			}, nil
		},
	}

	h := NewGeocodingHandler(client)

	req := httptest.NewRequest(http.MethodGet, "/api/geocoding/search?query=Tokyo", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result struct {
		Results []geocoding.Place `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Results) != 1 || result.Results[0].City != "Tokyo" {
		t.Errorf("results = %v, want [Tokyo]", result.Results)
	}
}

func TestGeocodingHandler_Search_QueryTooShort(t *testing.T) {
	h := NewGeocodingHandler(&mockGeocodingClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/geocoding/search?query=T", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != "QUERY_TOO_SHORT" {
		t.Errorf("code = %q, want %q", body["code"], "QUERY_TOO_SHORT")
	}
}

func TestGeocodingHandler_Search_MultibyteQueryCountsRunes(t *testing.T) {
	client := &mockGeocodingClient{
		searchFn: func(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
			return []geocoding.Place{{City: "東京"}}, nil
		},
	}

	h := NewGeocodingHandler(client)

	// 2ルーンはバイト長ではなく文字数で判定される。
	req := httptest.NewRequest(http.MethodGet, "/api/geocoding/search?query=東京", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestGeocodingHandler_Search_UpstreamFailure(t *testing.T) {
	client := &mockGeocodingClient{
		searchFn: func(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
			return nil, errors.New("nominatim timeout")
		},
	}

	h := NewGeocodingHandler(client)

	req := httptest.NewRequest(http.MethodGet, "/api/geocoding/search?query=Tokyo", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != "GEOCODING_FAILED" {
		t.Errorf("code = %q, want %q", body["code"], "GEOCODING_FAILED")
	}
}

func TestGeocodingHandler_Search_EmptyResults(t *testing.T) {
	h := NewGeocodingHandler(&mockGeocodingClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/geocoding/search?query=Atlantis", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
