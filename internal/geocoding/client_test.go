package geocoding

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Search(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "starman/1.0" {
			t.Errorf("User-Agent = %q, want starman/1.0", ua)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":              q.Get("q"),
			"format":         q.Get("format"),
			"limit":          q.Get("limit"),
			"addressdetails": q.Get("addressdetails"),
			"featuretype":    q.Get("featuretype"),
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"name": "Tokyo", "display_name": "Tokyo, Japan", "lat": "35.6762", "lon": "139.6503",
			 "address": {"city": "Tokyo", "state": "Tokyo Metropolis", "country": "Japan"}},
			{"name": "Shibuya", "display_name": "Shibuya, Tokyo, Japan", "lat": "35.664", "lon": "139.698",
			 "address": {"town": "Shibuya", "country": "Japan"}}
		]`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), server.URL)

	places, err := client.Search(context.Background(), "Tokyo", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery["q"] != "Tokyo" || gotQuery["format"] != "json" || gotQuery["limit"] != "5" {
		t.Errorf("query params = %v", gotQuery)
	}
	if gotQuery["addressdetails"] != "1" || gotQuery["featuretype"] != "city" {
		t.Errorf("query params = %v", gotQuery)
	}

	if len(places) != 2 {
		t.Fatalf("len(places) = %d, want 2", len(places))
	}

	want := Place{
		DisplayName: "Tokyo, Tokyo Metropolis, Japan",
		City:        "Tokyo",
		State:       "Tokyo Metropolis",
		Country:     "Japan",
		Latitude:    35.6762,
		Longitude:   139.6503,
	}
	if places[0] != want {
		t.Errorf("places[0] = %+v, want %+v", places[0], want)
	}

	// cityがなければtownを市名として使う
	if places[1].City != "Shibuya" {
		t.Errorf("places[1].City = %q, want Shibuya", places[1].City)
	}
	if places[1].DisplayName != "Shibuya, Japan" {
		t.Errorf("places[1].DisplayName = %q, want Shibuya, Japan", places[1].DisplayName)
	}
}

func TestClient_Search_ShortQuery(t *testing.T) {
	// 2文字未満はAPIを呼ばず空リスト
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), server.URL)

	places, err := client.Search(context.Background(), "T", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(places) != 0 {
		t.Errorf("len(places) = %d, want 0", len(places))
	}
	if called {
		t.Error("short query should not reach the API")
	}

	// マルチバイト2文字は検索対象
	if _, err := client.Search(context.Background(), "東京", 10); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !called {
		t.Error("two-rune query should reach the API")
	}
}

func TestClient_Search_DefaultLimit(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), server.URL)

	if _, err := client.Search(context.Background(), "Tokyo", 0); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotLimit != "10" {
		t.Errorf("limit = %q, want 10", gotLimit)
	}
}

func TestClient_Search_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), server.URL)

	if _, err := client.Search(context.Background(), "Tokyo", 10); err == nil {
		t.Error("Search() expected error for HTTP 503")
	}
}

func TestClient_Search_FallbackNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// addressが空: nameとdisplay_nameにフォールバック
		io.WriteString(w, `[{"name": "Atlantis", "display_name": "Atlantis, Deep Sea", "lat": "bad", "lon": ""}]`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), server.URL)

	places, err := client.Search(context.Background(), "Atlantis", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("len(places) = %d, want 1", len(places))
	}
	if places[0].City != "Atlantis" {
		t.Errorf("City = %q, want Atlantis", places[0].City)
	}
	// city名だけでもdisplay_nameはそこから組み立てる
	if places[0].DisplayName != "Atlantis" {
		t.Errorf("DisplayName = %q, want Atlantis", places[0].DisplayName)
	}
	// パースできない座標は0
	if places[0].Latitude != 0 || places[0].Longitude != 0 {
		t.Errorf("coordinates = %v,%v, want 0,0", places[0].Latitude, places[0].Longitude)
	}
}
