package horoscope

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

func TestExternalClient_FetchDaily_Primary(t *testing.T) {
	aztroCalled := false

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/get-horoscope/daily" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sign") != "leo" || q.Get("day") != "today" {
			t.Errorf("query = %v", q)
		}
		io.WriteString(w, `{"data": {"horoscope_data": "A golden day awaits.", "date": "Aug 25, 2026"}}`)
	}))
	defer primary.Close()

	aztro := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		aztroCalled = true
	}))
	defer aztro.Close()

	client := NewExternalClient(primary.Client(), testLogger(), primary.URL, aztro.URL)

	got, err := client.FetchDaily(context.Background(), "leo", "today")
	if err != nil {
		t.Fatalf("FetchDaily() error = %v", err)
	}
	if got.Content != "A golden day awaits." || got.Date != "Aug 25, 2026" {
		t.Errorf("FetchDaily() = %+v", got)
	}
	if aztroCalled {
		t.Error("aztro should not be called when primary succeeds")
	}
}

func TestExternalClient_FetchDaily_FallsBackToAztro(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	aztro := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("aztro method = %q, want POST", r.Method)
		}
		q := r.URL.Query()
		if q.Get("sign") != "aries" || q.Get("day") != "tomorrow" {
			t.Errorf("aztro query = %v", q)
		}
		io.WriteString(w, `{
			"description": "Bold moves pay off.",
			"mood": "Energetic",
			"lucky_number": "7",
			"lucky_time": "2:00 PM",
			"color": "Red",
			"compatibility": "Leo",
			"date_range": "Mar 21 - Apr 19"
		}`)
	}))
	defer aztro.Close()

	client := NewExternalClient(primary.Client(), testLogger(), primary.URL, aztro.URL)

	got, err := client.FetchDaily(context.Background(), "aries", "tomorrow")
	if err != nil {
		t.Fatalf("FetchDaily() error = %v", err)
	}

	want := External{
		Content:       "Bold moves pay off.",
		Mood:          "Energetic",
		LuckyNumber:   "7",
		LuckyTime:     "2:00 PM",
		Color:         "Red",
		Compatibility: "Leo",
		DateRange:     "Mar 21 - Apr 19",
	}
	if *got != want {
		t.Errorf("FetchDaily() = %+v, want %+v", *got, want)
	}
}

func TestExternalClient_FetchDaily_EmptyContentTriggersFallback(t *testing.T) {
	// 200でも本文が空なら失敗扱いにしてAztroへ
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"horoscope_data": ""}}`)
	}))
	defer primary.Close()

	aztro := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"description": "Aztro content."}`)
	}))
	defer aztro.Close()

	client := NewExternalClient(primary.Client(), testLogger(), primary.URL, aztro.URL)

	got, err := client.FetchDaily(context.Background(), "leo", "today")
	if err != nil {
		t.Fatalf("FetchDaily() error = %v", err)
	}
	if got.Content != "Aztro content." {
		t.Errorf("Content = %q, want aztro fallback", got.Content)
	}
}

func TestExternalClient_FetchDaily_BothFail(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer primary.Close()

	aztro := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer aztro.Close()

	client := NewExternalClient(primary.Client(), testLogger(), primary.URL, aztro.URL)

	if _, err := client.FetchDaily(context.Background(), "leo", "today"); err == nil {
		t.Error("FetchDaily() expected error when both APIs fail")
	}
}
