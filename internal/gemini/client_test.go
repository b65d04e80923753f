package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Generate(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if key := r.URL.Query().Get("key"); key != "test-api-key" {
			t.Errorf("key = %q, want test-api-key", key)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body decode error: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"The stars align for you."}]}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), "test-api-key", "gemini-2.5-flash-lite")
	client.baseURL = server.URL

	got, err := client.Generate(context.Background(), "Write a reading.", GenerateOptions{
		Temperature:     0.85,
		MaxOutputTokens: 800,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "The stars align for you." {
		t.Errorf("Generate() = %q", got)
	}

	if want := "/models/gemini-2.5-flash-lite:generateContent"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("contents shape = %+v", gotBody.Contents)
	}
	if gotBody.Contents[0].Parts[0].Text != "Write a reading." {
		t.Errorf("prompt = %q", gotBody.Contents[0].Parts[0].Text)
	}
	if gotBody.GenerationConfig.Temperature != 0.85 || gotBody.GenerationConfig.MaxOutputTokens != 800 {
		t.Errorf("generationConfig = %+v", gotBody.GenerationConfig)
	}
}

func TestClient_Generate_Disabled(t *testing.T) {
	// APIキー未設定時はリクエストを送らずErrDisabled
	client := NewClient(http.DefaultClient, testLogger(), "", "gemini-2.5-flash-lite")

	_, err := client.Generate(context.Background(), "prompt", GenerateOptions{})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Generate() error = %v, want ErrDisabled", err)
	}
}

func TestClient_Generate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), "key", "gemini-2.5-flash-lite")
	client.baseURL = server.URL

	_, err := client.Generate(context.Background(), "prompt", GenerateOptions{})
	if err == nil {
		t.Fatal("Generate() expected error for HTTP 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestClient_Generate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), testLogger(), "key", "gemini-2.5-flash-lite")
	client.baseURL = server.URL

	if _, err := client.Generate(context.Background(), "prompt", GenerateOptions{}); err == nil {
		t.Error("Generate() expected error for empty candidates")
	}
}

func TestClient_Enabled(t *testing.T) {
	if NewClient(nil, testLogger(), "", "m").Enabled() {
		t.Error("Enabled() = true without API key")
	}
	if !NewClient(nil, testLogger(), "key", "m").Enabled() {
		t.Error("Enabled() = false with API key")
	}
}

func TestDecodeJSON(t *testing.T) {
	type reading struct {
		Text   string   `json:"text"`
		Themes []string `json:"themes"`
	}

	tests := []struct {
		name    string
		input   string
		want    reading
		wantErr bool
	}{
		{
			name:  "素のJSONオブジェクト",
			input: `{"text": "hello", "themes": ["a", "b"]}`,
			want:  reading{Text: "hello", Themes: []string{"a", "b"}},
		},
		{
			name:  "コードフェンスに包まれている",
			input: "```json\n{\"text\": \"hello\", \"themes\": []}\n```",
			want:  reading{Text: "hello", Themes: []string{}},
		},
		{
			name:  "前置きテキスト付き",
			input: "Here is your reading:\n{\"text\": \"hi\", \"themes\": null}",
			want:  reading{Text: "hi"},
		},
		{
			name:    "JSONオブジェクトなし",
			input:   "I cannot produce JSON today.",
			wantErr: true,
		},
		{
			name:    "ブレース内が不正",
			input:   "{not valid json}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got reading
			err := DecodeJSON(tt.input, &got)
			if tt.wantErr {
				if err == nil {
					t.Error("DecodeJSON() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			if got.Text != tt.want.Text || len(got.Themes) != len(tt.want.Themes) {
				t.Errorf("DecodeJSON() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
