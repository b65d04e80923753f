package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/starman/internal/chat"
	"github.com/hitoshi/starman/internal/model"
)

// --- モック定義 ---

// mockChatService はChatServiceInterfaceのモック実装。
type mockChatService struct {
	sendFn        func(ctx context.Context, user *model.User, message string, history []chat.Message) (*chat.Reply, error)
	suggestionsFn func() []string
}

func (m *mockChatService) Send(ctx context.Context, user *model.User, message string, history []chat.Message) (*chat.Reply, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, user, message, history)
	}
	return &chat.Reply{Response: "The stars hear you.", Success: true}, nil
}

func (m *mockChatService) Suggestions() []string {
	if m.suggestionsFn != nil {
		return m.suggestionsFn()
	}
	return []string{"What does my sun sign say about me?"}
}

// --- POST /api/chat/message テスト ---

func TestChatHandler_Message_Success(t *testing.T) {
	svc := &mockChatService{
		sendFn: func(ctx context.Context, user *model.User, message string, history []chat.Message) (*chat.Reply, error) {
			if user.ID != "user-123" {
				t.Errorf("user.ID = %q, want %q", user.ID, "user-123")
			}
			if message != "Will Mercury retrograde affect me?" {
				t.Errorf("message = %q", message)
			}
			if len(history) != 2 {
				t.Errorf("history = %d entries, want 2", len(history))
			}
			return &chat.Reply{Response: "Mercury stations direct next week.", Success: true}, nil
		},
	}

	h := NewChatHandler(svc, &mockUserFinder{})

	body := `{
		"message": "Will Mercury retrograde affect me?",
		"history": [
			{"role": "user", "content": "Hi Astra"},
			{"role": "assistant", "content": "Hello, Stella."}
		]
	}`
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(body)), "user-123")
	w := httptest.NewRecorder()

	h.Message(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var reply chat.Reply
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !reply.Success {
		t.Error("success = false, want true")
	}
}

func TestChatHandler_Message_TruncatesLongHistory(t *testing.T) {
	svc := &mockChatService{
		sendFn: func(ctx context.Context, user *model.User, message string, history []chat.Message) (*chat.Reply, error) {
			if len(history) != maxChatHistory {
				t.Errorf("history = %d entries, want %d", len(history), maxChatHistory)
			}
			// 末尾側が残ること。
			if history[len(history)-1].Content != "message 24" {
				t.Errorf("last history entry = %q, want %q", history[len(history)-1].Content, "message 24")
			}
			return &chat.Reply{Success: true}, nil
		},
	}

	h := NewChatHandler(svc, &mockUserFinder{})

	var entries []string
	for i := 0; i < 25; i++ {
		entries = append(entries, fmt.Sprintf(`{"role": "user", "content": "message %d"}`, i))
	}
	body := fmt.Sprintf(`{"message": "hello", "history": [%s]}`, strings.Join(entries, ","))
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(body)), "user-123")
	w := httptest.NewRecorder()

	h.Message(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestChatHandler_Message_EmptyMessage(t *testing.T) {
	svc := &mockChatService{
		sendFn: func(ctx context.Context, user *model.User, message string, history []chat.Message) (*chat.Reply, error) {
			return nil, model.NewMessageRequiredError()
		},
	}

	h := NewChatHandler(svc, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(`{"message": ""}`)), "user-123")
	w := httptest.NewRecorder()

	h.Message(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != "MESSAGE_REQUIRED" {
		t.Errorf("code = %q, want %q", body["code"], "MESSAGE_REQUIRED")
	}
}

func TestChatHandler_Message_NoUserID(t *testing.T) {
	h := NewChatHandler(&mockChatService{}, &mockUserFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(`{"message": "hello"}`))
	w := httptest.NewRecorder()

	h.Message(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

// --- GET /api/chat/suggestions テスト ---

func TestChatHandler_Suggestions(t *testing.T) {
	h := NewChatHandler(&mockChatService{}, &mockUserFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/suggestions", nil)
	w := httptest.NewRecorder()

	h.Suggestions(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected at least one suggestion")
	}
}
