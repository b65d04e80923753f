package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/starman/internal/affirmation"
	"github.com/hitoshi/starman/internal/model"
)

// --- モック定義 ---

// mockAffirmationService はAffirmationServiceInterfaceのモック実装。
type mockAffirmationService struct {
	categoriesFn func() []affirmation.Category
	dailyFn      func(ctx context.Context, user *model.User, signID, category string) (*affirmation.DailyPick, error)
}

func (m *mockAffirmationService) Categories() []affirmation.Category {
	if m.categoriesFn != nil {
		return m.categoriesFn()
	}
	return []affirmation.Category{{Name: "confidence", Emoji: "💪"}}
}

func (m *mockAffirmationService) Daily(ctx context.Context, user *model.User, signID, category string) (*affirmation.DailyPick, error) {
	if m.dailyFn != nil {
		return m.dailyFn(ctx, user, signID, category)
	}
	return &affirmation.DailyPick{Date: "2025-06-15"}, nil
}

// --- GET /api/affirmations/categories テスト ---

func TestAffirmationHandler_Categories(t *testing.T) {
	h := NewAffirmationHandler(&mockAffirmationService{}, &mockUserFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/affirmations/categories", nil)
	w := httptest.NewRecorder()

	h.Categories(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result struct {
		Categories []affirmation.Category `json:"categories"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Categories) != 1 || result.Categories[0].Name != "confidence" {
		t.Errorf("categories = %v, want [confidence]", result.Categories)
	}
}

// --- GET /api/affirmations/daily テスト ---

func TestAffirmationHandler_Daily_UsesProfileSign(t *testing.T) {
	svc := &mockAffirmationService{
		dailyFn: func(ctx context.Context, user *model.User, signID, category string) (*affirmation.DailyPick, error) {
			if signID != "capricorn" {
				t.Errorf("signID = %q, want %q (from profile)", signID, "capricorn")
			}
			if category != "abundance" {
				t.Errorf("category = %q, want %q", category, "abundance")
			}
			return &affirmation.DailyPick{
				Affirmation: affirmation.Affirmation{Text: "I am open to the wealth the universe offers."},
				Date:        "2025-06-15",
				Index:       4,
				Total:       30,
			}, nil
		},
	}

	h := NewAffirmationHandler(svc, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/affirmations/daily?category=abundance", nil), "user-123")
	w := httptest.NewRecorder()

	h.Daily(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var pick affirmation.DailyPick
	if err := json.NewDecoder(w.Body).Decode(&pick); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pick.Index != 4 || pick.Total != 30 {
		t.Errorf("pick = %+v, want index 4 of 30", pick)
	}
}

func TestAffirmationHandler_Daily_NoUserID(t *testing.T) {
	h := NewAffirmationHandler(&mockAffirmationService{}, &mockUserFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/affirmations/daily", nil)
	w := httptest.NewRecorder()

	h.Daily(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}
