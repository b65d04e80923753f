package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/transit"
)

// --- モック定義 ---

// mockTransitService はTransitServiceInterfaceのモック実装。
type mockTransitService struct {
	currentFn  func(user *model.User) *transit.Overview
	upcomingFn func(user *model.User, days int) []transit.Status
}

func (m *mockTransitService) Current(user *model.User) *transit.Overview {
	if m.currentFn != nil {
		return m.currentFn(user)
	}
	return &transit.Overview{Date: "2025-06-15"}
}

func (m *mockTransitService) Upcoming(user *model.User, days int) []transit.Status {
	if m.upcomingFn != nil {
		return m.upcomingFn(user, days)
	}
	return nil
}

// --- GET /api/transits/current テスト ---

func TestTransitHandler_Current_Success(t *testing.T) {
	svc := &mockTransitService{
		currentFn: func(user *model.User) *transit.Overview {
			if user.ID != "user-123" {
				t.Errorf("user.ID = %q, want %q", user.ID, "user-123")
			}
			return &transit.Overview{
				Date: "2025-06-15",
				Active: []transit.Status{
					{Planet: "mercury", Type: "retrograde", Importance: "high"},
				},
			}
		},
	}

	h := NewTransitHandler(svc, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/transits/current", nil), "user-123")
	w := httptest.NewRecorder()

	h.Current(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var overview struct {
		Date     string           `json:"date"`
		Transits []transit.Status `json:"active_transits"`
	}
	if err := json.NewDecoder(w.Body).Decode(&overview); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(overview.Transits) != 1 || overview.Transits[0].Planet != "mercury" {
		t.Errorf("active_transits = %v, want mercury retrograde", overview.Transits)
	}
}

func TestTransitHandler_Current_NoUserID(t *testing.T) {
	h := NewTransitHandler(&mockTransitService{}, &mockUserFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/transits/current", nil)
	w := httptest.NewRecorder()

	h.Current(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

// --- GET /api/transits/upcoming テスト ---

func TestTransitHandler_Upcoming_PassesDays(t *testing.T) {
	svc := &mockTransitService{
		upcomingFn: func(user *model.User, days int) []transit.Status {
			if days != 90 {
				t.Errorf("days = %d, want 90", days)
			}
			return []transit.Status{
				{Planet: "saturn", Type: "sign_change", SignTo: "aries"},
			}
		},
	}

	h := NewTransitHandler(svc, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/transits/upcoming?days=90", nil), "user-123")
	w := httptest.NewRecorder()

	h.Upcoming(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result struct {
		Transits []transit.Status `json:"transits"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Transits) != 1 || result.Transits[0].Planet != "saturn" {
		t.Errorf("transits = %v, want saturn sign_change", result.Transits)
	}
}

func TestTransitHandler_Upcoming_EmptyResult(t *testing.T) {
	h := NewTransitHandler(&mockTransitService{}, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/transits/upcoming", nil), "user-123")
	w := httptest.NewRecorder()

	h.Upcoming(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
