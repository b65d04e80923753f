package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/numerology"
)

// --- モック定義 ---

// mockNumerologyService はNumerologyServiceInterfaceのモック実装。
type mockNumerologyService struct {
	profileFn func(user *model.User) (*numerology.Profile, error)
	dailyFn   func(user *model.User) (*numerology.DailyNumber, error)
}

func (m *mockNumerologyService) Profile(user *model.User) (*numerology.Profile, error) {
	if m.profileFn != nil {
		return m.profileFn(user)
	}
	return &numerology.Profile{LifePathNumber: 1}, nil
}

func (m *mockNumerologyService) Daily(user *model.User) (*numerology.DailyNumber, error) {
	if m.dailyFn != nil {
		return m.dailyFn(user)
	}
	return &numerology.DailyNumber{PersonalDay: 5}, nil
}

// --- GET /api/numerology/profile テスト ---

func TestNumerologyHandler_Profile_Success(t *testing.T) {
	svc := &mockNumerologyService{
		profileFn: func(user *model.User) (*numerology.Profile, error) {
			if user.ID != "user-123" {
				t.Errorf("user.ID = %q, want %q", user.ID, "user-123")
			}
			return &numerology.Profile{
				LifePathNumber:  9,
				LifePathMeaning: "The humanitarian path.",
				PersonalYear:    3,
			}, nil
		},
	}

	h := NewNumerologyHandler(svc, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/numerology/profile", nil), "user-123")
	w := httptest.NewRecorder()

	h.Profile(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var profile numerology.Profile
	if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if profile.LifePathNumber != 9 {
		t.Errorf("life_path_number = %d, want 9", profile.LifePathNumber)
	}
}

func TestNumerologyHandler_Profile_BirthDateMissing(t *testing.T) {
	finder := &mockUserFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			user := newTestUser()
			user.BirthDate = nil
			return user, nil
		},
	}
	svc := &mockNumerologyService{
		profileFn: func(user *model.User) (*numerology.Profile, error) {
			return nil, model.NewBirthDateRequiredError()
		},
	}

	h := NewNumerologyHandler(svc, finder)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/numerology/profile", nil), "user-123")
	w := httptest.NewRecorder()

	h.Profile(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != "BIRTH_DATE_REQUIRED" {
		t.Errorf("code = %q, want %q", body["code"], "BIRTH_DATE_REQUIRED")
	}
}

func TestNumerologyHandler_Profile_NoUserID(t *testing.T) {
	h := NewNumerologyHandler(&mockNumerologyService{}, &mockUserFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/numerology/profile", nil)
	w := httptest.NewRecorder()

	h.Profile(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

// --- GET /api/numerology/daily テスト ---

func TestNumerologyHandler_Daily_Success(t *testing.T) {
	svc := &mockNumerologyService{
		dailyFn: func(user *model.User) (*numerology.DailyNumber, error) {
			return &numerology.DailyNumber{
				Date:        "2025-06-15",
				PersonalDay: 7,
				Meaning:     "A day for reflection and inner work.",
			}, nil
		},
	}

	h := NewNumerologyHandler(svc, &mockUserFinder{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/numerology/daily", nil), "user-123")
	w := httptest.NewRecorder()

	h.Daily(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var daily numerology.DailyNumber
	if err := json.NewDecoder(w.Body).Decode(&daily); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if daily.PersonalDay != 7 {
		t.Errorf("personal_day = %d, want 7", daily.PersonalDay)
	}
}
