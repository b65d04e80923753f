package tarot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/starman/internal/gemini"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
)

type mockTarotRepo struct {
	findDailyFn   func(ctx context.Context, userID string, date time.Time) (*model.TarotDraw, error)
	findSpreadFn  func(ctx context.Context, userID string, date time.Time) ([]*model.TarotDraw, error)
	listFn        func(ctx context.Context, userID string, limit int) ([]*model.TarotDraw, error)
	created       []*model.TarotDraw
	deletedDaily  int
	deletedSpread int
}

func (m *mockTarotRepo) Create(_ context.Context, draw *model.TarotDraw) error {
	m.created = append(m.created, draw)
	return nil
}

func (m *mockTarotRepo) FindDailyDraw(ctx context.Context, userID string, date time.Time) (*model.TarotDraw, error) {
	if m.findDailyFn == nil {
		return nil, nil
	}
	return m.findDailyFn(ctx, userID, date)
}

func (m *mockTarotRepo) DeleteDailyDraw(_ context.Context, _ string, _ time.Time) error {
	m.deletedDaily++
	return nil
}

func (m *mockTarotRepo) FindSpread(ctx context.Context, userID string, date time.Time) ([]*model.TarotDraw, error) {
	if m.findSpreadFn == nil {
		return nil, nil
	}
	return m.findSpreadFn(ctx, userID, date)
}

func (m *mockTarotRepo) DeleteSpread(_ context.Context, _ string, _ time.Time) error {
	m.deletedSpread++
	return nil
}

func (m *mockTarotRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.TarotDraw, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, userID, limit)
}

func (m *mockTarotRepo) DeleteByUserID(_ context.Context, _ string) error { return nil }

var _ repository.TarotRepository = (*mockTarotRepo)(nil)

type mockGenerator struct {
	enabled    bool
	generateFn func(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

func (m *mockGenerator) Enabled() bool { return m.enabled }

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error) {
	if m.generateFn == nil {
		return "", errors.New("unexpected call")
	}
	return m.generateFn(ctx, prompt, opts)
}

var _ Generator = (*mockGenerator)(nil)

func freeUser() *model.User {
	return &model.User{ID: "user-1", Timezone: "UTC", SubscriptionTier: model.TierFree}
}

func premiumUser() *model.User {
	exp := time.Now().Add(24 * time.Hour)
	return &model.User{
		ID:                    "user-1",
		Timezone:              "UTC",
		SubscriptionTier:      model.TierPremium,
		SubscriptionExpiresAt: &exp,
	}
}

func TestService_Daily_FirstDraw(t *testing.T) {
	repo := &mockTarotRepo{}
	svc := NewService(repo, nil, nil)
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	d, err := svc.Daily(context.Background(), freeUser(), false)
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	if d.AlreadyDrawn {
		t.Error("first draw should not be already_drawn")
	}
	if d.Card == nil || d.Card.ID < 0 || d.Card.ID > 21 {
		t.Fatalf("unexpected card: %+v", d.Card)
	}
	want := d.Card.MeaningFor(d.IsReversed)
	if d.Interpretation != want.Meaning || d.DailyGuidance != want.DailyGuidance {
		t.Error("interpretation does not match the card orientation")
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(repo.created))
	}
	row := repo.created[0]
	if row.Position != model.TarotPositionSingle {
		t.Errorf("Position = %q, want single", row.Position)
	}
	if row.CardID != d.Card.ID || row.IsReversed != d.IsReversed {
		t.Error("persisted row does not match the response")
	}
	wantDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !row.ReadingDate.Equal(wantDate) {
		t.Errorf("ReadingDate = %v, want %v", row.ReadingDate, wantDate)
	}
}

func TestService_Daily_Deterministic(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	draw := func() *DailyDraw {
		repo := &mockTarotRepo{}
		svc := NewService(repo, nil, nil)
		svc.now = func() time.Time { return fixed }
		d, err := svc.Daily(context.Background(), freeUser(), false)
		if err != nil {
			t.Fatalf("Daily() error = %v", err)
		}
		return d
	}

	a, b := draw(), draw()
	if a.Card.ID != b.Card.ID || a.IsReversed != b.IsReversed {
		t.Errorf("same user and date should draw the same card: %d/%v vs %d/%v",
			a.Card.ID, a.IsReversed, b.Card.ID, b.IsReversed)
	}
}

func TestService_Daily_AlreadyDrawn(t *testing.T) {
	repo := &mockTarotRepo{
		findDailyFn: func(_ context.Context, _ string, _ time.Time) (*model.TarotDraw, error) {
			return &model.TarotDraw{CardID: 13, IsReversed: true, Position: model.TarotPositionSingle}, nil
		},
	}
	svc := NewService(repo, nil, nil)

	d, err := svc.Daily(context.Background(), freeUser(), false)
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	if !d.AlreadyDrawn {
		t.Error("expected already_drawn")
	}
	if d.Card.ID != 13 || !d.IsReversed {
		t.Errorf("card = %d reversed=%v, want 13 reversed", d.Card.ID, d.IsReversed)
	}
	if d.Interpretation != CardByID(13).Reversed.Meaning {
		t.Error("interpretation should be the reversed one")
	}
	if len(repo.created) != 0 {
		t.Errorf("created %d rows, want 0", len(repo.created))
	}
}

func TestService_Daily_ForceNewRequiresPremium(t *testing.T) {
	repo := &mockTarotRepo{}
	svc := NewService(repo, nil, nil)

	_, err := svc.Daily(context.Background(), freeUser(), true)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodePremiumRequired {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodePremiumRequired)
	}
	if repo.deletedDaily != 0 || len(repo.created) != 0 {
		t.Error("free user force_new should not touch history")
	}
}

func TestService_Daily_ForceNewRedraws(t *testing.T) {
	repo := &mockTarotRepo{
		findDailyFn: func(_ context.Context, _ string, _ time.Time) (*model.TarotDraw, error) {
			t.Error("force_new should skip the already-drawn check")
			return nil, nil
		},
	}
	svc := NewService(repo, nil, nil)

	d, err := svc.Daily(context.Background(), premiumUser(), true)
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}
	if d.AlreadyDrawn {
		t.Error("force_new draw should be fresh")
	}
	if repo.deletedDaily != 1 {
		t.Errorf("deletedDaily = %d, want 1", repo.deletedDaily)
	}
	if len(repo.created) != 1 {
		t.Errorf("created %d rows, want 1", len(repo.created))
	}
}

func TestService_Daily_UserTimezone(t *testing.T) {
	if _, err := time.LoadLocation("Asia/Tokyo"); err != nil {
		t.Skip("tzdata not available")
	}

	repo := &mockTarotRepo{}
	svc := NewService(repo, nil, nil)
	// UTC 20時 = 東京では翌日5時
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) }

	user := freeUser()
	user.Timezone = "Asia/Tokyo"
	if _, err := svc.Daily(context.Background(), user, false); err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	want := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	if !repo.created[0].ReadingDate.Equal(want) {
		t.Errorf("ReadingDate = %v, want %v", repo.created[0].ReadingDate, want)
	}
}

func TestService_Daily_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	repo := &mockTarotRepo{}
	svc := NewService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) }

	user := freeUser()
	user.Timezone = "Mars/Olympus"
	if _, err := svc.Daily(context.Background(), user, false); err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !repo.created[0].ReadingDate.Equal(want) {
		t.Errorf("ReadingDate = %v, want %v", repo.created[0].ReadingDate, want)
	}
}

func TestService_Spread_Draw(t *testing.T) {
	repo := &mockTarotRepo{}
	svc := NewService(repo, nil, nil)
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	cards, err := svc.Spread(context.Background(), freeUser(), false)
	if err != nil {
		t.Fatalf("Spread() error = %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}

	wantPositions := []model.TarotPosition{
		model.TarotPositionPast,
		model.TarotPositionPresent,
		model.TarotPositionFuture,
	}
	seen := map[int]bool{}
	for i, c := range cards {
		if c.Position != wantPositions[i] {
			t.Errorf("cards[%d].Position = %q, want %q", i, c.Position, wantPositions[i])
		}
		if c.AlreadyDrawn {
			t.Errorf("cards[%d] should be a fresh draw", i)
		}
		if seen[c.Card.ID] {
			t.Errorf("duplicated card %d in spread", c.Card.ID)
		}
		seen[c.Card.ID] = true

		want := c.Card.MeaningFor(c.IsReversed)
		if c.Interpretation != want.Meaning {
			t.Errorf("cards[%d] interpretation mismatch", i)
		}
	}

	if len(repo.created) != 3 {
		t.Fatalf("created %d rows, want 3", len(repo.created))
	}
	for i, row := range repo.created {
		if row.Position != wantPositions[i] {
			t.Errorf("created[%d].Position = %q", i, row.Position)
		}
		if row.CardID != cards[i].Card.ID {
			t.Errorf("created[%d].CardID = %d, want %d", i, row.CardID, cards[i].Card.ID)
		}
	}
}

func TestService_Spread_Deterministic(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	spread := func() []*SpreadCard {
		repo := &mockTarotRepo{}
		svc := NewService(repo, nil, nil)
		svc.now = func() time.Time { return fixed }
		cards, err := svc.Spread(context.Background(), freeUser(), false)
		if err != nil {
			t.Fatalf("Spread() error = %v", err)
		}
		return cards
	}

	a, b := spread(), spread()
	for i := range a {
		if a[i].Card.ID != b[i].Card.ID || a[i].IsReversed != b[i].IsReversed {
			t.Errorf("cards[%d] differs between draws on the same day", i)
		}
	}
}

func TestService_Spread_AlreadyDrawn(t *testing.T) {
	repo := &mockTarotRepo{
		findSpreadFn: func(_ context.Context, _ string, _ time.Time) ([]*model.TarotDraw, error) {
			return []*model.TarotDraw{
				{CardID: 1, Position: model.TarotPositionPast},
				{CardID: 2, IsReversed: true, Position: model.TarotPositionPresent},
				{CardID: 3, Position: model.TarotPositionFuture},
			}, nil
		},
	}
	svc := NewService(repo, nil, nil)

	cards, err := svc.Spread(context.Background(), freeUser(), false)
	if err != nil {
		t.Fatalf("Spread() error = %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}
	for i, c := range cards {
		if !c.AlreadyDrawn {
			t.Errorf("cards[%d] should be already_drawn", i)
		}
		if c.Card.ID != i+1 {
			t.Errorf("cards[%d].Card.ID = %d, want %d", i, c.Card.ID, i+1)
		}
	}
	if cards[1].Interpretation != CardByID(2).Reversed.Meaning {
		t.Error("present card should use the reversed interpretation")
	}
	if len(repo.created) != 0 {
		t.Errorf("created %d rows, want 0", len(repo.created))
	}
}

func TestService_Spread_ForceNewRequiresPremium(t *testing.T) {
	svc := NewService(&mockTarotRepo{}, nil, nil)

	_, err := svc.Spread(context.Background(), freeUser(), true)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodePremiumRequired {
		t.Fatalf("expected PREMIUM_REQUIRED, got %v", err)
	}
}

func TestService_History_LimitClamp(t *testing.T) {
	var captured []int
	repo := &mockTarotRepo{
		listFn: func(_ context.Context, _ string, limit int) ([]*model.TarotDraw, error) {
			captured = append(captured, limit)
			return nil, nil
		},
	}
	svc := NewService(repo, nil, nil)

	for _, limit := range []int{0, -5, 200, 10} {
		if _, err := svc.History(context.Background(), "user-1", limit); err != nil {
			t.Fatalf("History(%d) error = %v", limit, err)
		}
	}
	want := []int{50, 50, 50, 10}
	for i, got := range captured {
		if got != want[i] {
			t.Errorf("repo received limit %d, want %d", got, want[i])
		}
	}
}

func TestService_AIReading_UnknownCard(t *testing.T) {
	svc := NewService(&mockTarotRepo{}, nil, nil)

	_, err := svc.AIReading(context.Background(), AIReadingInput{CardID: 99})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeCardNotFound {
		t.Fatalf("expected CARD_NOT_FOUND, got %v", err)
	}
}

func TestService_AIReading_StaticFallback(t *testing.T) {
	svc := NewService(&mockTarotRepo{}, nil, nil) // AI無効

	r, err := svc.AIReading(context.Background(), AIReadingInput{
		CardID:     0,
		UserName:   "Luna",
		ZodiacSign: "leo",
	})
	if err != nil {
		t.Fatalf("AIReading() error = %v", err)
	}

	wantReading := "Luna, The Fool (upright) has appeared for you today. " +
		CardByID(0).Upright.Meaning +
		" As a Leo, this resonates with your natural strengths."
	if r.PersonalizedReading != wantReading {
		t.Errorf("PersonalizedReading = %q\nwant %q", r.PersonalizedReading, wantReading)
	}
	if r.DailyAdvice != CardByID(0).Upright.DailyGuidance {
		t.Errorf("DailyAdvice = %q", r.DailyAdvice)
	}
	if r.ReflectionPrompt != "How does the energy of The Fool show up in your current situation?" {
		t.Errorf("ReflectionPrompt = %q", r.ReflectionPrompt)
	}
	if r.Affirmation != "I embrace the wisdom of The Fool and trust my journey." {
		t.Errorf("Affirmation = %q", r.Affirmation)
	}
}

func TestService_AIReading_Generated(t *testing.T) {
	var gotPrompt string
	var gotOpts gemini.GenerateOptions
	gen := &mockGenerator{
		enabled: true,
		generateFn: func(_ context.Context, prompt string, opts gemini.GenerateOptions) (string, error) {
			gotPrompt = prompt
			gotOpts = opts
			return `{"personalized_reading": "R", "daily_advice": "A", "reflection_prompt": "P", "affirmation": "F"}`, nil
		},
	}
	svc := NewService(&mockTarotRepo{}, gen, nil)

	r, err := svc.AIReading(context.Background(), AIReadingInput{
		CardID:     13,
		IsReversed: true,
		ZodiacSign: "scorpio",
		Question:   "What about my career?",
	})
	if err != nil {
		t.Fatalf("AIReading() error = %v", err)
	}

	if r.PersonalizedReading != "R" || r.DailyAdvice != "A" || r.ReflectionPrompt != "P" || r.Affirmation != "F" {
		t.Errorf("unexpected reading: %+v", r)
	}

	for _, want := range []string{
		"Card Drawn: Death (reversed)",
		"Their zodiac sign is Scorpio.",
		`They asked: "What about my career?"`,
		"Respond ONLY with valid JSON",
	} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
	if gotOpts.Temperature != 0.85 || gotOpts.MaxOutputTokens != 500 {
		t.Errorf("opts = %+v", gotOpts)
	}
}

func TestService_AIReading_GeneratorErrorFallsBack(t *testing.T) {
	gen := &mockGenerator{
		enabled: true,
		generateFn: func(_ context.Context, _ string, _ gemini.GenerateOptions) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	svc := NewService(&mockTarotRepo{}, gen, nil)

	r, err := svc.AIReading(context.Background(), AIReadingInput{CardID: 13, IsReversed: true})
	if err != nil {
		t.Fatalf("AIReading() error = %v", err)
	}
	if !strings.HasPrefix(r.PersonalizedReading, "Death (reversed) has appeared for you today.") {
		t.Errorf("PersonalizedReading = %q", r.PersonalizedReading)
	}
}
