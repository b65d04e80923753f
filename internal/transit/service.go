package transit

import (
	"sort"
	"time"

	"github.com/hitoshi/starman/internal/model"
)

const (
	// singleDayWindow は単日イベント（食・朔望）を発生後何日まで
	// 有効とみなすか。余韻の期間として3日間を含める。
	singleDayWindow = 3

	defaultUpcomingDays = 30
	maxUpcomingDays     = 90
)

// Status はトランジット1件の現在の状態。
type Status struct {
	ID            string   `json:"id"`
	Planet        string   `json:"planet"`
	PlanetSymbol  string   `json:"planet_symbol"`
	Type          string   `json:"type"`
	SignFrom      string   `json:"sign_from"`
	SignTo        string   `json:"sign_to,omitempty"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date,omitempty"`
	Importance    string   `json:"importance"`
	Description   string   `json:"description"`
	Guidance      string   `json:"guidance"`
	Effects       []string `json:"effects"`
	Rituals       []string `json:"rituals"`
	IsActive      bool     `json:"is_active"`
	DaysUntil     *int     `json:"days_until,omitempty"`
	DaysRemaining *int     `json:"days_remaining,omitempty"`
}

// Overview は今日のトランジット状況のまとめ。
type Overview struct {
	Date        string      `json:"date"`
	DailyEnergy DailyEnergy `json:"daily_energy"`
	Active      []Status    `json:"active_transits"`
}

// Service はトランジット照会のドメインロジックを提供する。
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Current はユーザーのタイムゾーンにおける今日のトランジット状況を返す。
func (s *Service) Current(user *model.User) *Overview {
	today := s.userToday(user)

	active := make([]Status, 0, 8)
	for _, t := range transitTable {
		if st := statusFor(t, today); st.IsActive {
			active = append(active, st)
		}
	}

	// time.Weekdayは日曜始まりなので月曜始まりの添字に変換する
	energy := dailyEnergies[(int(today.Weekday())+6)%7]

	return &Overview{
		Date:        today.Format("2006-01-02"),
		DailyEnergy: energy,
		Active:      active,
	}
}

// Upcoming は指定日数以内に始まるトランジットを開始日の近い順で返す。
// daysが0以下なら30日、90日を超える場合は90日に丸める。
func (s *Service) Upcoming(user *model.User, days int) []Status {
	if days <= 0 {
		days = defaultUpcomingDays
	}
	if days > maxUpcomingDays {
		days = maxUpcomingDays
	}

	today := s.userToday(user)

	upcoming := make([]Status, 0, len(transitTable))
	for _, t := range transitTable {
		st := statusFor(t, today)
		if st.DaysUntil == nil || *st.DaysUntil > days {
			continue
		}
		upcoming = append(upcoming, st)
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return *upcoming[i].DaysUntil < *upcoming[j].DaysUntil
	})
	return upcoming
}

// statusFor は基準日におけるトランジットの状態を組み立てる。
func statusFor(t Transit, today time.Time) Status {
	st := Status{
		ID:           t.ID,
		Planet:       t.Planet,
		PlanetSymbol: t.PlanetSymbol,
		Type:         t.Type,
		SignFrom:     t.SignFrom,
		SignTo:       t.SignTo,
		StartDate:    t.StartDate.Format("2006-01-02"),
		Importance:   t.Importance,
		Description:  t.Description,
		Guidance:     t.Guidance,
		Effects:      t.Effects,
		Rituals:      t.Rituals,
	}

	if !t.EndDate.IsZero() {
		st.EndDate = t.EndDate.Format("2006-01-02")
		st.IsActive = !today.Before(t.StartDate) && !today.After(t.EndDate)
	} else {
		daysSince := int(today.Sub(t.StartDate).Hours() / 24)
		st.IsActive = daysSince >= 0 && daysSince <= singleDayWindow
	}

	if t.StartDate.After(today) {
		d := int(t.StartDate.Sub(today).Hours() / 24)
		st.DaysUntil = &d
	}
	if st.IsActive && !t.EndDate.IsZero() && t.EndDate.After(today) {
		d := int(t.EndDate.Sub(today).Hours() / 24)
		st.DaysRemaining = &d
	}
	return st
}

// userToday はユーザーのタイムゾーンでの今日をUTC深夜0時の日付として返す。
// タイムゾーンが不正な場合はUTCで扱う。
func (s *Service) userToday(user *model.User) time.Time {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := s.now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
