package moon

import (
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// Upcomingのデフォルトと上限（日数）。
const (
	defaultUpcomingDays = 30
	maxUpcomingDays     = 90
)

// Calendar は1か月分の月相カレンダー。
type Calendar struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Phases    []Phase `json:"phases"`
}

// UpcomingPhase は今後訪れる主要月相（新月・上弦・満月・下弦）。
type UpcomingPhase struct {
	Date       string `json:"date"`
	PhaseName  string `json:"phase_name"`
	PhaseEmoji string `json:"phase_emoji"`
	DaysUntil  int    `json:"days_until"`
}

// Service は月相計算のサービス層。
// 純粋な計算のみで永続化を持たない。
type Service struct {
	now func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService() *Service {
	return &Service{now: time.Now}
}

// Current は今日（UTC）の月相を返す。
func (s *Service) Current() Phase {
	return phaseFor(s.now().UTC())
}

// PhaseFor は指定日の月相を返す。
func (s *Service) PhaseFor(date time.Time) Phase {
	return phaseFor(date)
}

// MonthlyCalendar は指定月の全日の月相を返す。
// 月が1〜12の範囲外、または年が暦の範囲外の場合はINVALID_DATEエラーを返す。
func (s *Service) MonthlyCalendar(year, month int) (*Calendar, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return nil, model.NewInvalidDateError()
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	phases := make([]Phase, 0, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		phases = append(phases, phaseFor(first.AddDate(0, 0, d)))
	}

	return &Calendar{
		Year:      year,
		Month:     month,
		MonthName: first.Month().String(),
		Phases:    phases,
	}, nil
}

// Upcoming は今後days日以内に訪れる主要月相の一覧を返す。
// 各月相は切り替わった日を起点として1回だけ現れる。
// daysが0以下の場合は30日、90日を超える場合は90日に丸める。
func (s *Service) Upcoming(days int) []UpcomingPhase {
	if days <= 0 {
		days = defaultUpcomingDays
	}
	if days > maxUpcomingDays {
		days = maxUpcomingDays
	}

	today := dateOnly(s.now().UTC())
	prev := phaseIndex(cyclePosition(today.AddDate(0, 0, -1)))

	result := make([]UpcomingPhase, 0, 12)
	for i := 0; i <= days; i++ {
		date := today.AddDate(0, 0, i)
		idx := phaseIndex(cyclePosition(date))
		if idx != prev && isPrincipal(idx) {
			result = append(result, UpcomingPhase{
				Date:       date.Format("2006-01-02"),
				PhaseName:  phaseNames[idx].Name,
				PhaseEmoji: phaseNames[idx].Emoji,
				DaysUntil:  i,
			})
		}
		prev = idx
	}

	return result
}

// isPrincipal は新月・上弦・満月・下弦（偶数インデックス）かを返す。
func isPrincipal(idx int) bool {
	return idx%2 == 0
}
