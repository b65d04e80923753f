// Package numerology は生年月日に基づく数秘術の計算を提供する。
//
// 数はすべて各桁の和で一桁まで還元されるが、マスターナンバー
// （11・22・33）は還元せずそのまま保持する。
package numerology

import (
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// Profile は数秘術プロフィール。
type Profile struct {
	LifePathNumber     int                `json:"life_path_number"`
	LifePathMeaning    LifePathMeaning    `json:"life_path_meaning"`
	PersonalYear       int                `json:"personal_year"`
	PersonalMonth      int                `json:"personal_month"`
	PersonalDay        int                `json:"personal_day"`
	PersonalDayMeaning PersonalDayMeaning `json:"personal_day_meaning"`
	DestinyNumber      int                `json:"destiny_number"`
	SoulUrgeNumber     int                `json:"soul_urge_number"`
	PersonalityNumber  int                `json:"personality_number"`
}

// DailyNumber は今日のパーソナルデイナンバー。
type DailyNumber struct {
	Date        string             `json:"date"`
	PersonalDay int                `json:"personal_day"`
	Meaning     PersonalDayMeaning `json:"meaning"`
}

// Service は数秘術計算のサービス層。
// 純粋な計算のみで永続化を持たない。
type Service struct {
	now func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService() *Service {
	return &Service{now: time.Now}
}

// Profile はユーザーの数秘術プロフィールを計算する。
// 生年月日が未設定の場合はBIRTH_DATE_REQUIREDエラーを返す。
func (s *Service) Profile(user *model.User) (*Profile, error) {
	if !user.HasBirthData() {
		return nil, model.NewBirthDateRequiredError()
	}

	birth := *user.BirthDate
	today := s.userNow(user)

	lifePath := lifePathNumber(birth)
	personalYear := personalYearNumber(birth, today)
	personalMonth := personalMonthNumber(personalYear, int(today.Month()))
	personalDay := personalDayNumber(personalMonth, today.Day())

	return &Profile{
		LifePathNumber:     lifePath,
		LifePathMeaning:    lifePathMeaningFor(lifePath),
		PersonalYear:       personalYear,
		PersonalMonth:      personalMonth,
		PersonalDay:        personalDay,
		PersonalDayMeaning: personalDayMeaningFor(personalDay),
		DestinyNumber:      reduceToSingle(birth.Day()),
		SoulUrgeNumber:     reduceToSingle(int(birth.Month())),
		PersonalityNumber:  reduceToSingle(birth.Year()),
	}, nil
}

// Daily は今日のパーソナルデイナンバーと解釈を返す。
func (s *Service) Daily(user *model.User) (*DailyNumber, error) {
	if !user.HasBirthData() {
		return nil, model.NewBirthDateRequiredError()
	}

	birth := *user.BirthDate
	today := s.userNow(user)

	personalYear := personalYearNumber(birth, today)
	personalMonth := personalMonthNumber(personalYear, int(today.Month()))
	personalDay := personalDayNumber(personalMonth, today.Day())

	return &DailyNumber{
		Date:        today.Format("2006-01-02"),
		PersonalDay: personalDay,
		Meaning:     personalDayMeaningFor(personalDay),
	}, nil
}

// userNow はユーザーのタイムゾーンでの現在時刻を返す。
// タイムゾーンが不正な場合はUTCにフォールバックする。
func (s *Service) userNow(user *model.User) time.Time {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return s.now().In(loc)
}

// reduceToSingle は各桁の和で一桁まで還元する。マスターナンバーは保持する。
func reduceToSingle(n int) int {
	for n > 9 && n != 11 && n != 22 && n != 33 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// lifePathNumber は年・月・日をそれぞれ還元してから合算し、再度還元する。
// 例: 1990-07-30 → reduce(1990)=1, reduce(7)=7, reduce(30)=3 → reduce(11)=11。
func lifePathNumber(birth time.Time) int {
	year := reduceToSingle(birth.Year())
	month := reduceToSingle(int(birth.Month()))
	day := reduceToSingle(birth.Day())
	return reduceToSingle(year + month + day)
}

// personalYearNumber は現在年と誕生月日からパーソナルイヤーを計算する。
func personalYearNumber(birth, today time.Time) int {
	return reduceToSingle(today.Year() + int(birth.Month()) + birth.Day())
}

// personalMonthNumber はパーソナルイヤーと現在月からパーソナルマンスを計算する。
func personalMonthNumber(personalYear, currentMonth int) int {
	return reduceToSingle(personalYear + currentMonth)
}

// personalDayNumber はパーソナルマンスと現在日からパーソナルデイを計算する。
func personalDayNumber(personalMonth, currentDay int) int {
	return reduceToSingle(personalMonth + currentDay)
}
