package astro

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// AstronomicalTime はユリウス日で表した天文時刻を表す。
// UTは地球自転（アセンダント計算）、TTは天体暦参照に使う。
type AstronomicalTime struct {
	JDUT float64 // ユリウス日（世界時）
	JDTT float64 // ユリウス日（地球時、UT + ΔT）
}

// NewAstronomicalTime は民事時刻から天文時刻を導出する。
// 民事時刻はUTCとして扱う。|UT1−UTC| < 0.9秒は表示精度を下回るため
// DUT1補正は行わない。
func NewAstronomicalTime(t time.Time) AstronomicalTime {
	t = t.UTC()
	jdut := julian.TimeToJD(t)
	dt := DeltaT(decimalYear(t))
	return AstronomicalTime{
		JDUT: jdut,
		JDTT: jdut + dt/86400,
	}
}

// decimalYear は時刻を10進数年に変換する（ΔT多項式の引数）。
func decimalYear(t time.Time) float64 {
	return float64(t.Year()) + (float64(t.Month())-0.5)/12
}

// ParseBirthDateTime は"YYYY-MM-DD"と"HH:MM"形式の出生日時を解釈する。
// 分は省略可能で0になる。フィールド数の不足や整数変換の失敗はエラーを
// 返すだけで、現在時刻へのフォールバック方針は呼び出し側が決める。
// 範囲外の値（月13など）は算術的に正規化される。
func ParseBirthDateTime(birthDate, birthTime string) (time.Time, error) {
	dateParts := strings.Split(birthDate, "-")
	if len(dateParts) != 3 {
		return time.Time{}, fmt.Errorf("invalid birth date format: %q", birthDate)
	}

	year, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month: %w", err)
	}
	day, err := strconv.Atoi(dateParts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day: %w", err)
	}

	timeParts := strings.Split(birthTime, ":")
	hour, err := strconv.Atoi(timeParts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour: %w", err)
	}
	minute := 0
	if len(timeParts) > 1 {
		minute, err = strconv.Atoi(timeParts[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid minute: %w", err)
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}
