// Package moon は朔望月の近似による月相計算を提供する。
//
// 基準新月2000-01-06からの経過日数を朔望月29.53058867日で割った
// 余りから月齢を求め、周期を8等分して月相を割り当てる。
// 照度は位相角の余弦から求める: (1 - cos(2π·fraction)) / 2。
package moon

import (
	"math"
	"time"
)

// synodicMonth は朔望月の長さ（日）。
const synodicMonth = 29.53058867

// epochNewMoon は基準となる新月の日付（2000-01-06 18:14 UTCの新月）。
var epochNewMoon = time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)

// phaseNames は8つの月相の名前と絵文字。周期の1/8ごとに切り替わる。
var phaseNames = [8]struct {
	Name  string
	Emoji string
}{
	{"New Moon", "🌑"},
	{"Waxing Crescent", "🌒"},
	{"First Quarter", "🌓"},
	{"Waxing Gibbous", "🌔"},
	{"Full Moon", "🌕"},
	{"Waning Gibbous", "🌖"},
	{"Last Quarter", "🌗"},
	{"Waning Crescent", "🌘"},
}

// phaseMeanings は月相ごとの占星術的な解釈。
var phaseMeanings = map[string]string{
	"New Moon":        "A time for new beginnings, setting intentions, and planting seeds for the future. Perfect for starting fresh projects and manifesting desires.",
	"Waxing Crescent": "Energy is building. Take action on your intentions. This is a time for courage, motivation, and moving forward with plans.",
	"First Quarter":   "A time of decision and commitment. You may face challenges that test your resolve. Push through obstacles with determination.",
	"Waxing Gibbous":  "Refine and adjust your approach. Trust the process and stay focused. Success is building momentum.",
	"Full Moon":       "Peak energy and illumination. Emotions run high. A time for celebration, gratitude, and releasing what no longer serves you.",
	"Waning Gibbous":  "Time for gratitude and sharing wisdom. Reflect on lessons learned and give back to others.",
	"Last Quarter":    "Release and let go. Clear out the old to make room for the new. Forgiveness and closure are favored.",
	"Waning Crescent": "Rest, restore, and surrender. Prepare for the next cycle. Meditation and introspection are powerful now.",
}

// Phase はある日付の月相情報。
type Phase struct {
	Date          string  `json:"date"`
	PhaseName     string  `json:"phase_name"`
	PhaseEmoji    string  `json:"phase_emoji"`
	Illumination  float64 `json:"illumination"`
	DaysUntilFull int     `json:"days_until_full"`
	DaysUntilNew  int     `json:"days_until_new"`
	Meaning       string  `json:"meaning"`
}

// cyclePosition は基準新月からの月齢（0〜29.53）を返す。
func cyclePosition(date time.Time) float64 {
	days := dateOnly(date).Sub(epochNewMoon).Hours() / 24
	pos := math.Mod(days, synodicMonth)
	if pos < 0 {
		pos += synodicMonth
	}
	return pos
}

// phaseIndex は月齢から月相インデックス（0〜7）を返す。
func phaseIndex(position float64) int {
	return int(position/synodicMonth*8) % 8
}

// phaseFor は指定日の月相情報を計算する。
func phaseFor(date time.Time) Phase {
	pos := cyclePosition(date)
	idx := phaseIndex(pos)
	fraction := pos / synodicMonth

	// 照度は新月0%、満月100%の余弦カーブ
	illumination := (1 - math.Cos(2*math.Pi*fraction)) / 2 * 100

	// 最寄りの満月までの日数
	daysToFull := math.Mod(synodicMonth/2-pos, synodicMonth)
	if daysToFull < 0 {
		daysToFull += synodicMonth
	}
	if daysToFull > synodicMonth/2 {
		daysToFull = synodicMonth - daysToFull
	}

	// 次の新月までの日数
	daysToNew := math.Mod(synodicMonth-pos, synodicMonth)
	if daysToNew == 0 {
		daysToNew = synodicMonth
	}

	name := phaseNames[idx].Name
	return Phase{
		Date:          dateOnly(date).Format("2006-01-02"),
		PhaseName:     name,
		PhaseEmoji:    phaseNames[idx].Emoji,
		Illumination:  math.Round(illumination*10) / 10,
		DaysUntilFull: int(daysToFull),
		DaysUntilNew:  int(daysToNew),
		Meaning:       phaseMeanings[name],
	}
}

// dateOnly は時刻を切り捨ててUTCの日付にする。
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
