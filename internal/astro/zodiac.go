// Package astro はネイタルチャート計算の中核を提供する。
// 時刻解決、天体暦参照、アセンダント計算、星座マッピング、
// 解釈テキスト参照を組み合わせてチャートを構築する。
package astro

import (
	"math"
	"strings"
	"time"
)

// Signs は黄道十二星座のIDを黄経順（牡羊座起点）で保持する。
var Signs = []string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// Sign は星座のメタデータを表す。日付範囲は太陽星座の慣習的区切り。
type Sign struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Element      string `json:"element"`
	RulingPlanet string `json:"ruling_planet"`
	StartMonth   int    `json:"start_month"`
	StartDay     int    `json:"start_day"`
	EndMonth     int    `json:"end_month"`
	EndDay       int    `json:"end_day"`
}

// AllSigns は十二星座のメタデータ一覧。
var AllSigns = []Sign{
	{ID: "aries", Name: "Aries", Symbol: "♈", Element: "fire", RulingPlanet: "mars", StartMonth: 3, StartDay: 21, EndMonth: 4, EndDay: 19},
	{ID: "taurus", Name: "Taurus", Symbol: "♉", Element: "earth", RulingPlanet: "venus", StartMonth: 4, StartDay: 20, EndMonth: 5, EndDay: 20},
	{ID: "gemini", Name: "Gemini", Symbol: "♊", Element: "air", RulingPlanet: "mercury", StartMonth: 5, StartDay: 21, EndMonth: 6, EndDay: 20},
	{ID: "cancer", Name: "Cancer", Symbol: "♋", Element: "water", RulingPlanet: "moon", StartMonth: 6, StartDay: 21, EndMonth: 7, EndDay: 22},
	{ID: "leo", Name: "Leo", Symbol: "♌", Element: "fire", RulingPlanet: "sun", StartMonth: 7, StartDay: 23, EndMonth: 8, EndDay: 22},
	{ID: "virgo", Name: "Virgo", Symbol: "♍", Element: "earth", RulingPlanet: "mercury", StartMonth: 8, StartDay: 23, EndMonth: 9, EndDay: 22},
	{ID: "libra", Name: "Libra", Symbol: "♎", Element: "air", RulingPlanet: "venus", StartMonth: 9, StartDay: 23, EndMonth: 10, EndDay: 22},
	{ID: "scorpio", Name: "Scorpio", Symbol: "♏", Element: "water", RulingPlanet: "pluto", StartMonth: 10, StartDay: 23, EndMonth: 11, EndDay: 21},
	{ID: "sagittarius", Name: "Sagittarius", Symbol: "♐", Element: "fire", RulingPlanet: "jupiter", StartMonth: 11, StartDay: 22, EndMonth: 12, EndDay: 21},
	{ID: "capricorn", Name: "Capricorn", Symbol: "♑", Element: "earth", RulingPlanet: "saturn", StartMonth: 12, StartDay: 22, EndMonth: 1, EndDay: 19},
	{ID: "aquarius", Name: "Aquarius", Symbol: "♒", Element: "air", RulingPlanet: "uranus", StartMonth: 1, StartDay: 20, EndMonth: 2, EndDay: 18},
	{ID: "pisces", Name: "Pisces", Symbol: "♓", Element: "water", RulingPlanet: "neptune", StartMonth: 2, StartDay: 19, EndMonth: 3, EndDay: 20},
}

// SignByID は星座IDからメタデータを取得する。未知のIDはnilを返す。
func SignByID(id string) *Sign {
	for i := range AllSigns {
		if AllSigns[i].ID == id {
			return &AllSigns[i]
		}
	}
	return nil
}

// SignFromLongitude は黄経（度）を星座IDと星座内度数に変換する。
// 黄経は360度周期で正規化されるため、範囲外の値も受け付ける。
// 不変条件: sign_index = floor(L/30) mod 12、0 <= degree < 30。
func SignFromLongitude(longitude float64) (string, float64) {
	l := math.Mod(longitude, 360)
	if l < 0 {
		l += 360
	}
	idx := int(l/30) % 12
	degree := math.Mod(l, 30)
	return Signs[idx], degree
}

// SignIndex は星座IDの黄経順インデックス（牡羊座=0）を返す。未知のIDは-1。
func SignIndex(id string) int {
	for i, s := range Signs {
		if s == id {
			return i
		}
	}
	return -1
}

// SunSignFromDate は生年月日から太陽星座を日付範囲で導出する。
// 山羊座だけが年境界をまたぐ。範囲に一致しない日付はcapricornになる。
func SunSignFromDate(birthDate time.Time) string {
	month := int(birthDate.Month())
	day := birthDate.Day()

	for _, s := range AllSigns {
		if (month == s.StartMonth && day >= s.StartDay) || (month == s.EndMonth && day <= s.EndDay) {
			return s.ID
		}
	}
	return "capricorn"
}

// Element は星座IDの四元素（fire/earth/air/water）を返す。未知のIDはfire。
func Element(signID string) string {
	if s := SignByID(signID); s != nil {
		return s.Element
	}
	return "fire"
}

// TitleSign は星座IDを表示用に先頭大文字化する（"aries" → "Aries"）。
func TitleSign(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:]
}
