package astro

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// BodyPosition は1天体の黄道上の位置と解釈テキスト。
type BodyPosition struct {
	Planet     string  `json:"planet"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Retrograde bool    `json:"retrograde"`
	Reading    string  `json:"reading"`
}

// HouseCusp はホールサイン方式のハウスカスプ。
type HouseCusp struct {
	House  int     `json:"house"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// NatalChart は計算済みのネイタルチャート全体。
type NatalChart struct {
	Sun     BodyPosition   `json:"sun"`
	Moon    BodyPosition   `json:"moon"`
	Rising  BodyPosition   `json:"rising"`
	Planets []BodyPosition `json:"planets"`
	Houses  []HouseCusp    `json:"houses"`
	Summary string         `json:"summary"`
}

// ChartInput はチャート計算の入力。日付はYYYY-MM-DD、時刻はHH:MM。
type ChartInput struct {
	BirthDate string
	BirthTime string
	Latitude  float64
	Longitude float64
}

// ChartMetrics はチャート計算が記録するメトリクス。
type ChartMetrics interface {
	RecordChartComputed()
	RecordDegradedBody(body string)
	RecordChartLatency(d time.Duration)
}

type noopChartMetrics struct{}

func (noopChartMetrics) RecordChartComputed()             {}
func (noopChartMetrics) RecordDegradedBody(string)        {}
func (noopChartMetrics) RecordChartLatency(time.Duration) {}

// Service はネイタルチャートを計算する。
type Service struct {
	source   Source
	readings *ReadingTable
	metrics  ChartMetrics
	now      func() time.Time
}

// NewService はチャート計算サービスを生成する。metricsはnil可。
func NewService(source Source, readings *ReadingTable, metrics ChartMetrics) *Service {
	if metrics == nil {
		metrics = noopChartMetrics{}
	}
	return &Service{
		source:   source,
		readings: readings,
		metrics:  metrics,
		now:      time.Now,
	}
}

// EphemerisStatus は天体暦データの読み込み状態を返す。
func (s *Service) EphemerisStatus() Status {
	return s.source.Status()
}

// Compute はネイタルチャート全体を計算する。
// 個々の天体の計算失敗はチャート全体を失敗させず、その天体だけ
// 既定値(aries 0.0)に退化させる。エラーは座標が数値として不正な場合のみ。
func (s *Service) Compute(input ChartInput) (*NatalChart, error) {
	if !isFinite(input.Latitude) || !isFinite(input.Longitude) {
		return nil, fmt.Errorf("invalid coordinates: latitude=%v longitude=%v", input.Latitude, input.Longitude)
	}

	start := time.Now()

	// 1. 出生日時をUTCとして解釈する。パースできなければ現在時刻で代用する
	birth, err := ParseBirthDateTime(input.BirthDate, input.BirthTime)
	if err != nil {
		slog.Warn("birth datetime unparseable, falling back to current time",
			"birth_date", input.BirthDate, "birth_time", input.BirthTime, "error", err)
		birth = s.now()
	}
	at := NewAstronomicalTime(birth)

	// 2. 太陽・月・7惑星の位置を求める
	sun := s.bodyPosition("sun", at)
	moon := s.bodyPosition("moon", at)
	planets := make([]BodyPosition, 0, len(chartPlanets))
	for _, name := range chartPlanets {
		planets = append(planets, s.bodyPosition(name, at))
	}

	// 3. アセンダントとホールサインハウス
	ascLongitude := AscendantLongitude(at, input.Latitude, input.Longitude)
	rising := s.ascendantPosition(ascLongitude)
	houses := WholeSignHouses(ascLongitude)

	chart := &NatalChart{
		Sun:     sun,
		Moon:    moon,
		Rising:  rising,
		Planets: planets,
		Houses:  houses,
		Summary: summarize(sun, moon, rising),
	}

	s.metrics.RecordChartComputed()
	s.metrics.RecordChartLatency(time.Since(start))
	return chart, nil
}

// bodyPosition は1天体の黄経から位置を組み立てる。
// 計算に失敗した天体は既定値に退化させ、チャート全体は継続する。
func (s *Service) bodyPosition(body string, at AstronomicalTime) BodyPosition {
	longitude, err := s.source.EclipticLongitude(body, at)
	if err != nil {
		slog.Warn("body position unavailable", "body", body, "error", err)
		s.metrics.RecordDegradedBody(body)
		return BodyPosition{
			Planet:     body,
			Sign:       "aries",
			Degree:     0.0,
			Retrograde: false,
			Reading:    "",
		}
	}

	sign, degree := SignFromLongitude(longitude)
	return BodyPosition{
		Planet:     body,
		Sign:       sign,
		Degree:     round2(degree),
		Retrograde: false,
		Reading:    s.readings.Reading(body, sign),
	}
}

func (s *Service) ascendantPosition(longitude float64) BodyPosition {
	sign, degree := SignFromLongitude(longitude)
	return BodyPosition{
		Planet:     "ascendant",
		Sign:       sign,
		Degree:     round2(degree),
		Retrograde: false,
		Reading:    s.readings.Reading("ascendant", sign),
	}
}

// WholeSignHouses はアセンダントの星座を第1ハウスとして12ハウスを割り当てる。
// ホールサイン方式ではカスプは常に星座の0度。
func WholeSignHouses(ascendantLongitude float64) []HouseCusp {
	ascSign, _ := SignFromLongitude(ascendantLongitude)
	ascIndex := SignIndex(ascSign)

	houses := make([]HouseCusp, 12)
	for i := 0; i < 12; i++ {
		houses[i] = HouseCusp{
			House:  i + 1,
			Sign:   Signs[(ascIndex+i)%12],
			Degree: 0.0,
		}
	}
	return houses
}

func summarize(sun, moon, rising BodyPosition) string {
	sunSign := TitleSign(sun.Sign)
	moonSign := TitleSign(moon.Sign)
	risingSign := TitleSign(rising.Sign)

	return fmt.Sprintf(
		"As a %s Sun with a %s Moon and %s Rising, "+
			"you combine the core identity of %s with the emotional depth of %s. "+
			"The world sees you through your %s Ascendant, shaping first impressions and life approach.",
		sunSign, moonSign, risingSign, sunSign, moonSign, risingSign,
	)
}

func round2(d float64) float64 {
	return math.Round(d*100) / 100
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
