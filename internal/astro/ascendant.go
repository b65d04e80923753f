package astro

import "math"

// EarthRotationAngle はIERSの地球回転角を回転数の小数部[0,1)で返す。
// 引数はUT1のユリウス日（UTCとの差は表示精度を下回るためUTCで代用する）。
func EarthRotationAngle(jdUT float64) float64 {
	f := 0.7790572732640 + 1.00273781191135448*(jdUT-2451545.0)
	f = math.Mod(f, 1)
	if f < 0 {
		f++
	}
	return f
}

// AscendantLongitude はアセンダント黄経（度、[0,360)）を計算する。
// 地球回転角由来の恒星時の近似に地理経度（東経正）を加える簡易式で、
// 緯度は受け取るがこの式では使用しない。
func AscendantLongitude(at AstronomicalTime, latitude, longitude float64) float64 {
	_ = latitude

	era := EarthRotationAngle(at.JDUT)
	lon := math.Mod(era*360+longitude, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}
