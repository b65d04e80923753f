package synastry

// baseCompatibility は12×12の基礎相性スコア。対称行列。
var baseCompatibility = map[string]map[string]int{
	"aries":       {"aries": 75, "taurus": 55, "gemini": 83, "cancer": 47, "leo": 93, "virgo": 48, "libra": 78, "scorpio": 58, "sagittarius": 93, "capricorn": 47, "aquarius": 85, "pisces": 53},
	"taurus":      {"aries": 55, "taurus": 87, "gemini": 42, "cancer": 89, "leo": 62, "virgo": 93, "libra": 55, "scorpio": 85, "sagittarius": 50, "capricorn": 95, "aquarius": 42, "pisces": 85},
	"gemini":      {"aries": 83, "taurus": 42, "gemini": 78, "cancer": 45, "leo": 88, "virgo": 62, "libra": 93, "scorpio": 38, "sagittarius": 78, "capricorn": 35, "aquarius": 92, "pisces": 45},
	"cancer":      {"aries": 47, "taurus": 89, "gemini": 45, "cancer": 82, "leo": 65, "virgo": 78, "libra": 55, "scorpio": 94, "sagittarius": 42, "capricorn": 72, "aquarius": 35, "pisces": 95},
	"leo":         {"aries": 93, "taurus": 62, "gemini": 88, "cancer": 65, "leo": 78, "virgo": 55, "libra": 85, "scorpio": 52, "sagittarius": 93, "capricorn": 45, "aquarius": 68, "pisces": 55},
	"virgo":       {"aries": 48, "taurus": 93, "gemini": 62, "cancer": 78, "leo": 55, "virgo": 85, "libra": 62, "scorpio": 88, "sagittarius": 42, "capricorn": 95, "aquarius": 35, "pisces": 65},
	"libra":       {"aries": 78, "taurus": 55, "gemini": 93, "cancer": 55, "leo": 85, "virgo": 62, "libra": 82, "scorpio": 55, "sagittarius": 75, "capricorn": 52, "aquarius": 92, "pisces": 62},
	"scorpio":     {"aries": 58, "taurus": 85, "gemini": 38, "cancer": 94, "leo": 52, "virgo": 88, "libra": 55, "scorpio": 82, "sagittarius": 42, "capricorn": 78, "aquarius": 38, "pisces": 93},
	"sagittarius": {"aries": 93, "taurus": 50, "gemini": 78, "cancer": 42, "leo": 93, "virgo": 42, "libra": 75, "scorpio": 42, "sagittarius": 85, "capricorn": 48, "aquarius": 85, "pisces": 52},
	"capricorn":   {"aries": 47, "taurus": 95, "gemini": 35, "cancer": 72, "leo": 45, "virgo": 95, "libra": 52, "scorpio": 78, "sagittarius": 48, "capricorn": 88, "aquarius": 52, "pisces": 65},
	"aquarius":    {"aries": 85, "taurus": 42, "gemini": 92, "cancer": 35, "leo": 68, "virgo": 35, "libra": 92, "scorpio": 38, "sagittarius": 85, "capricorn": 52, "aquarius": 82, "pisces": 55},
	"pisces":      {"aries": 53, "taurus": 85, "gemini": 45, "cancer": 95, "leo": 55, "virgo": 65, "libra": 62, "scorpio": 93, "sagittarius": 52, "capricorn": 65, "aquarius": 55, "pisces": 88},
}
