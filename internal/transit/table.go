// Package transit は静的な天体トランジット表と日替わりエネルギーを提供する。
//
// 表は2024年末〜2026年の主要イベント（イングレス、逆行、食、朔望）を
// 収録している。本来はエフェメリスから動的に計算すべきものだが、
// 長周期トランジットは数年単位で変わらないため静的データで十分足りる。
package transit

import "time"

// Transit はトランジット表の1エントリ。
// EndDateがゼロ値のものは単日イベント（食・朔望）。
type Transit struct {
	ID           string
	Planet       string
	PlanetSymbol string
	Type         string // "ingress", "retrograde", "eclipse"
	SignFrom     string
	SignTo       string
	StartDate    time.Time
	EndDate      time.Time
	Importance   string // "critical", "high", "medium"
	Description  string
	Guidance     string
	Effects      []string
	Rituals      []string
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// transitTable は2024年末〜2026年のトランジット一覧。
var transitTable = []Transit{
	{
		ID:           "pluto_aquarius",
		Planet:       "Pluto",
		PlanetSymbol: "♇",
		Type:         "ingress",
		SignFrom:     "Aquarius",
		StartDate:    date(2024, 11, 19),
		EndDate:      date(2044, 1, 19),
		Importance:   "critical",
		Description:  "Pluto in Aquarius (20-year transit!)",
		Guidance:     "Generational transformation of society, technology, and collective power. Revolutionary changes in humanity's future.",
		Effects:      []string{"AI revolution", "Power to people", "Social transformation", "Tech evolution"},
		Rituals:      []string{"Embrace innovation", "Community involvement", "Future visioning"},
	},
	{
		ID:           "neptune_aries_2025",
		Planet:       "Neptune",
		PlanetSymbol: "♆",
		Type:         "ingress",
		SignFrom:     "Pisces",
		SignTo:       "Aries",
		StartDate:    date(2025, 3, 30),
		EndDate:      date(2039, 1, 26),
		Importance:   "high",
		Description:  "Neptune in Aries",
		Guidance:     "Dreams take action. Spiritual pioneering. Dissolving ego boundaries while asserting individuality. Creative warriors.",
		Effects:      []string{"Spiritual activism", "Artistic innovation", "Compassionate action", "Idealistic movements"},
		Rituals:      []string{"Active meditation", "Creative visualization", "Conscious action"},
	},
	{
		ID:           "uranus_gemini_2025",
		Planet:       "Uranus",
		PlanetSymbol: "♅",
		Type:         "ingress",
		SignFrom:     "Taurus",
		SignTo:       "Gemini",
		StartDate:    date(2025, 7, 7),
		EndDate:      date(2032, 11, 8),
		Importance:   "high",
		Description:  "Uranus in Gemini",
		Guidance:     "Revolutionary ideas in communication and learning. AI breakthroughs. New ways of thinking and connecting.",
		Effects:      []string{"AI communication revolution", "Education transformation", "Thought innovation", "Tech in transport"},
		Rituals:      []string{"Learn new tech", "Share radical ideas", "Experiment with communication"},
	},
	{
		ID:           "saturn_aries_2025",
		Planet:       "Saturn",
		PlanetSymbol: "♄",
		Type:         "ingress",
		SignFrom:     "Pisces",
		SignTo:       "Aries",
		StartDate:    date(2025, 5, 24),
		EndDate:      date(2028, 2, 13),
		Importance:   "high",
		Description:  "Saturn in Aries",
		Guidance:     "Disciplined new beginnings. Structure in self-assertion. Building identity with responsibility.",
		Effects:      []string{"Leadership responsibility", "Identity structure", "Courageous discipline", "Self-mastery"},
		Rituals:      []string{"Set personal boundaries", "Physical discipline", "Take calculated risks"},
	},
	{
		ID:           "jupiter_cancer_2025",
		Planet:       "Jupiter",
		PlanetSymbol: "♃",
		Type:         "ingress",
		SignFrom:     "Gemini",
		SignTo:       "Cancer",
		StartDate:    date(2025, 6, 9),
		EndDate:      date(2026, 6, 30),
		Importance:   "medium",
		Description:  "Jupiter in Cancer (exalted!)",
		Guidance:     "Abundant blessings in home, family, and emotional security. Great for property, nurturing, and inner growth.",
		Effects:      []string{"Family expansion", "Home blessings", "Emotional growth", "Nurturing prosperity"},
		Rituals:      []string{"Bless your home", "Connect with family", "Emotional self-care"},
	},
	{
		ID:           "mercury_retro_jan_2026",
		Planet:       "Mercury",
		PlanetSymbol: "☿",
		Type:         "retrograde",
		SignFrom:     "Aquarius",
		StartDate:    date(2026, 1, 15),
		EndDate:      date(2026, 2, 5),
		Importance:   "high",
		Description:  "Mercury Retrograde in Aquarius",
		Guidance:     "Review technology and innovation projects. Old ideas resurface with new relevance. Back up digital data.",
		Effects:      []string{"Tech glitches", "Revisiting innovation", "Old connections return", "Digital detox needed"},
		Rituals:      []string{"Backup data", "Review tech choices", "Reconnect with groups"},
	},
	{
		ID:           "full_moon_jan_2026",
		Planet:       "Moon",
		PlanetSymbol: "🌕",
		Type:         "ingress",
		SignFrom:     "Cancer",
		StartDate:    date(2026, 1, 3),
		Importance:   "medium",
		Description:  "Full Moon in Cancer",
		Guidance:     "Emotional culmination around home and family. Release what no longer nurtures you.",
		Effects:      []string{"Family clarity", "Home decisions", "Emotional release", "Nurturing completion"},
		Rituals:      []string{"Moon bath", "Release ritual", "Family healing"},
	},
	{
		ID:           "new_moon_jan_2026",
		Planet:       "Moon",
		PlanetSymbol: "🌑",
		Type:         "ingress",
		SignFrom:     "Capricorn",
		StartDate:    date(2026, 1, 18),
		Importance:   "medium",
		Description:  "New Moon in Capricorn",
		Guidance:     "Set intentions for career and long-term goals. Plant seeds for worldly success.",
		Effects:      []string{"Career intentions", "Goal setting", "Ambition renewal", "Structure building"},
		Rituals:      []string{"Goal planning", "Career visualization", "Discipline commitment"},
	},
	{
		ID:           "lunar_eclipse_mar_2026",
		Planet:       "Moon",
		PlanetSymbol: "☽",
		Type:         "eclipse",
		SignFrom:     "Virgo",
		StartDate:    date(2026, 3, 3),
		Importance:   "critical",
		Description:  "Lunar Eclipse in Virgo",
		Guidance:     "Release perfectionism in health and work. Emotional revelations about daily routines and service.",
		Effects:      []string{"Health shifts", "Work endings", "Routine release", "Service completion"},
		Rituals:      []string{"Health commitment", "Declutter", "Let go of perfectionism"},
	},
	{
		ID:           "solar_eclipse_mar_2026",
		Planet:       "Sun",
		PlanetSymbol: "☉",
		Type:         "eclipse",
		SignFrom:     "Pisces",
		StartDate:    date(2026, 3, 17),
		Importance:   "critical",
		Description:  "Solar Eclipse in Pisces",
		Guidance:     "New spiritual beginnings. Plant seeds for dreams and imagination. Trust intuition.",
		Effects:      []string{"Spiritual awakening", "Dream manifestation", "Intuitive opening", "Creative rebirth"},
		Rituals:      []string{"Dream work", "Meditation", "Art creation"},
	},
	{
		ID:           "lunar_eclipse_aug_2026",
		Planet:       "Moon",
		PlanetSymbol: "☽",
		Type:         "eclipse",
		SignFrom:     "Aquarius",
		StartDate:    date(2026, 8, 28),
		Importance:   "critical",
		Description:  "Lunar Eclipse in Aquarius",
		Guidance:     "Release old group dynamics and outdated ideals. Emotional clarity about friendship and humanity.",
		Effects:      []string{"Friendship shifts", "Group endings", "Humanitarian awakening", "Tech transformation"},
		Rituals:      []string{"Community ritual", "Release old groups", "Future visioning"},
	},
	{
		ID:           "solar_eclipse_sep_2026",
		Planet:       "Sun",
		PlanetSymbol: "☉",
		Type:         "eclipse",
		SignFrom:     "Virgo",
		StartDate:    date(2026, 9, 12),
		Importance:   "critical",
		Description:  "Solar Eclipse in Virgo",
		Guidance:     "New chapter in health, work, and service. Perfect time for wellness routines and job changes.",
		Effects:      []string{"Health transformation", "New work chapter", "Service opportunities", "Routine renewal"},
		Rituals:      []string{"Start new routine", "Health goal setting", "Service commitment"},
	},
}

// DailyEnergy は曜日ごとの日替わりエネルギー。
type DailyEnergy struct {
	Energy string `json:"energy"`
	Color  string `json:"color"`
	Focus  string `json:"focus"`
	Avoid  string `json:"avoid"`
}

// dailyEnergies は月曜を先頭とした曜日別エネルギー。
var dailyEnergies = [7]DailyEnergy{
	{Energy: "Initiating", Color: "🔴", Focus: "Start new projects", Avoid: "Procrastination"},
	{Energy: "Building", Color: "🟠", Focus: "Steady progress", Avoid: "Rushing"},
	{Energy: "Communicating", Color: "🟡", Focus: "Networking & ideas", Avoid: "Gossip"},
	{Energy: "Nurturing", Color: "🟢", Focus: "Home & self-care", Avoid: "Emotional eating"},
	{Energy: "Creating", Color: "🔵", Focus: "Creative expression", Avoid: "Drama"},
	{Energy: "Analyzing", Color: "🟣", Focus: "Details & planning", Avoid: "Over-criticism"},
	{Energy: "Resting", Color: "⚪", Focus: "Reflection & rest", Avoid: "Overworking"},
}
