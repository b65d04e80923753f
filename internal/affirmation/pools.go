package affirmation

// Affirmation は1件のアファメーション。
type Affirmation struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Emoji    string `json:"emoji"`
}

// Category はアファメーションのカテゴリ。
type Category struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// categories はAI生成で使う正規の10カテゴリ。生成プロンプトの
// 並び順がそのままIDの連番になる。
var categories = [10]Category{
	{Name: "Power", Emoji: "🔥"},
	{Name: "Love", Emoji: "💕"},
	{Name: "Abundance", Emoji: "💰"},
	{Name: "Healing", Emoji: "💜"},
	{Name: "Courage", Emoji: "⚡"},
	{Name: "Wisdom", Emoji: "✨"},
	{Name: "Peace", Emoji: "🕊️"},
	{Name: "Creativity", Emoji: "🎨"},
	{Name: "Growth", Emoji: "🌱"},
	{Name: "Self-Love", Emoji: "💖"},
}

// zodiacTraits は生成プロンプトに織り込む星座ごとの気質。
var zodiacTraits = map[string]string{
	"aries":       "bold, courageous, pioneering, energetic leader",
	"taurus":      "stable, patient, sensual, loves comfort and beauty",
	"gemini":      "curious, adaptable, communicative, quick-minded",
	"cancer":      "nurturing, intuitive, emotional, protective",
	"leo":         "confident, creative, generous, natural performer",
	"virgo":       "analytical, helpful, practical, detail-oriented",
	"libra":       "harmonious, diplomatic, aesthetic, partnership-focused",
	"scorpio":     "intense, transformative, passionate, deeply emotional",
	"sagittarius": "adventurous, optimistic, philosophical, freedom-loving",
	"capricorn":   "ambitious, disciplined, responsible, goal-oriented",
	"aquarius":    "innovative, humanitarian, independent, visionary",
	"pisces":      "compassionate, intuitive, artistic, spiritually connected",
}

// fallbackPools はAI生成が使えないときの星座別アファメーション。
var fallbackPools = map[string][]Affirmation{
	"aries": {
		{ID: "aries_1", Text: "I am a powerful creator. My courage opens doors.", Category: "Power", Emoji: "🔥"},
		{ID: "aries_2", Text: "I trust my instincts and take bold action.", Category: "Courage", Emoji: "⚡"},
		{ID: "aries_3", Text: "My passion ignites positive change.", Category: "Passion", Emoji: "🌟"},
		{ID: "aries_4", Text: "I lead with confidence and inspire others.", Category: "Leadership", Emoji: "👑"},
		{ID: "aries_5", Text: "My energy attracts success and abundance.", Category: "Abundance", Emoji: "💰"},
		{ID: "aries_6", Text: "I embrace new challenges with enthusiasm.", Category: "Growth", Emoji: "🚀"},
		{ID: "aries_7", Text: "My determination knows no bounds.", Category: "Determination", Emoji: "💪"},
		{ID: "aries_8", Text: "I am fearless in pursuing my dreams.", Category: "Dreams", Emoji: "✨"},
		{ID: "aries_9", Text: "My authentic self shines through every action.", Category: "Authenticity", Emoji: "🌈"},
		{ID: "aries_10", Text: "I attract opportunities that match my ambition.", Category: "Opportunity", Emoji: "🎯"},
	},
	"taurus": {
		{ID: "taurus_1", Text: "I am grounded, stable, and secure in my worth.", Category: "Stability", Emoji: "🌿"},
		{ID: "taurus_2", Text: "Abundance flows to me naturally.", Category: "Abundance", Emoji: "💎"},
		{ID: "taurus_3", Text: "I deserve comfort and all good things.", Category: "Worth", Emoji: "🌸"},
		{ID: "taurus_4", Text: "My patience brings me the best rewards.", Category: "Patience", Emoji: "🌳"},
		{ID: "taurus_5", Text: "I attract prosperity through my dedication.", Category: "Prosperity", Emoji: "💰"},
		{ID: "taurus_6", Text: "I am worthy of deep, lasting love.", Category: "Love", Emoji: "💕"},
		{ID: "taurus_7", Text: "My senses guide me to beauty and pleasure.", Category: "Pleasure", Emoji: "🌹"},
		{ID: "taurus_8", Text: "I build a life of luxury and comfort.", Category: "Luxury", Emoji: "✨"},
		{ID: "taurus_9", Text: "My persistence creates lasting success.", Category: "Success", Emoji: "🏆"},
		{ID: "taurus_10", Text: "I am at peace with the rhythm of life.", Category: "Peace", Emoji: "🕊️"},
	},
	"gemini": {
		{ID: "gemini_1", Text: "My curiosity leads me to discoveries.", Category: "Curiosity", Emoji: "✨"},
		{ID: "gemini_2", Text: "I express my truth with clarity.", Category: "Communication", Emoji: "💬"},
		{ID: "gemini_3", Text: "I embrace all aspects of myself.", Category: "Self-Love", Emoji: "💕"},
		{ID: "gemini_4", Text: "My words have the power to inspire.", Category: "Inspiration", Emoji: "🌟"},
		{ID: "gemini_5", Text: "I adapt gracefully to change.", Category: "Adaptability", Emoji: "🦋"},
		{ID: "gemini_6", Text: "My mind is a fountain of brilliant ideas.", Category: "Creativity", Emoji: "💡"},
		{ID: "gemini_7", Text: "I connect deeply with everyone I meet.", Category: "Connection", Emoji: "🤝"},
		{ID: "gemini_8", Text: "I learn something valuable every day.", Category: "Learning", Emoji: "📚"},
		{ID: "gemini_9", Text: "My versatility is my superpower.", Category: "Versatility", Emoji: "🌀"},
		{ID: "gemini_10", Text: "I communicate my needs with confidence.", Category: "Confidence", Emoji: "👑"},
	},
	"cancer": {
		{ID: "cancer_1", Text: "My sensitivity is my superpower.", Category: "Sensitivity", Emoji: "🌙"},
		{ID: "cancer_2", Text: "I create safe spaces wherever I go.", Category: "Security", Emoji: "🏠"},
		{ID: "cancer_3", Text: "My intuition guides me perfectly.", Category: "Intuition", Emoji: "🔮"},
		{ID: "cancer_4", Text: "I nurture myself with the same love I give others.", Category: "Self-Care", Emoji: "💝"},
		{ID: "cancer_5", Text: "My emotions are valid and powerful.", Category: "Emotions", Emoji: "💧"},
		{ID: "cancer_6", Text: "I am deeply loved and protected.", Category: "Love", Emoji: "💕"},
		{ID: "cancer_7", Text: "My home is a sanctuary of peace.", Category: "Home", Emoji: "🏡"},
		{ID: "cancer_8", Text: "I honor my need for rest and reflection.", Category: "Rest", Emoji: "🌊"},
		{ID: "cancer_9", Text: "My caring nature attracts loyal friends.", Category: "Friendship", Emoji: "🤗"},
		{ID: "cancer_10", Text: "I trust the cycles of life to support me.", Category: "Trust", Emoji: "🌙"},
	},
	"leo": {
		{ID: "leo_1", Text: "I shine brightly and inspire others.", Category: "Confidence", Emoji: "☀️"},
		{ID: "leo_2", Text: "My creativity flows abundantly.", Category: "Creativity", Emoji: "🎨"},
		{ID: "leo_3", Text: "I am worthy of love and recognition.", Category: "Self-Worth", Emoji: "👑"},
		{ID: "leo_4", Text: "My heart is generous and full of warmth.", Category: "Generosity", Emoji: "💛"},
		{ID: "leo_5", Text: "I attract admiration through authenticity.", Category: "Authenticity", Emoji: "🌟"},
		{ID: "leo_6", Text: "My presence lights up every room.", Category: "Presence", Emoji: "✨"},
		{ID: "leo_7", Text: "I lead with love and inspire loyalty.", Category: "Leadership", Emoji: "🦁"},
		{ID: "leo_8", Text: "My passion creates beautiful things.", Category: "Passion", Emoji: "🔥"},
		{ID: "leo_9", Text: "I celebrate myself and my achievements.", Category: "Celebration", Emoji: "🎉"},
		{ID: "leo_10", Text: "I am the star of my own life story.", Category: "Self-Love", Emoji: "⭐"},
	},
	"virgo": {
		{ID: "virgo_1", Text: "I embrace my beautiful imperfections.", Category: "Acceptance", Emoji: "🌾"},
		{ID: "virgo_2", Text: "My attention to detail creates excellence.", Category: "Excellence", Emoji: "💫"},
		{ID: "virgo_3", Text: "I am healthy and complete as I am.", Category: "Health", Emoji: "🌱"},
		{ID: "virgo_4", Text: "My service to others enriches my soul.", Category: "Service", Emoji: "🤲"},
		{ID: "virgo_5", Text: "I release the need for perfection.", Category: "Release", Emoji: "🦋"},
		{ID: "virgo_6", Text: "My practical wisdom guides me well.", Category: "Wisdom", Emoji: "🧘"},
		{ID: "virgo_7", Text: "I am valuable beyond my productivity.", Category: "Worth", Emoji: "💎"},
		{ID: "virgo_8", Text: "My body is a temple I honor daily.", Category: "Body", Emoji: "🧘‍♀️"},
		{ID: "virgo_9", Text: "I trust myself to make the right choices.", Category: "Trust", Emoji: "🌿"},
		{ID: "virgo_10", Text: "My organized mind creates peaceful days.", Category: "Peace", Emoji: "📚"},
	},
	"libra": {
		{ID: "libra_1", Text: "I attract harmonious relationships.", Category: "Harmony", Emoji: "⚖️"},
		{ID: "libra_2", Text: "Beauty surrounds and flows through me.", Category: "Beauty", Emoji: "🌹"},
		{ID: "libra_3", Text: "I make decisions with ease.", Category: "Decisiveness", Emoji: "💝"},
		{ID: "libra_4", Text: "I am balanced in all areas of life.", Category: "Balance", Emoji: "☯️"},
		{ID: "libra_5", Text: "My partnerships bring out my best.", Category: "Partnership", Emoji: "💕"},
		{ID: "libra_6", Text: "I create peace wherever I go.", Category: "Peace", Emoji: "🕊️"},
		{ID: "libra_7", Text: "My charm opens doors to opportunity.", Category: "Charm", Emoji: "✨"},
		{ID: "libra_8", Text: "I deserve love that feels like home.", Category: "Love", Emoji: "🏡"},
		{ID: "libra_9", Text: "I stand firm in my values and beliefs.", Category: "Values", Emoji: "💪"},
		{ID: "libra_10", Text: "I find beauty in every moment.", Category: "Appreciation", Emoji: "🌸"},
	},
	"scorpio": {
		{ID: "scorpio_1", Text: "I transform challenges into growth.", Category: "Transformation", Emoji: "🦋"},
		{ID: "scorpio_2", Text: "My intensity creates deep connections.", Category: "Depth", Emoji: "🌊"},
		{ID: "scorpio_3", Text: "I release what no longer serves me.", Category: "Rebirth", Emoji: "🔥"},
		{ID: "scorpio_4", Text: "My power comes from within.", Category: "Power", Emoji: "⚡"},
		{ID: "scorpio_5", Text: "I trust my ability to heal and renew.", Category: "Healing", Emoji: "💜"},
		{ID: "scorpio_6", Text: "My passion drives meaningful change.", Category: "Passion", Emoji: "🌋"},
		{ID: "scorpio_7", Text: "I embrace the mysteries of life.", Category: "Mystery", Emoji: "🔮"},
		{ID: "scorpio_8", Text: "My vulnerability is my strength.", Category: "Vulnerability", Emoji: "💧"},
		{ID: "scorpio_9", Text: "I attract loyal, authentic souls.", Category: "Loyalty", Emoji: "🦂"},
		{ID: "scorpio_10", Text: "I rise from every challenge stronger.", Category: "Resilience", Emoji: "🌅"},
	},
	"sagittarius": {
		{ID: "sag_1", Text: "Adventure awaits me at every turn.", Category: "Adventure", Emoji: "🏹"},
		{ID: "sag_2", Text: "My optimism attracts miracles.", Category: "Optimism", Emoji: "🌈"},
		{ID: "sag_3", Text: "I embrace limitless possibilities.", Category: "Expansion", Emoji: "🌍"},
		{ID: "sag_4", Text: "My freedom fuels my creativity.", Category: "Freedom", Emoji: "🦅"},
		{ID: "sag_5", Text: "I find wisdom in every experience.", Category: "Wisdom", Emoji: "📖"},
		{ID: "sag_6", Text: "My joy is contagious and inspiring.", Category: "Joy", Emoji: "✨"},
		{ID: "sag_7", Text: "I trust the journey as much as the destination.", Category: "Trust", Emoji: "🛤️"},
		{ID: "sag_8", Text: "I speak my truth with honesty.", Category: "Honesty", Emoji: "💬"},
		{ID: "sag_9", Text: "My luck follows me everywhere.", Category: "Luck", Emoji: "🍀"},
		{ID: "sag_10", Text: "I grow through every adventure.", Category: "Growth", Emoji: "🌱"},
	},
	"capricorn": {
		{ID: "cap_1", Text: "I am building an extraordinary life.", Category: "Achievement", Emoji: "🏔️"},
		{ID: "cap_2", Text: "My discipline leads to success.", Category: "Discipline", Emoji: "🎯"},
		{ID: "cap_3", Text: "I balance ambition with self-care.", Category: "Balance", Emoji: "⭐"},
		{ID: "cap_4", Text: "My hard work creates lasting legacy.", Category: "Legacy", Emoji: "🏆"},
		{ID: "cap_5", Text: "I am worthy of rest and relaxation.", Category: "Rest", Emoji: "🌙"},
		{ID: "cap_6", Text: "My goals are within reach.", Category: "Goals", Emoji: "🎯"},
		{ID: "cap_7", Text: "I climb every mountain with grace.", Category: "Perseverance", Emoji: "⛰️"},
		{ID: "cap_8", Text: "Success flows to me naturally.", Category: "Success", Emoji: "💰"},
		{ID: "cap_9", Text: "I honor my need for structure and order.", Category: "Structure", Emoji: "📐"},
		{ID: "cap_10", Text: "My wisdom grows with every year.", Category: "Wisdom", Emoji: "🦉"},
	},
	"aquarius": {
		{ID: "aqua_1", Text: "My unique perspective changes the world.", Category: "Innovation", Emoji: "💡"},
		{ID: "aqua_2", Text: "I embrace my individuality.", Category: "Authenticity", Emoji: "🌀"},
		{ID: "aqua_3", Text: "I connect with like-minded souls.", Category: "Community", Emoji: "🤝"},
		{ID: "aqua_4", Text: "My ideas have the power to revolutionize.", Category: "Revolution", Emoji: "⚡"},
		{ID: "aqua_5", Text: "I honor my need for freedom.", Category: "Freedom", Emoji: "🦋"},
		{ID: "aqua_6", Text: "My humanitarian heart guides my actions.", Category: "Compassion", Emoji: "💙"},
		{ID: "aqua_7", Text: "I am ahead of my time.", Category: "Vision", Emoji: "🔭"},
		{ID: "aqua_8", Text: "My eccentricity is my gift.", Category: "Uniqueness", Emoji: "🌟"},
		{ID: "aqua_9", Text: "I create change through understanding.", Category: "Understanding", Emoji: "🧠"},
		{ID: "aqua_10", Text: "I attract my tribe effortlessly.", Category: "Tribe", Emoji: "👥"},
	},
	"pisces": {
		{ID: "pisces_1", Text: "My dreams are powerful portals.", Category: "Dreams", Emoji: "🌙"},
		{ID: "pisces_2", Text: "I trust the flow of life.", Category: "Trust", Emoji: "🌊"},
		{ID: "pisces_3", Text: "My compassion heals everyone I meet.", Category: "Compassion", Emoji: "💜"},
		{ID: "pisces_4", Text: "My creativity knows no limits.", Category: "Creativity", Emoji: "🎨"},
		{ID: "pisces_5", Text: "I am connected to universal wisdom.", Category: "Wisdom", Emoji: "✨"},
		{ID: "pisces_6", Text: "My intuition guides me perfectly.", Category: "Intuition", Emoji: "🔮"},
		{ID: "pisces_7", Text: "I embrace my spiritual gifts.", Category: "Spirituality", Emoji: "🙏"},
		{ID: "pisces_8", Text: "My empathy is a superpower.", Category: "Empathy", Emoji: "💕"},
		{ID: "pisces_9", Text: "I protect my energy with love.", Category: "Protection", Emoji: "🛡️"},
		{ID: "pisces_10", Text: "I create magic wherever I go.", Category: "Magic", Emoji: "🪄"},
	},
}
