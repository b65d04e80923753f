package astro

import "fmt"

// ReadingTable は天体×星座の解釈テキストを保持する。
// 一度構築したら不変で、チャートサービスに注入して使う。
type ReadingTable struct {
	entries map[string]map[string]string
}

// NewReadingTable は解釈テキストのテーブルを構築する。
func NewReadingTable() *ReadingTable {
	return &ReadingTable{entries: planetSignReadings}
}

// Reading は天体と星座の組に対する解釈テキストを返す。
// テーブルにない組み合わせは汎用テンプレートで補う。
func (t *ReadingTable) Reading(planet, sign string) string {
	if signs, ok := t.entries[planet]; ok {
		if text, ok := signs[sign]; ok {
			return text
		}
	}
	return fmt.Sprintf("Your %s in %s brings unique energy to your chart.", TitleSign(planet), TitleSign(sign))
}

// planetSignReadings は天体×星座の解釈テキスト。
var planetSignReadings = map[string]map[string]string{
	"sun": {
		"aries":       "Bold, pioneering spirit with natural leadership. You radiate confidence and initiative.",
		"taurus":      "Grounded, sensual nature valuing stability. Your strength comes from patience and determination.",
		"gemini":      "Curious, adaptable mind seeking knowledge. Communication and variety fuel your vitality.",
		"cancer":      "Nurturing soul with deep emotional wisdom. Home and family form your core identity.",
		"leo":         "Radiant creative expression and generous heart. You shine brightest when inspiring others.",
		"virgo":       "Analytical mind with devotion to service. Perfection and improvement drive your purpose.",
		"libra":       "Harmony-seeking diplomat with refined aesthetic. Relationships and balance define you.",
		"scorpio":     "Intense, transformative power and emotional depth. You thrive through regeneration.",
		"sagittarius": "Adventurous philosopher seeking truth. Freedom and expansion fuel your spirit.",
		"capricorn":   "Ambitious achiever with disciplined drive. You build lasting legacies through hard work.",
		"aquarius":    "Innovative visionary championing humanity. Your uniqueness inspires collective progress.",
		"pisces":      "Compassionate dreamer connected to the divine. Intuition and imagination guide your path.",
	},
	"moon": {
		"aries":       "Emotionally impulsive and fiery. You need independence and action to feel secure.",
		"taurus":      "Emotionally steady and comfort-seeking. Security comes from stability and sensory pleasures.",
		"gemini":      "Emotionally curious and changeable. You process feelings through talking and thinking.",
		"cancer":      "Deeply intuitive and nurturing. Your emotional world is rich and protective.",
		"leo":         "Emotionally expressive and warm. You need recognition and appreciation to feel loved.",
		"virgo":       "Emotionally reserved but caring. You show love through acts of service and attention.",
		"libra":       "Emotionally balanced and relationship-focused. Harmony in partnerships is essential.",
		"scorpio":     "Emotionally intense and transformative. You feel everything deeply and completely.",
		"sagittarius": "Emotionally optimistic and freedom-loving. Adventure and meaning nurture your soul.",
		"capricorn":   "Emotionally controlled and responsible. You find security through achievement.",
		"aquarius":    "Emotionally detached but humanitarian. You need intellectual connection and space.",
		"pisces":      "Emotionally sensitive and empathic. Boundaries blur as you absorb others' feelings.",
	},
	"ascendant": {
		"aries":       "You appear bold, direct, and energetic. First impressions show your competitive spirit.",
		"taurus":      "You appear calm, reliable, and sensual. Others see stability and grace in you.",
		"gemini":      "You appear witty, curious, and youthful. Your quick mind makes first impressions.",
		"cancer":      "You appear caring, protective, and intuitive. A nurturing aura surrounds you.",
		"leo":         "You appear confident, dramatic, and warm. Your presence commands attention.",
		"virgo":       "You appear modest, analytical, and helpful. Precision defines your outer self.",
		"libra":       "You appear charming, balanced, and refined. Beauty and diplomacy mark your style.",
		"scorpio":     "You appear intense, mysterious, and magnetic. Others sense your hidden depths.",
		"sagittarius": "You appear optimistic, adventurous, and honest. Enthusiasm is your calling card.",
		"capricorn":   "You appear serious, ambitious, and mature. Responsibility marks your demeanor.",
		"aquarius":    "You appear unique, progressive, and detached. Originality defines your presence.",
		"pisces":      "You appear dreamy, compassionate, and ethereal. A mystical aura surrounds you.",
	},
	"mercury": {
		"aries":       "Quick, direct thinking with assertive communication. Ideas come fast and bold.",
		"taurus":      "Practical, deliberate thinking. You communicate with patience and reliability.",
		"gemini":      "Versatile, curious mind excelling at communication. Ideas flow freely and quickly.",
		"cancer":      "Intuitive thinking colored by emotion. Memory and feeling guide your thoughts.",
		"leo":         "Creative, dramatic communication style. You express ideas with flair and confidence.",
		"virgo":       "Analytical, precise thinking. Detail-oriented communication serves practical goals.",
		"libra":       "Diplomatic, balanced thinking. You weigh all sides before expressing views.",
		"scorpio":     "Penetrating, investigative mind. Your thinking goes deep beneath the surface.",
		"sagittarius": "Expansive, philosophical thinking. Big ideas and truth-seeking guide your mind.",
		"capricorn":   "Structured, strategic thinking. Communication serves ambitious, practical goals.",
		"aquarius":    "Innovative, unconventional thinking. Original ideas and progressive views define you.",
		"pisces":      "Imaginative, intuitive thinking. Poetry and symbolism color your communication.",
	},
	"venus": {
		"aries":       "Passionate, impulsive love nature. You pursue romance with directness and fire.",
		"taurus":      "Sensual, loyal love nature. You value stability, beauty, and physical pleasure.",
		"gemini":      "Playful, intellectual love nature. Mental connection and variety attract you.",
		"cancer":      "Nurturing, protective love nature. Emotional security is paramount in relationships.",
		"leo":         "Generous, dramatic love nature. You love with warmth and need appreciation.",
		"virgo":       "Devoted, practical love nature. You show love through service and attention.",
		"libra":       "Harmonious, romantic love nature. Partnership and beauty are essential to you.",
		"scorpio":     "Intense, passionate love nature. Deep emotional bonds and loyalty define love.",
		"sagittarius": "Adventurous, freedom-loving in love. Growth and exploration attract you.",
		"capricorn":   "Committed, ambitious love nature. You value stability and long-term goals.",
		"aquarius":    "Unconventional, friendship-based love. Intellectual connection and freedom matter.",
		"pisces":      "Romantic, compassionate love nature. You love unconditionally and spiritually.",
	},
	"mars": {
		"aries":       "Powerful, direct energy and drive. You act decisively with natural courage.",
		"taurus":      "Steady, persistent energy. You work slowly but with unstoppable determination.",
		"gemini":      "Versatile, mental energy. You act through communication and quick thinking.",
		"cancer":      "Protective, emotional drive. You fight for home, family, and emotional security.",
		"leo":         "Creative, confident energy. You act with pride and dramatic flair.",
		"virgo":       "Precise, service-oriented drive. You channel energy into perfection and help.",
		"libra":       "Diplomatic, partnership-focused action. You prefer cooperation over conflict.",
		"scorpio":     "Intense, strategic power. You act with determination and emotional depth.",
		"sagittarius": "Adventurous, enthusiastic energy. You act on beliefs and seek expansion.",
		"capricorn":   "Disciplined, ambitious drive. You work strategically toward long-term goals.",
		"aquarius":    "Progressive, unconventional action. You fight for causes and innovation.",
		"pisces":      "Intuitive, compassionate drive. You act on inspiration and spiritual guidance.",
	},
	"jupiter": {
		"aries":       "Growth through initiative and leadership. Fortune favors your bold ventures.",
		"taurus":      "Growth through resources and stability. Abundance flows through patience.",
		"gemini":      "Growth through learning and communication. Knowledge brings opportunities.",
		"cancer":      "Growth through nurturing and intuition. Family and home bring blessings.",
		"leo":         "Growth through creativity and self-expression. Generosity attracts abundance.",
		"virgo":       "Growth through service and improvement. Details and health bring rewards.",
		"libra":       "Growth through relationships and harmony. Partnerships bring opportunities.",
		"scorpio":     "Growth through transformation and depth. Intensity brings powerful rewards.",
		"sagittarius": "Natural philosopher and seeker. Travel, wisdom, and truth bring abundance.",
		"capricorn":   "Growth through discipline and achievement. Success comes through hard work.",
		"aquarius":    "Growth through innovation and humanity. Unusual paths bring opportunities.",
		"pisces":      "Growth through spirituality and compassion. Faith and intuition guide fortune.",
	},
	"saturn": {
		"aries":       "Lessons in patience and self-assertion. Learn to balance impulse with discipline.",
		"taurus":      "Lessons in material security. Build lasting value through steady effort.",
		"gemini":      "Lessons in focused communication. Discipline your mind and words.",
		"cancer":      "Lessons in emotional boundaries. Learn to balance nurturing with self-protection.",
		"leo":         "Lessons in humble self-expression. True confidence comes from inner authority.",
		"virgo":       "Lessons in perfectionism and service. Balance criticism with acceptance.",
		"libra":       "Lessons in relationships and fairness. Commitment brings growth through challenges.",
		"scorpio":     "Lessons in power and control. Transform shadow into wisdom through time.",
		"sagittarius": "Lessons in belief and expansion. Ground your philosophy in reality.",
		"capricorn":   "Native strength in ambition and structure. Build your legacy with integrity.",
		"aquarius":    "Lessons in individuality and community. Balance uniqueness with responsibility.",
		"pisces":      "Lessons in boundaries and spirituality. Ground your dreams in practical reality.",
	},
	"uranus": {
		"aries":       "Revolutionary pioneer energy. You innovate through bold, independent action.",
		"taurus":      "Revolutionary approach to resources. You transform values and material security.",
		"gemini":      "Revolutionary thinking and ideas. You innovate through communication.",
		"cancer":      "Revolutionary home and family concepts. You transform emotional patterns.",
		"leo":         "Revolutionary creative expression. You innovate through unique self-expression.",
		"virgo":       "Revolutionary service and health. You transform through innovative methods.",
		"libra":       "Revolutionary relationships. You transform partnership dynamics.",
		"scorpio":     "Revolutionary transformation. You innovate through deep psychological insight.",
		"sagittarius": "Revolutionary philosophy. You transform beliefs and expand consciousness.",
		"capricorn":   "Revolutionary structures. You transform institutions and traditions.",
		"aquarius":    "Native revolutionary energy. You are the change-maker and visionary.",
		"pisces":      "Revolutionary spirituality. You transform through mystical innovation.",
	},
	"neptune": {
		"aries":       "Spiritual warrior energy. Your idealism drives inspired action.",
		"taurus":      "Spiritual approach to beauty and nature. Art and music elevate your soul.",
		"gemini":      "Spiritual communication and ideas. You channel inspiration through words.",
		"cancer":      "Spiritual nurturing and empathy. You feel the collective emotional current.",
		"leo":         "Spiritual creativity and performance. Art becomes a divine channel.",
		"virgo":       "Spiritual service and healing. You serve through compassionate attention.",
		"libra":       "Spiritual love and beauty. Relationships become sacred unions.",
		"scorpio":     "Spiritual depth and mysticism. You touch hidden realms of consciousness.",
		"sagittarius": "Spiritual seeking and vision. Faith and philosophy elevate your journey.",
		"capricorn":   "Spiritual ambition and structure. You build bridges between worlds.",
		"aquarius":    "Spiritual humanity and vision. Your ideals serve collective awakening.",
		"pisces":      "Native spiritual consciousness. You are naturally connected to the divine.",
	},
}
