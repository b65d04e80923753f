package numerology

// PersonalDayMeaning はパーソナルデイナンバーの解釈。
type PersonalDayMeaning struct {
	Title       string   `json:"title"`
	Emoji       string   `json:"emoji"`
	Energy      string   `json:"energy"`
	Guidance    string   `json:"guidance"`
	Affirmation string   `json:"affirmation"`
	Focus       []string `json:"focus"`
	Avoid       []string `json:"avoid"`
}

// LifePathMeaning はライフパスナンバーの解釈。
type LifePathMeaning struct {
	Title       string   `json:"title"`
	Emoji       string   `json:"emoji"`
	Traits      []string `json:"traits"`
	Description string   `json:"description"`
	Strengths   []string `json:"strengths"`
	Challenges  []string `json:"challenges"`
	LifePurpose string   `json:"life_purpose"`
}

// personalDayMeanings は1〜9のパーソナルデイ解釈。
// マスターナンバーの日は1の解釈にフォールバックする。
var personalDayMeanings = map[int]PersonalDayMeaning{
	1: {
		Title:       "Day of New Beginnings",
		Emoji:       "🌅",
		Energy:      "Initiating",
		Guidance:    "Today's energy favors starting new projects and taking initiative. Trust your instincts and lead with confidence. Your personal power is strong - use it to make bold moves.",
		Affirmation: "I am a powerful creator of my reality.",
		Focus:       []string{"Start new projects", "Take initiative", "Be independent", "Assert yourself"},
		Avoid:       []string{"Following the crowd", "Procrastination", "Self-doubt"},
	},
	2: {
		Title:       "Day of Cooperation",
		Emoji:       "🤝",
		Energy:      "Harmonizing",
		Guidance:    "Today calls for patience and diplomacy. Partnership energies are strong. Listen more than you speak, and seek balance in all interactions.",
		Affirmation: "I create harmony in my relationships.",
		Focus:       []string{"Collaborative work", "Listening", "Patience", "Relationships"},
		Avoid:       []string{"Being pushy", "Impatience", "Forcing issues"},
	},
	3: {
		Title:       "Day of Expression",
		Emoji:       "🎨",
		Energy:      "Creative",
		Guidance:    "Your creativity and communication are supercharged today. Express yourself through art, writing, or conversation. Joy and social connections are favored.",
		Affirmation: "My creative expression flows freely.",
		Focus:       []string{"Creative projects", "Social activities", "Self-expression", "Joy"},
		Avoid:       []string{"Negative self-talk", "Isolation", "Criticism"},
	},
	4: {
		Title:       "Day of Building",
		Emoji:       "🏗️",
		Energy:      "Grounding",
		Guidance:    "Focus on practical matters, organization, and building solid foundations. Hard work pays off today. Create structure and attend to details.",
		Affirmation: "I build lasting foundations for my dreams.",
		Focus:       []string{"Organization", "Practical tasks", "Planning", "Hard work"},
		Avoid:       []string{"Cutting corners", "Disorganization", "Rigidity"},
	},
	5: {
		Title:       "Day of Change",
		Emoji:       "🦋",
		Energy:      "Dynamic",
		Guidance:    "Embrace change and variety today. Adventure calls! Be flexible and open to unexpected opportunities. Break free from routine.",
		Affirmation: "I embrace change with excitement and grace.",
		Focus:       []string{"New experiences", "Flexibility", "Adventure", "Freedom"},
		Avoid:       []string{"Resistance to change", "Excess", "Scattered energy"},
	},
	6: {
		Title:       "Day of Nurturing",
		Emoji:       "💐",
		Energy:      "Loving",
		Guidance:    "Home and family take priority today. Nurture yourself and loved ones. Beauty and harmony are especially important. Give and receive love freely.",
		Affirmation: "I nurture myself and others with love.",
		Focus:       []string{"Family", "Home improvements", "Self-care", "Helping others"},
		Avoid:       []string{"Neglecting yourself", "Perfectionism", "Martyrdom"},
	},
	7: {
		Title:       "Day of Reflection",
		Emoji:       "🔮",
		Energy:      "Introspective",
		Guidance:    "Take time for meditation and inner reflection. Seek knowledge and spiritual connection. Trust your intuition - answers come from within today.",
		Affirmation: "I trust my inner wisdom.",
		Focus:       []string{"Meditation", "Study", "Solitude", "Spiritual practices"},
		Avoid:       []string{"Overthinking", "Isolation extremes", "Skepticism"},
	},
	8: {
		Title:       "Day of Manifestation",
		Emoji:       "💎",
		Energy:      "Abundant",
		Guidance:    "Financial and material matters are favored. Take action on business goals. Your power to manifest is strong - think big and act decisively.",
		Affirmation: "Abundance flows to me naturally.",
		Focus:       []string{"Business matters", "Financial decisions", "Goal achievement", "Leadership"},
		Avoid:       []string{"Greed", "Ignoring ethics", "Workaholism"},
	},
	9: {
		Title:       "Day of Completion",
		Emoji:       "🌍",
		Energy:      "Humanitarian",
		Guidance:    "Focus on completing projects and releasing what no longer serves you. Compassion and service to others bring fulfillment. Let go with love.",
		Affirmation: "I release the old to welcome the new.",
		Focus:       []string{"Completion", "Letting go", "Helping others", "Forgiveness"},
		Avoid:       []string{"Starting new projects", "Holding grudges", "Selfishness"},
	},
}

// lifePathMeanings は1〜9とマスターナンバー11/22/33のライフパス解釈。
var lifePathMeanings = map[int]LifePathMeaning{
	1: {
		Title:       "The Leader",
		Emoji:       "👑",
		Traits:      []string{"Independent", "Ambitious", "Pioneering", "Confident"},
		Description: "You are a natural born leader with strong willpower. Independent and ambitious, you forge your own path and inspire others to follow.",
		Strengths:   []string{"Leadership", "Innovation", "Determination", "Originality"},
		Challenges:  []string{"Stubbornness", "Self-centeredness", "Impatience"},
		LifePurpose: "To develop individuality and lead others toward new beginnings.",
	},
	2: {
		Title:       "The Peacemaker",
		Emoji:       "🕊️",
		Traits:      []string{"Diplomatic", "Sensitive", "Cooperative", "Intuitive"},
		Description: "You are a natural mediator with deep intuition. Partnership and harmony are your gifts, bringing people together.",
		Strengths:   []string{"Diplomacy", "Intuition", "Patience", "Sensitivity"},
		Challenges:  []string{"Oversensitivity", "Indecisiveness", "Dependency"},
		LifePurpose: "To bring harmony and cooperation to relationships and groups.",
	},
	3: {
		Title:       "The Communicator",
		Emoji:       "🎨",
		Traits:      []string{"Creative", "Expressive", "Optimistic", "Social"},
		Description: "You are gifted with creativity and self-expression. Joy and inspiration flow through you naturally.",
		Strengths:   []string{"Creativity", "Communication", "Optimism", "Artistic talent"},
		Challenges:  []string{"Scattered energy", "Superficiality", "Mood swings"},
		LifePurpose: "To inspire others through creative self-expression and joy.",
	},
	4: {
		Title:       "The Builder",
		Emoji:       "🏗️",
		Traits:      []string{"Practical", "Hardworking", "Stable", "Reliable"},
		Description: "You are the foundation builder of society. Order, stability, and hard work define your approach.",
		Strengths:   []string{"Organization", "Discipline", "Loyalty", "Practicality"},
		Challenges:  []string{"Rigidity", "Stubbornness", "Workaholic tendencies"},
		LifePurpose: "To create lasting structures and systems that benefit others.",
	},
	5: {
		Title:       "The Freedom Seeker",
		Emoji:       "🌊",
		Traits:      []string{"Adventurous", "Versatile", "Dynamic", "Free-spirited"},
		Description: "You crave freedom and adventure. Change is your constant companion, bringing dynamic energy.",
		Strengths:   []string{"Adaptability", "Curiosity", "Resourcefulness", "Versatility"},
		Challenges:  []string{"Restlessness", "Inconsistency", "Excess"},
		LifePurpose: "To experience life fully and help others embrace positive change.",
	},
	6: {
		Title:       "The Nurturer",
		Emoji:       "💐",
		Traits:      []string{"Caring", "Responsible", "Protective", "Harmonious"},
		Description: "You are the cosmic parent. Love, family, and responsibility are central to your being.",
		Strengths:   []string{"Compassion", "Responsibility", "Healing", "Domestic harmony"},
		Challenges:  []string{"Self-sacrifice", "Perfectionism", "Over-protectiveness"},
		LifePurpose: "To nurture and heal others while creating harmony in home and community.",
	},
	7: {
		Title:       "The Seeker",
		Emoji:       "🔮",
		Traits:      []string{"Analytical", "Spiritual", "Introspective", "Wise"},
		Description: "You are the truth seeker. Spirituality, knowledge, and inner wisdom guide your path.",
		Strengths:   []string{"Wisdom", "Intuition", "Analysis", "Spiritual depth"},
		Challenges:  []string{"Isolation", "Skepticism", "Aloofness"},
		LifePurpose: "To seek spiritual truth and share wisdom with others.",
	},
	8: {
		Title:       "The Powerhouse",
		Emoji:       "💎",
		Traits:      []string{"Ambitious", "Authoritative", "Successful", "Material"},
		Description: "You are meant for abundance. Power, success, and material achievement are your destiny.",
		Strengths:   []string{"Business acumen", "Authority", "Achievement", "Manifestation"},
		Challenges:  []string{"Materialism", "Workaholism", "Power struggles"},
		LifePurpose: "To achieve material success and use power responsibly for the greater good.",
	},
	9: {
		Title:       "The Humanitarian",
		Emoji:       "🌍",
		Traits:      []string{"Compassionate", "Generous", "Idealistic", "Creative"},
		Description: "You are here to serve humanity. Universal love and compassion define your soul mission.",
		Strengths:   []string{"Compassion", "Wisdom", "Creativity", "Generosity"},
		Challenges:  []string{"Detachment", "Martyrdom", "Being too idealistic"},
		LifePurpose: "To serve humanity and bring healing on a global scale.",
	},
	11: {
		Title:       "The Intuitive",
		Emoji:       "✨",
		Traits:      []string{"Visionary", "Spiritual", "Inspiring", "Sensitive"},
		Description: "Master Number. You are a spiritual messenger with heightened intuition and psychic gifts.",
		Strengths:   []string{"Inspiration", "Spiritual insight", "Leadership", "Healing"},
		Challenges:  []string{"Anxiety", "Self-doubt", "Nervous energy"},
		LifePurpose: "To inspire and illuminate others through spiritual vision.",
	},
	22: {
		Title:       "The Master Builder",
		Emoji:       "🏛️",
		Traits:      []string{"Visionary", "Practical", "Ambitious", "Powerful"},
		Description: "Master Number. You can turn the grandest spiritual visions into practical reality.",
		Strengths:   []string{"Vision", "Practicality", "Leadership", "Global impact"},
		Challenges:  []string{"Overwhelm", "Self-pressure", "Unrealistic expectations"},
		LifePurpose: "To build structures and systems that benefit humanity on a large scale.",
	},
	33: {
		Title:       "The Master Teacher",
		Emoji:       "🌟",
		Traits:      []string{"Nurturing", "Spiritual", "Healing", "Selfless"},
		Description: "Master Number. You are a beacon of light and unconditional love for humanity.",
		Strengths:   []string{"Healing", "Teaching", "Compassion", "Unconditional love"},
		Challenges:  []string{"Burnout", "Over-giving", "Martyrdom"},
		LifePurpose: "To teach, heal, and uplift humanity through unconditional love.",
	},
}

// lifePathMeaningFor は該当する解釈を返す。未定義の数は1にフォールバックする。
func lifePathMeaningFor(n int) LifePathMeaning {
	if m, ok := lifePathMeanings[n]; ok {
		return m
	}
	return lifePathMeanings[1]
}

// personalDayMeaningFor は該当する解釈を返す。
// マスターナンバー（11/22/33）の日は定義がないため1にフォールバックする。
func personalDayMeaningFor(n int) PersonalDayMeaning {
	if m, ok := personalDayMeanings[n]; ok {
		return m
	}
	return personalDayMeanings[1]
}
