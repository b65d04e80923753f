// Package tarot は大アルカナのデッキとデイリー/スプレッド引きを提供する。
package tarot

import "fmt"

// imageBaseURL はライダー版タロットの公開画像CDN。
const imageBaseURL = "https://www.sacred-texts.com/tarot/pkt/img"

// Meaning は1つの向き（正位置/逆位置）でのカードの解釈を表す。
type Meaning struct {
	Meaning       string   `json:"meaning"`
	DailyGuidance string   `json:"daily_guidance"`
	Keywords      []string `json:"keywords"`
}

// Card は大アルカナ1枚のメタデータと両向きの解釈を表す。
// IDはアルカナ番号（0〜21）に一致する。
type Card struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	ImageURL string  `json:"image_url"`
	Upright  Meaning `json:"upright"`
	Reversed Meaning `json:"reversed"`
}

// MeaningFor は向きに応じた解釈を返す。
func (c *Card) MeaningFor(reversed bool) Meaning {
	if reversed {
		return c.Reversed
	}
	return c.Upright
}

// CardByID はアルカナ番号からカードを取得する。範囲外はnilを返す。
func CardByID(id int) *Card {
	if id < 0 || id >= len(MajorArcana) {
		return nil
	}
	return &MajorArcana[id]
}

func init() {
	for i := range MajorArcana {
		MajorArcana[i].ImageURL = fmt.Sprintf("%s/ar%02d.jpg", imageBaseURL, MajorArcana[i].ID)
	}
}

// MajorArcana は大アルカナ22枚をアルカナ番号順に保持する。
var MajorArcana = []Card{
	{
		ID:    0,
		Name:  "The Fool",
		Image: "🃏",
		Upright: Meaning{
			Meaning:       "New beginnings, innocence, spontaneity, and a free spirit. Today invites you to take a leap of faith and embrace the unknown with childlike wonder.",
			DailyGuidance: "Trust your instincts and don't be afraid to start something new. The universe supports fresh starts today.",
			Keywords:      []string{"new beginnings", "innocence", "adventure", "potential", "spontaneity"},
		},
		Reversed: Meaning{
			Meaning:       "Recklessness, risk-taking, or holding back from new experiences. You may be acting without thinking or letting fear prevent you from taking necessary steps.",
			DailyGuidance: "Consider whether you're being too impulsive or too cautious. Find balance between spontaneity and wisdom.",
			Keywords:      []string{"recklessness", "fear", "hesitation", "naivety", "carelessness"},
		},
	},
	{
		ID:    1,
		Name:  "The Magician",
		Image: "🧙",
		Upright: Meaning{
			Meaning:       "Manifestation, resourcefulness, and inspired action. You have all the tools you need to succeed. Channel your willpower to create your reality.",
			DailyGuidance: "Focus your intention and take action. You have the power to manifest your desires today.",
			Keywords:      []string{"manifestation", "willpower", "creation", "skill", "concentration"},
		},
		Reversed: Meaning{
			Meaning:       "Manipulation, untapped potential, or deception. You may not be using your talents fully, or someone may not be being honest.",
			DailyGuidance: "Examine your motives and ensure you're using your abilities ethically. Watch for deception.",
			Keywords:      []string{"manipulation", "tricks", "unused potential", "cunning", "deceit"},
		},
	},
	{
		ID:    2,
		Name:  "The High Priestess",
		Image: "🌙",
		Upright: Meaning{
			Meaning:       "Intuition, mystery, and inner knowledge. Trust your subconscious wisdom and pay attention to dreams and synchronicities.",
			DailyGuidance: "Listen to your inner voice today. Answers come through quiet reflection, not action.",
			Keywords:      []string{"intuition", "mystery", "subconscious", "wisdom", "spirituality"},
		},
		Reversed: Meaning{
			Meaning:       "Secrets, disconnection from intuition, or hidden agendas. You may be ignoring your inner voice or something is being concealed.",
			DailyGuidance: "Reconnect with your intuition. If something feels off, investigate before proceeding.",
			Keywords:      []string{"secrets", "silence", "withdrawal", "hidden truths", "blocked intuition"},
		},
	},
	{
		ID:    3,
		Name:  "The Empress",
		Image: "👑",
		Upright: Meaning{
			Meaning:       "Abundance, nurturing, and creativity. Embrace beauty, comfort, and the creative flow. Nature and self-care are especially important.",
			DailyGuidance: "Nurture yourself and others. Creative projects flourish. Connect with nature.",
			Keywords:      []string{"abundance", "fertility", "nurturing", "creativity", "beauty"},
		},
		Reversed: Meaning{
			Meaning:       "Dependence, smothering, or creative block. You may be neglecting self-care or being overprotective.",
			DailyGuidance: "Check if you're giving too much or too little care to yourself or others. Find balance.",
			Keywords:      []string{"dependence", "emptiness", "creative block", "overprotection", "neglect"},
		},
	},
	{
		ID:    4,
		Name:  "The Emperor",
		Image: "🏛️",
		Upright: Meaning{
			Meaning:       "Authority, structure, and leadership. Take control of your situation with discipline and strategic thinking.",
			DailyGuidance: "Lead with confidence. Structure and organization help you achieve your goals today.",
			Keywords:      []string{"authority", "leadership", "structure", "control", "discipline"},
		},
		Reversed: Meaning{
			Meaning:       "Tyranny, rigidity, or lack of discipline. You may be too controlling or struggling with authority.",
			DailyGuidance: "Examine your relationship with power. Are you too rigid or too scattered?",
			Keywords:      []string{"domination", "rigidity", "stubbornness", "powerlessness", "control issues"},
		},
	},
	{
		ID:    5,
		Name:  "The Hierophant",
		Image: "📿",
		Upright: Meaning{
			Meaning:       "Tradition, spiritual wisdom, and established institutions. Seek guidance from mentors or traditional practices.",
			DailyGuidance: "Honor traditions and seek wisdom from established sources. Teaching and learning are favored.",
			Keywords:      []string{"tradition", "conformity", "religion", "beliefs", "guidance"},
		},
		Reversed: Meaning{
			Meaning:       "Rebellion, nonconformity, or challenging traditions. You may need to find your own spiritual path.",
			DailyGuidance: "Question rules that don't serve you. Your personal beliefs matter more than conformity.",
			Keywords:      []string{"rebellion", "nonconformity", "personal beliefs", "freedom", "questioning"},
		},
	},
	{
		ID:    6,
		Name:  "The Lovers",
		Image: "💕",
		Upright: Meaning{
			Meaning:       "Love, harmony, and meaningful connections. Important choices in relationships align your values with your heart.",
			DailyGuidance: "Express love openly. Make choices that honor your true values and deepen connections.",
			Keywords:      []string{"love", "harmony", "choices", "values", "partnership"},
		},
		Reversed: Meaning{
			Meaning:       "Disharmony, imbalance, or misaligned values. Relationships may face challenges or choices feel conflicted.",
			DailyGuidance: "Examine where your actions don't match your values. Seek to restore harmony.",
			Keywords:      []string{"disharmony", "imbalance", "miscommunication", "detachment", "conflict"},
		},
	},
	{
		ID:    7,
		Name:  "The Chariot",
		Image: "⚔️",
		Upright: Meaning{
			Meaning:       "Determination, willpower, and victory. Move forward with confidence—success comes through focused effort.",
			DailyGuidance: "Take control and push forward. Obstacles can be overcome with determination today.",
			Keywords:      []string{"determination", "control", "success", "ambition", "willpower"},
		},
		Reversed: Meaning{
			Meaning:       "Lack of direction, aggression, or obstacles. You may feel stuck or be forcing situations inappropriately.",
			DailyGuidance: "Don't force progress. If you feel blocked, reassess your direction rather than pushing harder.",
			Keywords:      []string{"obstacles", "lack of control", "aggression", "defeat", "aimlessness"},
		},
	},
	{
		ID:    8,
		Name:  "Strength",
		Image: "🦁",
		Upright: Meaning{
			Meaning:       "Inner strength, courage, and compassion. True power comes from patience and gentle perseverance, not force.",
			DailyGuidance: "Lead with compassion. Your quiet strength accomplishes more than aggression.",
			Keywords:      []string{"courage", "patience", "compassion", "influence", "inner strength"},
		},
		Reversed: Meaning{
			Meaning:       "Self-doubt, weakness, or raw emotions. You may be struggling with confidence or letting fears control you.",
			DailyGuidance: "Reconnect with your inner power. Don't let doubt or anxiety overwhelm you.",
			Keywords:      []string{"self-doubt", "weakness", "insecurity", "low energy", "vulnerability"},
		},
	},
	{
		ID:    9,
		Name:  "The Hermit",
		Image: "🏔️",
		Upright: Meaning{
			Meaning:       "Soul-searching, introspection, and inner guidance. Time alone brings wisdom and clarity.",
			DailyGuidance: "Take time for solitude and reflection. The answers you seek are within.",
			Keywords:      []string{"introspection", "solitude", "guidance", "wisdom", "inner search"},
		},
		Reversed: Meaning{
			Meaning:       "Isolation, loneliness, or withdrawal. You may be isolating too much or avoiding necessary self-reflection.",
			DailyGuidance: "Balance solitude with connection. Don't use isolation as escape.",
			Keywords:      []string{"isolation", "loneliness", "withdrawal", "paranoia", "antisocial"},
		},
	},
	{
		ID:    10,
		Name:  "Wheel of Fortune",
		Image: "🎡",
		Upright: Meaning{
			Meaning:       "Change, cycles, and fate. The wheel turns in your favor—embrace change and trust the timing.",
			DailyGuidance: "Change is coming. Go with the flow and trust that fortune favors you today.",
			Keywords:      []string{"change", "cycles", "destiny", "luck", "turning point"},
		},
		Reversed: Meaning{
			Meaning:       "Bad luck, resistance to change, or broken cycles. You may be fighting inevitable change.",
			DailyGuidance: "Accept what you cannot control. Resistance to natural change creates more struggle.",
			Keywords:      []string{"resistance", "bad luck", "setbacks", "external forces", "unwelcome change"},
		},
	},
	{
		ID:    11,
		Name:  "Justice",
		Image: "⚖️",
		Upright: Meaning{
			Meaning:       "Fairness, truth, and cause and effect. Act with integrity—karma is active and justice prevails.",
			DailyGuidance: "Act fairly and honestly. Legal matters and decisions favor truth and balance.",
			Keywords:      []string{"fairness", "truth", "law", "karma", "accountability"},
		},
		Reversed: Meaning{
			Meaning:       "Injustice, dishonesty, or avoiding accountability. There may be unfairness or lack of balance.",
			DailyGuidance: "Take responsibility for your actions. Watch for unfair treatment or dishonesty.",
			Keywords:      []string{"injustice", "dishonesty", "unfairness", "blame", "corruption"},
		},
	},
	{
		ID:    12,
		Name:  "The Hanged Man",
		Image: "🙃",
		Upright: Meaning{
			Meaning:       "Pause, surrender, and new perspectives. Suspension leads to enlightenment—let go and see differently.",
			DailyGuidance: "Pause and see your situation from a new angle. Surrender control to gain insight.",
			Keywords:      []string{"pause", "surrender", "sacrifice", "perspective", "letting go"},
		},
		Reversed: Meaning{
			Meaning:       "Stalling, resistance, or unnecessary sacrifice. You may be stuck in indecision or martyrdom.",
			DailyGuidance: "Stop sacrificing needlessly. Make a decision rather than remaining in limbo.",
			Keywords:      []string{"stalling", "resistance", "indecision", "martyrdom", "delay"},
		},
	},
	{
		ID:    13,
		Name:  "Death",
		Image: "🦋",
		Upright: Meaning{
			Meaning:       "Endings, transformation, and transition. Something must end for the new to begin—embrace the transformation.",
			DailyGuidance: "Release what no longer serves you. Transformation brings renewal and growth.",
			Keywords:      []string{"endings", "transformation", "transition", "change", "release"},
		},
		Reversed: Meaning{
			Meaning:       "Resistance to change, stagnation, or fear of endings. You may be holding onto what needs to go.",
			DailyGuidance: "Stop resisting inevitable change. Holding on creates more pain than letting go.",
			Keywords:      []string{"resistance", "stagnation", "fear of change", "decay", "immobility"},
		},
	},
	{
		ID:    14,
		Name:  "Temperance",
		Image: "⚗️",
		Upright: Meaning{
			Meaning:       "Balance, moderation, and patience. Blend different aspects of your life harmoniously.",
			DailyGuidance: "Practice moderation and patience. Balanced approaches succeed today.",
			Keywords:      []string{"balance", "moderation", "patience", "purpose", "harmony"},
		},
		Reversed: Meaning{
			Meaning:       "Imbalance, excess, or lack of patience. You may be going to extremes or lacking self-control.",
			DailyGuidance: "Look for where you're out of balance. Slow down and find your center.",
			Keywords:      []string{"imbalance", "excess", "lack of vision", "discord", "overindulgence"},
		},
	},
	{
		ID:    15,
		Name:  "The Devil",
		Image: "⛓️",
		Upright: Meaning{
			Meaning:       "Shadow self, attachment, and restriction. Examine what binds you—addictions, unhealthy patterns, or limiting beliefs.",
			DailyGuidance: "Face your shadows honestly. You have more power to break free than you realize.",
			Keywords:      []string{"shadow self", "attachment", "addiction", "restriction", "materialism"},
		},
		Reversed: Meaning{
			Meaning:       "Breaking free, release, and reclaiming power. You're ready to let go of what has held you captive.",
			DailyGuidance: "You're breaking free from restrictions. Celebrate your liberation and keep moving forward.",
			Keywords:      []string{"release", "freedom", "independence", "detachment", "reclaiming power"},
		},
	},
	{
		ID:    16,
		Name:  "The Tower",
		Image: "🗼",
		Upright: Meaning{
			Meaning:       "Sudden change, upheaval, and revelation. Structures built on false foundations crumble—embrace the truth.",
			DailyGuidance: "Expect the unexpected. Sudden changes, though jarring, clear the way for rebuilding stronger.",
			Keywords:      []string{"sudden change", "upheaval", "revelation", "chaos", "awakening"},
		},
		Reversed: Meaning{
			Meaning:       "Avoiding disaster, fear of change, or delayed upheaval. You may be resisting necessary destruction.",
			DailyGuidance: "Don't prolong inevitable change. Better to face disruption now than disaster later.",
			Keywords:      []string{"avoiding disaster", "fear of change", "resistance", "prolonged pain", "delayed"},
		},
	},
	{
		ID:    17,
		Name:  "The Star",
		Image: "⭐",
		Upright: Meaning{
			Meaning:       "Hope, inspiration, and serenity. After difficulty comes healing—trust in the universe's guidance.",
			DailyGuidance: "Have faith and stay hopeful. Inspiration and healing flow to you today.",
			Keywords:      []string{"hope", "faith", "inspiration", "renewal", "serenity"},
		},
		Reversed: Meaning{
			Meaning:       "Despair, lack of faith, or disconnection. You may have lost hope or feel spiritually empty.",
			DailyGuidance: "Reconnect with hope. Even small steps toward faith can restore your spirit.",
			Keywords:      []string{"despair", "lack of faith", "discouragement", "disconnection", "hopelessness"},
		},
	},
	{
		ID:    18,
		Name:  "The Moon",
		Image: "🌕",
		Upright: Meaning{
			Meaning:       "Illusion, fear, and the subconscious. Not everything is as it seems—trust your intuition through uncertainty.",
			DailyGuidance: "Navigate uncertainty with intuition. Dreams and emotions carry important messages.",
			Keywords:      []string{"illusion", "fear", "subconscious", "intuition", "uncertainty"},
		},
		Reversed: Meaning{
			Meaning:       "Release of fear, truth revealed, or overcoming anxiety. Confusion clears as truth emerges.",
			DailyGuidance: "Confusion lifts and fears fade. Trust the clarity that's emerging.",
			Keywords:      []string{"clarity", "understanding", "release of fear", "truth", "recovery"},
		},
	},
	{
		ID:    19,
		Name:  "The Sun",
		Image: "☀️",
		Upright: Meaning{
			Meaning:       "Joy, success, and vitality. Bask in positivity—everything shines bright with optimism and achievement.",
			DailyGuidance: "Embrace joy and success. This is an excellent day for happiness and celebration.",
			Keywords:      []string{"joy", "success", "vitality", "positivity", "optimism"},
		},
		Reversed: Meaning{
			Meaning:       "Temporary setbacks, lack of enthusiasm, or delayed success. The light dims but doesn't disappear.",
			DailyGuidance: "Don't let temporary clouds diminish your inner light. Success is delayed, not denied.",
			Keywords:      []string{"temporary depression", "lack of success", "sadness", "delays", "pessimism"},
		},
	},
	{
		ID:    20,
		Name:  "Judgement",
		Image: "📯",
		Upright: Meaning{
			Meaning:       "Reflection, reckoning, and awakening. A time of evaluation and answering a higher calling.",
			DailyGuidance: "Reflect on your journey and heed your calling. Major decisions bring transformation.",
			Keywords:      []string{"judgement", "rebirth", "inner calling", "reflection", "awakening"},
		},
		Reversed: Meaning{
			Meaning:       "Self-doubt, inner critic, or ignoring the call. You may be avoiding necessary self-evaluation.",
			DailyGuidance: "Don't ignore your inner calling. Silence the harsh critic and answer with courage.",
			Keywords:      []string{"self-doubt", "inner critic", "self-judgment", "refusal", "avoidance"},
		},
	},
	{
		ID:    21,
		Name:  "The World",
		Image: "🌍",
		Upright: Meaning{
			Meaning:       "Completion, achievement, and wholeness. A cycle completes successfully—celebrate your journey.",
			DailyGuidance: "Celebrate accomplishment and integration. You've achieved wholeness in an area of life.",
			Keywords:      []string{"completion", "achievement", "fulfillment", "wholeness", "travel"},
		},
		Reversed: Meaning{
			Meaning:       "Incompletion, lack of closure, or seeking personal closure. Something remains unfinished.",
			DailyGuidance: "Complete what's unfinished before starting new ventures. Closure brings freedom.",
			Keywords:      []string{"incompletion", "emptiness", "lack of achievement", "stagnation", "unfulfilled"},
		},
	},
}
