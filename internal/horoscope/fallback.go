package horoscope

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// fallbackMessages は外部API不通時のデイリーメッセージのプール。
var fallbackMessages = []string{
	"The stars align in your favor today. Trust your instincts and take bold action.",
	"A period of reflection begins. Take time to assess your goals and realign your path.",
	"New opportunities emerge on the horizon. Stay open to unexpected possibilities.",
	"Your creative energy peaks today. Channel it into your passion projects.",
	"Communication flows smoothly. It's an ideal day for important conversations.",
	"Focus on self-care and inner peace. Your well-being is the foundation of success.",
	"Financial matters require attention. Review your resources and plan wisely.",
	"Love and relationships take center stage. Express your feelings openly.",
	"Your determination will overcome any obstacles. Stay focused on your goals.",
	"A surprise encounter may change your perspective. Embrace new connections.",
}

// moods はデイリーホロスコープのムード候補。
var moods = []string{"Energetic", "Reflective", "Adventurous", "Creative", "Peaceful", "Ambitious"}

// signSeed は星座IDから安定したシード成分を作る。
// 同じ星座は常に同じ値になる（プロセスを跨いでも不変）。
func signSeed(signID string) int64 {
	h := fnv.New32a()
	h.Write([]byte(signID))
	return int64(h.Sum32())
}

// dateOrdinal は日付を通算日に変換する（シード成分）。
func dateOrdinal(t time.Time) int64 {
	return t.UTC().Unix() / 86400
}

// generateFallback は日付と星座から決定論的にホロスコープを生成する。
// 同じ日・同じ星座なら必ず同じ結果になり、キャッシュと矛盾しない。
func generateFallback(signID string, date time.Time) *External {
	r := rand.New(rand.NewSource(dateOrdinal(date) + signSeed(signID)))

	content := fallbackMessages[r.Intn(len(fallbackMessages))]
	mood := moods[r.Intn(len(moods))]

	hour := 1 + r.Intn(12)
	meridiem := "AM"
	if r.Float64() >= 0.5 {
		meridiem = "PM"
	}

	return &External{
		Content:     content,
		Mood:        mood,
		LuckyTime:   fmt.Sprintf("%d:00 %s", hour, meridiem),
		LuckyNumber: fmt.Sprintf("%d", 1+r.Intn(99)),
	}
}

// dailyRating は3〜5の評価を日付と星座から決定論的に導く。
func dailyRating(signID string, date time.Time) int {
	r := rand.New(rand.NewSource(dateOrdinal(date) + signSeed(signID) + 1))
	return 3 + r.Intn(3)
}
