// Package model はドメインモデルを定義する。
package model

import "time"

// TarotPosition はスプレッド内でのカードの位置を表す。
type TarotPosition string

const (
	// TarotPositionSingle はデイリー1枚引き。
	TarotPositionSingle TarotPosition = "single"
	// TarotPositionPast は3枚スプレッドの過去。
	TarotPositionPast TarotPosition = "past"
	// TarotPositionPresent は3枚スプレッドの現在。
	TarotPositionPresent TarotPosition = "present"
	// TarotPositionFuture は3枚スプレッドの未来。
	TarotPositionFuture TarotPosition = "future"
)

// TarotDraw はユーザーが引いたカードの履歴レコードを表す。
// ReadingDateは引いた日の暦日（UTC）で、デイリー引きの1日1回制約に使う。
type TarotDraw struct {
	ID          string
	UserID      string
	CardID      int
	IsReversed  bool
	Position    TarotPosition
	ReadingDate time.Time // 日付のみ有効
	CreatedAt   time.Time
}
