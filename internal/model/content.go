// Package model はドメインモデルを定義する。
package model

import "time"

// ContentKind はdaily_contentテーブルに格納されるコンテンツの種別を表す。
type ContentKind string

const (
	// ContentKindHoroscope はデイリーホロスコープ。
	ContentKindHoroscope ContentKind = "horoscope"
	// ContentKindAffirmation はアファメーションのプール。
	ContentKindAffirmation ContentKind = "affirmation"
)

// DailyContent は日次で事前生成されるコンテンツの1レコードを表す。
// (ContentDate, Kind, Sign) の組で一意。Payloadは種別ごとのJSON。
// ワーカーが書き込み、APIプロセスはL1キャッシュミス時にここを読む。
type DailyContent struct {
	ID          string
	ContentDate time.Time // 日付のみ有効（UTC）
	Kind        ContentKind
	Sign        string
	Payload     []byte // JSONB
	CreatedAt   time.Time
}
