// Package model はドメインモデルを定義する。
package model

import "time"

// JournalStatus はジャーナルエントリの進行状態を表す。
type JournalStatus string

const (
	// JournalStatusPending は未着手状態。
	JournalStatusPending JournalStatus = "pending"
	// JournalStatusInProgress は取り組み中状態。
	JournalStatusInProgress JournalStatus = "in_progress"
	// JournalStatusManifested は実現済み状態。
	JournalStatusManifested JournalStatus = "manifested"
)

// ValidJournalStatus はステータス文字列が定義済みかを検証する。
func ValidJournalStatus(s string) bool {
	switch JournalStatus(s) {
	case JournalStatusPending, JournalStatusInProgress, JournalStatusManifested:
		return true
	}
	return false
}

// JournalEntry はユーザーの意図設定ジャーナルを表す。
type JournalEntry struct {
	ID        string
	UserID    string
	Intention string // 必須、最大1000文字、サニタイズ済みプレーンテキスト
	Gratitude *string
	Status    JournalStatus
	Category  string // デフォルト "general"
	CreatedAt time.Time
	UpdatedAt time.Time
}
