package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/starman/internal/model"
)

// PostgresJournalRepoはJournalRepositoryインターフェースを満たすことを検証
func TestPostgresJournalRepo_ImplementsInterface(t *testing.T) {
	var _ JournalRepository = (*PostgresJournalRepo)(nil)
}

// NewPostgresJournalRepoが正しく初期化されることを検証
func TestNewPostgresJournalRepo_Initializes(t *testing.T) {
	repo := NewPostgresJournalRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// JournalEntryモデルのフィールドが正しく構築されることを検証
func TestPostgresJournalRepo_EntryModel_Fields(t *testing.T) {
	now := time.Now()
	entry := &model.JournalEntry{
		ID:        "entry-id-1",
		UserID:    "user-id-1",
		Title:     "新月の願いごと",
		Content:   "今月は健康を最優先にする",
		Status:    model.JournalStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if entry.UserID != "user-id-1" {
		t.Errorf("entry.UserID = %q, want %q", entry.UserID, "user-id-1")
	}
	if entry.Status != model.JournalStatusPending {
		t.Errorf("entry.Status = %q, want %q", entry.Status, model.JournalStatusPending)
	}
}

// ステータス定数の値が正しいことを検証
func TestJournalStatusValues(t *testing.T) {
	if model.JournalStatusPending != "pending" {
		t.Errorf("JournalStatusPending = %q, want %q", model.JournalStatusPending, "pending")
	}
	if model.JournalStatusInProgress != "in_progress" {
		t.Errorf("JournalStatusInProgress = %q, want %q", model.JournalStatusInProgress, "in_progress")
	}
	if model.JournalStatusManifested != "manifested" {
		t.Errorf("JournalStatusManifested = %q, want %q", model.JournalStatusManifested, "manifested")
	}
}

// ValidJournalStatusが既知の値のみ受け付けることを検証
func TestValidJournalStatus(t *testing.T) {
	valid := []string{"pending", "in_progress", "manifested"}
	for _, s := range valid {
		if !model.ValidJournalStatus(s) {
			t.Errorf("ValidJournalStatus(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "done", "PENDING", "archived"}
	for _, s := range invalid {
		if model.ValidJournalStatus(s) {
			t.Errorf("ValidJournalStatus(%q) = true, want false", s)
		}
	}
}
