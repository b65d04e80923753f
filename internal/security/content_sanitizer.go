// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザー入力テキストをサニタイズし、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// bluemondayライブラリのStrictPolicyで全てのHTMLタグを除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はユーザー入力テキストのサニタイズ機能のインターフェースを定義する。
// ジャーナルエントリ、チャットメッセージ、表示名の保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力テキストから全てのHTMLタグを除去してプレーンテキストを返す。
	// scriptタグはタグ内のコンテンツごと除去される。
	// タグを含まない通常のテキストは変更されずそのまま返る。
	// 前後の空白はトリムされる。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// モバイルアプリからの入力はプレーンテキストのみを想定しているため、
// 許可タグなしのStrictPolicyを使用する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストから全てのHTMLタグを除去してプレーンテキストを返す。
// StrictPolicyはテキストをHTMLエンティティにエスケープして返すため、
// プレーンテキストのフィールドとして保存できるようアンエスケープする。
func (s *contentSanitizer) Sanitize(raw string) string {
	stripped := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
