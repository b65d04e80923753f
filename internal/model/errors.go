// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resource, external, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    = "ACCOUNT_DISABLED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeBirthDateRequired  = "BIRTH_DATE_REQUIRED"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeEntryNotFound      = "ENTRY_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeIntentionRequired  = "INTENTION_REQUIRED"
	ErrCodeMessageRequired    = "MESSAGE_REQUIRED"
	ErrCodeFieldTooLong       = "FIELD_TOO_LONG"
	ErrCodeInvalidTimeFormat  = "INVALID_TIME_FORMAT"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeInvalidSign        = "INVALID_SIGN"
	ErrCodeInvalidDay         = "INVALID_DAY"
	ErrCodeCardNotFound       = "CARD_NOT_FOUND"
	ErrCodePremiumRequired    = "PREMIUM_REQUIRED"
	ErrCodeQueryTooShort      = "QUERY_TOO_SHORT"
	ErrCodeGeocodingFailed    = "GEOCODING_FAILED"
	ErrCodeChartFailed        = "CHART_FAILED"
)

// NewEmailTakenError は登録済みメールアドレスエラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "Email already registered",
		Category: "validation",
		Action:   "Sign in instead, or use a different email address.",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メール未登録とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid email or password",
		Category: "auth",
		Action:   "Check your email and password and try again.",
	}
}

// NewAccountDisabledError は無効化済みアカウントエラーを生成する。
func NewAccountDisabledError() *APIError {
	return &APIError{
		Code:     ErrCodeAccountDisabled,
		Message:  "Account is disabled",
		Category: "auth",
		Action:   "Contact support to reactivate your account.",
	}
}

// NewInvalidTokenError はトークン検証失敗エラーを生成する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "Invalid or expired token",
		Category: "auth",
		Action:   "Sign in again to obtain a new token.",
	}
}

// NewBirthDateRequiredError は出生日未設定エラーを生成する。
func NewBirthDateRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeBirthDateRequired,
		Message:  "Birth date is required",
		Category: "validation",
		Action:   "Add your birth date in profile settings.",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "auth",
		Action:   "Sign in again.",
	}
}

// NewEntryNotFoundError はジャーナルエントリ未検出エラーを生成する。
// 他ユーザーのエントリへのアクセスも同じエラーになる。
func NewEntryNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeEntryNotFound,
		Message:  "Entry not found",
		Category: "resource",
		Action:   "Check the entry and try again.",
	}
}

// NewInvalidStatusError は無効なジャーナルステータスエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("Invalid status: %s", status),
		Category: "validation",
		Action:   "Use one of: pending, in_progress, manifested.",
	}
}

// NewIntentionRequiredError は意図テキスト未入力エラーを生成する。
// サニタイズ後に空になった入力もこのエラーになる。
func NewIntentionRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeIntentionRequired,
		Message:  "Intention is required",
		Category: "validation",
		Action:   "Write your intention and try again.",
	}
}

// NewMessageRequiredError はチャットメッセージ未入力エラーを生成する。
func NewMessageRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeMessageRequired,
		Message:  "Message is required",
		Category: "validation",
		Action:   "Type a message and try again.",
	}
}

// NewFieldTooLongError は文字数超過エラーを生成する。
func NewFieldTooLongError(field string, max int) *APIError {
	return &APIError{
		Code:     ErrCodeFieldTooLong,
		Message:  fmt.Sprintf("%s must be at most %d characters", field, max),
		Category: "validation",
		Action:   "Shorten the text and try again.",
	}
}

// NewInvalidTimeFormatError はHH:MM形式でない時刻入力エラーを生成する。
func NewInvalidTimeFormatError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTimeFormat,
		Message:  fmt.Sprintf("%s must be in HH:MM format", field),
		Category: "validation",
		Action:   "Use 24-hour HH:MM format, e.g. 08:30.",
	}
}

// NewInvalidDateError はカレンダー上存在しない日付指定エラーを生成する。
func NewInvalidDateError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  "Invalid date",
		Category: "validation",
		Action:   "Use a valid calendar date.",
	}
}

// NewInvalidSignError は未知の星座名エラーを生成する。
func NewInvalidSignError(sign string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSign,
		Message:  fmt.Sprintf("Unknown zodiac sign: %s", sign),
		Category: "validation",
		Action:   "Use one of the twelve zodiac sign names, e.g. aries.",
	}
}

// NewInvalidDayError は無効な日指定エラーを生成する。
func NewInvalidDayError(day string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDay,
		Message:  fmt.Sprintf("Invalid day: %s", day),
		Category: "validation",
		Action:   "Use one of: today, tomorrow, yesterday.",
	}
}

// NewCardNotFoundError はタロットカード未検出エラーを生成する。
func NewCardNotFoundError(cardID int) *APIError {
	return &APIError{
		Code:     ErrCodeCardNotFound,
		Message:  fmt.Sprintf("Card not found: %d", cardID),
		Category: "resource",
		Action:   "Card IDs range from 0 to 21 (Major Arcana).",
	}
}

// NewPremiumRequiredError はプレミアム限定機能エラーを生成する。
func NewPremiumRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodePremiumRequired,
		Message:  "Premium subscription required",
		Category: "auth",
		Action:   "Upgrade to premium to use this feature.",
	}
}

// NewQueryTooShortError は検索クエリが短すぎる場合のエラーを生成する。
func NewQueryTooShortError() *APIError {
	return &APIError{
		Code:     ErrCodeQueryTooShort,
		Message:  "Query must be at least 2 characters",
		Category: "validation",
		Action:   "Type at least two characters of the place name.",
	}
}

// NewGeocodingFailedError は地名検索の上流障害エラーを生成する。
func NewGeocodingFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeGeocodingFailed,
		Message:  "Location search is temporarily unavailable",
		Category: "external",
		Action:   "Try again in a few moments.",
	}
}

// NewChartFailedError はチャート計算失敗エラーを生成する。
// アセンダント計算の失敗はチャート全体の失敗として扱う。
func NewChartFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeChartFailed,
		Message:  "Natal chart computation failed",
		Category: "system",
		Action:   "Try again in a few moments.",
	}
}
