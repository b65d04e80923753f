package auth

import (
	"testing"
	"time"

	"github.com/hitoshi/starman/internal/middleware"
)

// TokenServiceがミドルウェアの検証インターフェースを満たすこと
var _ middleware.AccessTokenVerifier = (*TokenService)(nil)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret-key", 15*time.Minute, 720*time.Hour)
}

func TestIssueTokenPair_ReturnsBothTokens(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.IssueTokenPair("user-123")
	if err != nil {
		t.Fatalf("IssueTokenPair() error = %v", err)
	}

	if pair.AccessToken == "" {
		t.Error("expected non-empty access token")
	}
	if pair.RefreshToken == "" {
		t.Error("expected non-empty refresh token")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens should differ")
	}
}

func TestVerifyAccessToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.IssueTokenPair("user-456")
	if err != nil {
		t.Fatalf("IssueTokenPair() error = %v", err)
	}

	userID, err := svc.VerifyAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if userID != "user-456" {
		t.Errorf("userID = %q, want %q", userID, "user-456")
	}
}

func TestVerifyRefreshToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.IssueTokenPair("user-789")
	if err != nil {
		t.Fatalf("IssueTokenPair() error = %v", err)
	}

	userID, err := svc.VerifyRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefreshToken() error = %v", err)
	}
	if userID != "user-789" {
		t.Errorf("userID = %q, want %q", userID, "user-789")
	}
}

// アクセストークンをリフレッシュとして使えないこと（種別クレームの検証）
func TestVerifyRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestTokenService()

	pair, _ := svc.IssueTokenPair("user-123")

	_, err := svc.VerifyRefreshToken(pair.AccessToken)
	if err == nil {
		t.Fatal("expected error when access token is used as refresh token")
	}
}

func TestVerifyAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestTokenService()

	pair, _ := svc.IssueTokenPair("user-123")

	_, err := svc.VerifyAccessToken(pair.RefreshToken)
	if err == nil {
		t.Fatal("expected error when refresh token is used as access token")
	}
}

func TestVerifyAccessToken_ExpiredToken(t *testing.T) {
	// 有効期限が過去のトークンを発行する
	svc := NewTokenService("test-secret-key", -1*time.Hour, -1*time.Hour)

	pair, err := svc.IssueTokenPair("user-123")
	if err != nil {
		t.Fatalf("IssueTokenPair() error = %v", err)
	}

	_, err = svc.VerifyAccessToken(pair.AccessToken)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", 15*time.Minute, 720*time.Hour)
	verifier := NewTokenService("secret-b", 15*time.Minute, 720*time.Hour)

	pair, _ := issuer.IssueTokenPair("user-123")

	_, err := verifier.VerifyAccessToken(pair.AccessToken)
	if err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestVerifyAccessToken_GarbageInput(t *testing.T) {
	svc := newTestTokenService()

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.VerifyAccessToken(input); err == nil {
			t.Errorf("VerifyAccessToken(%q) expected error", input)
		}
	}
}
