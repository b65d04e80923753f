package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン種別。typeクレームに入り、アクセス/リフレッシュの取り違えを防ぐ。
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair はアクセストークンとリフレッシュトークンの組を表す。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService はHS256署名のJWTを発行・検証する。
// トークンはステートレスで、サーバー側には保持しない。
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService はTokenServiceを生成する。
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueTokenPair はユーザーID向けのアクセス/リフレッシュトークンを発行する。
func (s *TokenService) IssueTokenPair(userID string) (*TokenPair, error) {
	access, err := s.sign(userID, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(userID, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken はアクセストークンを検証し、ユーザーIDを返す。
func (s *TokenService) VerifyAccessToken(tokenString string) (string, error) {
	return s.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken はリフレッシュトークンを検証し、ユーザーIDを返す。
// アクセストークンを渡した場合もエラーになる。
func (s *TokenService) VerifyRefreshToken(tokenString string) (string, error) {
	return s.verify(tokenString, tokenTypeRefresh)
}

// sign は指定種別のトークンを署名付きで生成する。
func (s *TokenService) sign(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// verify はトークンの署名・有効期限・種別を検証する。
func (s *TokenService) verify(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return "", fmt.Errorf("invalid token type: want %s", wantType)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid token: 'sub' claim missing or not a string")
	}

	return sub, nil
}
