// Package subscription は課金プラン管理のドメインロジックを提供する。
//
// 購入処理自体はモバイルアプリ内のRevenueCat SDKが行い、
// サーバー側はWebhookで通知されるイベントをユーザーのプラン状態に反映する。
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/repository"
)

// RevenueCatのWebhookイベント種別。
const (
	EventInitialPurchase = "INITIAL_PURCHASE"
	EventRenewal         = "RENEWAL"
	EventUncancellation  = "UNCANCELLATION"
	EventProductChange   = "PRODUCT_CHANGE"
	EventCancellation    = "CANCELLATION"
	EventExpiration      = "EXPIRATION"
	EventBillingIssue    = "BILLING_ISSUE"
)

// defaultPremiumDuration はexpiration_at_msが欠けている場合の有効期間。
const defaultPremiumDuration = 30 * 24 * time.Hour

// WebhookEvent はRevenueCatから送信されるWebhookペイロード。
type WebhookEvent struct {
	Event      EventPayload `json:"event"`
	APIVersion string       `json:"api_version"`
}

// EventPayload はWebhookイベントの本体。
// RevenueCatのペイロードには他にも多数のフィールドがあるが、
// プラン状態の更新に必要なものだけを読む。
type EventPayload struct {
	Type           string `json:"type"`
	AppUserID      string `json:"app_user_id"`
	ProductID      string `json:"product_id"`
	ExpirationAtMS *int64 `json:"expiration_at_ms"`
}

// WebhookResult はWebhook処理の結果。
// 未知のユーザーや購読者ID欠落はエラーではなくignoredとして返す。
// RevenueCatは2xx以外のレスポンスを再送し続けるため。
type WebhookResult struct {
	Status    string `json:"status"`
	EventType string `json:"event_type,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Status は現在の課金プラン状態。
type Status struct {
	Tier      model.SubscriptionTier `json:"tier"`
	IsPremium bool                   `json:"is_premium"`
	ExpiresAt *time.Time             `json:"expires_at"`
	Platform  *string                `json:"platform"`
	ProductID *string                `json:"product_id"`
}

// Service は課金プラン管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Status はユーザーの課金プラン状態を返す。
func (s *Service) Status(user *model.User) Status {
	return Status{
		Tier:      user.SubscriptionTier,
		IsPremium: user.IsPremium(),
		ExpiresAt: user.SubscriptionExpiresAt,
		Platform:  user.SubscriptionPlatform,
		ProductID: user.SubscriptionProductID,
	}
}

// HandleWebhook はRevenueCatのWebhookイベントを処理してプラン状態を更新する。
//
// INITIAL_PURCHASE / RENEWAL / UNCANCELLATION / PRODUCT_CHANGE: premiumに昇格。
// EXPIRATION / BILLING_ISSUE: freeに降格。
// CANCELLATION: 何もしない（期限までpremiumのまま）。
func (s *Service) HandleWebhook(ctx context.Context, event WebhookEvent) (*WebhookResult, error) {
	subscriberID := event.Event.AppUserID
	if subscriberID == "" {
		return &WebhookResult{Status: "ignored", Reason: "no subscriber_id"}, nil
	}

	// revenuecat_idで検索し、見つからなければapp_user_idをユーザーIDとして扱う
	user, err := s.userRepo.FindByRevenueCatID(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの検索に失敗しました: %w", err)
	}
	if user == nil {
		user, err = s.userRepo.FindByID(ctx, subscriberID)
		if err != nil {
			return nil, fmt.Errorf("ユーザーの検索に失敗しました: %w", err)
		}
	}
	if user == nil {
		slog.Warn("Webhookの対象ユーザーが見つかりません",
			slog.String("app_user_id", subscriberID),
			slog.String("event_type", event.Event.Type),
		)
		return &WebhookResult{Status: "ignored", Reason: "user not found"}, nil
	}

	changed := false
	switch event.Event.Type {
	case EventInitialPurchase, EventRenewal, EventUncancellation, EventProductChange:
		s.activatePremium(user, event.Event)
		changed = true
	case EventExpiration, EventBillingIssue:
		user.SubscriptionTier = model.TierFree
		changed = true
	case EventCancellation:
		// 解約後も期限までは有効なまま
	default:
		slog.Info("未対応のWebhookイベントを無視します",
			slog.String("event_type", event.Event.Type),
		)
	}

	if changed {
		user.UpdatedAt = s.now().UTC()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("プラン状態を更新できませんでした: %w", err)
		}
		slog.Info("課金プラン状態を更新しました",
			slog.String("user_id", user.ID),
			slog.String("event_type", event.Event.Type),
			slog.String("tier", string(user.SubscriptionTier)),
		)
	}

	return &WebhookResult{Status: "ok", EventType: event.Event.Type}, nil
}

// activatePremium はイベント内容からpremium状態を組み立てる。
func (s *Service) activatePremium(user *model.User, payload EventPayload) {
	user.SubscriptionTier = model.TierPremium
	if payload.ProductID != "" {
		productID := payload.ProductID
		user.SubscriptionProductID = &productID
	}

	var expiresAt time.Time
	if payload.ExpirationAtMS != nil {
		expiresAt = time.UnixMilli(*payload.ExpirationAtMS).UTC()
	} else {
		expiresAt = s.now().UTC().Add(defaultPremiumDuration)
	}
	user.SubscriptionExpiresAt = &expiresAt
}

// Restore はRevenueCatの顧客IDをユーザーに紐付ける。
// 実際の購読状態の検証はSDK側で行われ、結果はWebhookで同期される。
func (s *Service) Restore(ctx context.Context, userID, revenueCatID, platform string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	user.RevenueCatID = &revenueCatID
	if platform != "" {
		user.SubscriptionPlatform = &platform
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("RevenueCat IDを紐付けできませんでした: %w", err)
	}
	return nil
}

// GrantPremium は開発環境用にpremiumを付与する。daysが0以下の場合は30日。
func (s *Service) GrantPremium(ctx context.Context, userID string, days int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	if days <= 0 {
		days = 30
	}
	expiresAt := s.now().UTC().AddDate(0, 0, days)
	platform := "test"

	user.SubscriptionTier = model.TierPremium
	user.SubscriptionExpiresAt = &expiresAt
	user.SubscriptionPlatform = &platform
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("premiumを付与できませんでした: %w", err)
	}
	return user, nil
}

// RevokePremium は開発環境用にpremiumを剥奪する。
func (s *Service) RevokePremium(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	user.SubscriptionTier = model.TierFree
	user.SubscriptionExpiresAt = nil
	user.SubscriptionPlatform = nil
	user.SubscriptionProductID = nil
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("premiumを剥奪できませんでした: %w", err)
	}
	return user, nil
}
