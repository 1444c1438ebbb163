package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/billing"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrToolNotFound         = errors.New("tool not found")
	ErrAlreadySubscribed    = errors.New("already subscribed to this tool")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNotCancellable       = errors.New("subscription is not in a cancellable state")
)

// SubscriptionService owns the subscription lifecycle: purchase starts a
// trial, cancellation parks the row in pending_cancellation until the
// next billing date, activation is an admin action or trial expiry.
type SubscriptionService struct {
	db        *gorm.DB
	billing   *BillingService
	trialDays int
}

func NewSubscriptionService(db *gorm.DB, billingService *BillingService, trialDays int) *SubscriptionService {
	return &SubscriptionService{db: db, billing: billingService, trialDays: trialDays}
}

// Purchase creates a trial subscription for a tool, snapshotting the
// tool's current price.
func (s *SubscriptionService) Purchase(userID, toolID uuid.UUID) (*models.Subscription, error) {
	var tool models.Tool
	if err := s.db.First(&tool, "id = ? AND active = ?", toolID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to load tool %s: %w", toolID, err)
	}

	var existing models.Subscription
	err := s.db.
		Where("user_id = ? AND tool_id = ? AND status <> ?", userID, toolID, models.SubscriptionStatusInactive).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}

	now := time.Now()
	sub := models.Subscription{
		ID:         uuid.New(),
		UserID:     userID,
		ToolID:     toolID,
		Status:     models.SubscriptionStatusTrial,
		Price:      tool.Price,
		TrialStart: now,
		TrialEnd:   now.AddDate(0, 0, s.trialDays),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &sub, nil
}

// Cancel moves a trial or active subscription to pending_cancellation.
// The user keeps access and remains billable until the next billing
// date, which becomes the cancellation effective date.
func (s *SubscriptionService) Cancel(userID, subID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.First(&sub, "id = ? AND user_id = ?", subID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription %s: %w", subID, err)
	}

	if sub.Status != models.SubscriptionStatusTrial && sub.Status != models.SubscriptionStatusActive {
		return nil, ErrNotCancellable
	}

	now := time.Now()
	effective := billing.Normalize(now)
	if day, ok, err := s.billing.ResolveBillingDay(userID); err != nil {
		return nil, err
	} else if ok {
		effective = billing.CalculatePeriod(day, now).BillingDate
	}

	updates := map[string]interface{}{
		"status":                      models.SubscriptionStatusPendingCancellation,
		"cancellation_effective_date": effective,
	}
	if err := s.db.Model(&sub).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel subscription %s: %w", subID, err)
	}

	sub.Status = models.SubscriptionStatusPendingCancellation
	sub.CancellationEffectiveDate = &effective
	return &sub, nil
}

// Activate flips a trial subscription to active (admin action).
func (s *SubscriptionService) Activate(subID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.First(&sub, "id = ?", subID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription %s: %w", subID, err)
	}

	if err := s.db.Model(&sub).Update("status", models.SubscriptionStatusActive).Error; err != nil {
		return nil, fmt.Errorf("failed to activate subscription %s: %w", subID, err)
	}
	sub.Status = models.SubscriptionStatusActive
	return &sub, nil
}

// ActivateExpiredTrials promotes every trial whose trial_end has passed.
// Exposed as an admin batch action.
func (s *SubscriptionService) ActivateExpiredTrials(now time.Time) (int64, error) {
	result := s.db.Model(&models.Subscription{}).
		Where("status = ? AND trial_end <= ?", models.SubscriptionStatusTrial, now).
		Update("status", models.SubscriptionStatusActive)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to activate expired trials: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListForUser returns the user's subscriptions with tool details.
func (s *SubscriptionService) ListForUser(userID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := s.db.Preload("Tool").Where("user_id = ?", userID).Order("created_at asc").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user %s: %w", userID, err)
	}
	return subs, nil
}
