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

// BillingService keeps the billing_actives table consistent with each
// user's current subscription set.
type BillingService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewBillingService(db *gorm.DB, settings *SettingsService) *BillingService {
	return &BillingService{db: db, settings: settings}
}

// billableStatuses are the subscription states that anchor a billing day.
var billableStatuses = []string{
	models.SubscriptionStatusActive,
	models.SubscriptionStatusTrial,
}

// ResolveBillingDay derives a user's billing anchor day from their oldest
// active or trial subscription. Returns (0, false, nil) when the user has
// no billable subscription.
func (s *BillingService) ResolveBillingDay(userID uuid.UUID) (int, bool, error) {
	return s.resolveBillingDay(userID, billableStatuses)
}

func (s *BillingService) resolveBillingDay(userID uuid.UUID, statuses []string) (int, bool, error) {
	var sub models.Subscription
	err := s.db.
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("created_at asc").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query subscriptions for user %s: %w", userID, err)
	}

	if sub.Status == models.SubscriptionStatusTrial {
		return sub.TrialEnd.Day(), true, nil
	}
	// Paid subscriptions anchor one week after purchase.
	return sub.CreatedAt.AddDate(0, 0, 7).Day(), true, nil
}

// SyncUser regenerates the user's pending billing line items for the
// current period. The row set is fully replaced (delete then insert,
// inside one transaction), never patched, so re-running with unchanged
// subscriptions yields the identical result.
func (s *BillingService) SyncUser(userID uuid.UUID, now time.Time) error {
	day, ok, err := s.ResolveBillingDay(userID)
	if err != nil {
		return err
	}
	if !ok {
		// No billable subscriptions means nothing owed.
		return s.clearActive(userID)
	}

	period := billing.CalculatePeriod(day, now)

	var subs []models.Subscription
	if err := s.db.
		Preload("Tool").
		Where("user_id = ? AND status IN ?", userID, billableStatuses).
		Find(&subs).Error; err != nil {
		return fmt.Errorf("failed to load subscriptions for user %s: %w", userID, err)
	}
	if len(subs) == 0 {
		return s.clearActive(userID)
	}

	fee, err := s.settings.PlatformFee()
	if err != nil {
		return err
	}

	// Active subscriptions always bill; trials only once the trial ends
	// on or before the computed billing date.
	var rows []models.BillingActive
	for _, sub := range subs {
		if sub.Status == models.SubscriptionStatusTrial &&
			billing.Normalize(sub.TrialEnd).After(period.BillingDate) {
			continue
		}
		toolID := sub.ToolID
		rows = append(rows, models.BillingActive{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        models.BillingTypeToolSubscription,
			ToolID:      &toolID,
			ToolName:    sub.Tool.Name,
			Amount:      sub.Price,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			BillingDate: period.BillingDate,
			Status:      models.BillingStatusPending,
		})
	}

	// The platform fee is only charged when at least one subscription
	// bills this period.
	if len(rows) > 0 {
		rows = append(rows, models.BillingActive{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        models.BillingTypePlatformFee,
			Amount:      fee,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			BillingDate: period.BillingDate,
			Status:      models.BillingStatusPending,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND period_start = ? AND period_end = ?", userID, period.Start, period.End).
			Delete(&models.BillingActive{}).Error; err != nil {
			return fmt.Errorf("failed to clear billing rows for user %s: %w", userID, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert billing rows for user %s: %w", userID, err)
		}
		return nil
	})
}

// ListActive returns the user's pending line items for display.
func (s *BillingService) ListActive(userID uuid.UUID) ([]models.BillingActive, error) {
	var rows []models.BillingActive
	if err := s.db.Where("user_id = ?", userID).Order("billing_date asc, type asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list billing rows for user %s: %w", userID, err)
	}
	return rows, nil
}

// ListHistory returns the user's archived charges, newest first.
func (s *BillingService) ListHistory(userID uuid.UUID, limit, offset int) ([]models.BillingHistory, int64, error) {
	var rows []models.BillingHistory
	var total int64
	q := s.db.Model(&models.BillingHistory{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count billing history for user %s: %w", userID, err)
	}
	if err := q.Order("billing_date desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list billing history for user %s: %w", userID, err)
	}
	return rows, total, nil
}

func (s *BillingService) clearActive(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.BillingActive{}).Error; err != nil {
		return fmt.Errorf("failed to clear billing rows for user %s: %w", userID, err)
	}
	return nil
}
