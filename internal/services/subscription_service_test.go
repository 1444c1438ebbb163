package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/models"
)

func TestPurchase_StartsTrial(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	svc := NewSubscriptionService(db, billingSvc, 14)

	tool := seedTool(t, db, "Meal Planner", 10.00)
	userID := uuid.New()

	sub, err := svc.Purchase(userID, tool.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if sub.Status != models.SubscriptionStatusTrial {
		t.Fatalf("expected trial status, got %q", sub.Status)
	}
	if sub.Price != 10.00 {
		t.Fatalf("expected price snapshot 10.00, got %.2f", sub.Price)
	}
	if got := sub.TrialEnd.Sub(sub.TrialStart); got < 13*24*time.Hour || got > 15*24*time.Hour {
		t.Fatalf("expected ~14 day trial, got %s", got)
	}

	// Second purchase of the same tool is rejected.
	if _, err := svc.Purchase(userID, tool.ID); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}

	// Unknown tool is rejected.
	if _, err := svc.Purchase(userID, uuid.New()); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestCancel_SetsPendingCancellationWithEffectiveDate(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	svc := NewSubscriptionService(db, billingSvc, 14)

	tool := seedTool(t, db, "Meal Planner", 10.00)
	userID := uuid.New()

	created, err := svc.Purchase(userID, tool.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	cancelled, err := svc.Cancel(userID, created.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.SubscriptionStatusPendingCancellation {
		t.Fatalf("expected pending_cancellation, got %q", cancelled.Status)
	}
	if cancelled.CancellationEffectiveDate == nil {
		t.Fatal("expected cancellation effective date to be set")
	}
	if cancelled.CancellationEffectiveDate.Before(time.Now().AddDate(0, 0, -1)) {
		t.Fatalf("effective date in the past: %s", cancelled.CancellationEffectiveDate)
	}

	// Cancelling twice is rejected.
	if _, err := svc.Cancel(userID, created.ID); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}

	// Someone else's subscription is invisible.
	if _, err := svc.Cancel(uuid.New(), created.ID); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestActivateExpiredTrials(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	svc := NewSubscriptionService(db, billingSvc, 14)

	tool := seedTool(t, db, "Meal Planner", 10.00)
	userID := uuid.New()

	now := time.Date(2025, time.June, 17, 0, 0, 0, 0, time.Local)
	expired := seedSubscription(t, db, userID, tool, models.SubscriptionStatusTrial,
		now.AddDate(0, 0, -20), now.AddDate(0, 0, -6))
	tool2 := seedTool(t, db, "Budget Tracker", 8.00)
	running := seedSubscription(t, db, userID, tool2, models.SubscriptionStatusTrial,
		now.AddDate(0, 0, -2), now.AddDate(0, 0, 12))

	n, err := svc.ActivateExpiredTrials(now)
	if err != nil {
		t.Fatalf("activate expired trials: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 activation, got %d", n)
	}

	var got models.Subscription
	if err := db.First(&got, "id = ?", expired.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Status != models.SubscriptionStatusActive {
		t.Fatalf("expected active, got %q", got.Status)
	}
	got = models.Subscription{}
	if err := db.First(&got, "id = ?", running.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Status != models.SubscriptionStatusTrial {
		t.Fatalf("expected still trial, got %q", got.Status)
	}
}
