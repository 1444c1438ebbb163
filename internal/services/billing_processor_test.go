package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/models"
)

func TestProcessorRun_ArchivesDueRows(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	processor := NewBillingProcessor(db, billingSvc)

	now := time.Date(2025, time.June, 10, 3, 0, 0, 0, time.Local)
	yesterday := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.Local)
	userID := uuid.New()

	due := models.BillingActive{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.BillingTypeToolSubscription,
		ToolName:    "Meal Planner",
		Amount:      10.00,
		PeriodStart: yesterday.AddDate(0, -1, 0),
		PeriodEnd:   yesterday.AddDate(0, 0, -1),
		BillingDate: yesterday,
		Status:      models.BillingStatusPending,
	}
	if err := db.Create(&due).Error; err != nil {
		t.Fatalf("seed due row: %v", err)
	}

	summary, err := processor.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.ArchivedCount != 1 {
		t.Fatalf("expected 1 archived row, got %d", summary.ArchivedCount)
	}
	if len(summary.Archived) != 1 || summary.Archived[0].ID != due.ID || summary.Archived[0].Amount != 10.00 {
		t.Fatalf("unexpected archived records: %+v", summary.Archived)
	}

	var activeCount int64
	if err := db.Model(&models.BillingActive{}).Where("id = ?", due.ID).Count(&activeCount).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	if activeCount != 0 {
		t.Fatal("expected due row removed from billing_actives")
	}

	var hist models.BillingHistory
	if err := db.First(&hist, "id = ?", due.ID).Error; err != nil {
		t.Fatalf("expected history row: %v", err)
	}
	if hist.Status != models.BillingStatusProcessed {
		t.Fatalf("expected processed status, got %q", hist.Status)
	}
	if hist.ProcessedAt.IsZero() {
		t.Fatal("expected processed_at to be set")
	}
	if hist.Amount != 10.00 || hist.UserID != userID {
		t.Fatalf("history row lost billing fields: %+v", hist)
	}
}

func TestProcessorRun_FutureRowsStay(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	processor := NewBillingProcessor(db, billingSvc)

	now := time.Date(2025, time.June, 10, 3, 0, 0, 0, time.Local)
	future := models.BillingActive{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Type:        models.BillingTypePlatformFee,
		Amount:      5.00,
		PeriodStart: now,
		PeriodEnd:   now.AddDate(0, 1, -1),
		BillingDate: time.Date(2025, time.July, 10, 0, 0, 0, 0, time.Local),
		Status:      models.BillingStatusPending,
	}
	if err := db.Create(&future).Error; err != nil {
		t.Fatalf("seed future row: %v", err)
	}

	summary, err := processor.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.ArchivedCount != 0 {
		t.Fatalf("expected 0 archived rows, got %d", summary.ArchivedCount)
	}

	var count int64
	if err := db.Model(&models.BillingActive{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatal("expected future row untouched")
	}
}

func TestProcessorRun_SyncsCandidates(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	processor := NewBillingProcessor(db, billingSvc)

	tool := seedTool(t, db, "Meal Planner", 10.00)
	userID := uuid.New()
	created := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.Local)
	seedSubscription(t, db, userID, tool, models.SubscriptionStatusActive, created, created.AddDate(0, 0, 14))

	now := time.Date(2025, time.June, 1, 3, 0, 0, 0, time.Local)
	summary, err := processor.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.SyncedUsers != 1 || summary.SyncFailed != 0 {
		t.Fatalf("expected 1 synced user, got %+v", summary)
	}

	rows, err := billingSvc.ListActive(userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected sync to produce 2 rows, got %d", len(rows))
	}
}

func TestProcessorRun_DemotesExpiredCancellations(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	processor := NewBillingProcessor(db, billingSvc)

	tool := seedTool(t, db, "Meal Planner", 10.00)
	userID := uuid.New()

	// created_at + 7 days lands exactly on today, so this month's billing
	// date has passed and the cancellation takes effect.
	now := time.Date(2025, time.June, 17, 3, 0, 0, 0, time.Local)
	created := now.AddDate(0, 0, -7)
	sub := seedSubscription(t, db, userID, tool, models.SubscriptionStatusPendingCancellation, created, created.AddDate(0, 0, 14))

	summary, err := processor.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.DemotedCount != 1 {
		t.Fatalf("expected 1 demoted subscription, got %d", summary.DemotedCount)
	}

	var got models.Subscription
	if err := db.First(&got, "id = ?", sub.ID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if got.Status != models.SubscriptionStatusInactive {
		t.Fatalf("expected inactive, got %q", got.Status)
	}
}

func TestProcessorRun_CancellationNotYetDueStaysPending(t *testing.T) {
	db := newTestDB(t)
	billingSvc := NewBillingService(db, NewSettingsService(db, 5.00))
	processor := NewBillingProcessor(db, billingSvc)

	tool := seedTool(t, db, "Meal Planner", 10.00)
	userID := uuid.New()

	// created_at + 7 days is tomorrow: billing date still ahead, so the
	// subscription stays pending_cancellation (billable until then).
	now := time.Date(2025, time.June, 16, 3, 0, 0, 0, time.Local)
	created := now.AddDate(0, 0, -6)
	sub := seedSubscription(t, db, userID, tool, models.SubscriptionStatusPendingCancellation, created, created.AddDate(0, 0, 14))

	summary, err := processor.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.DemotedCount != 0 {
		t.Fatalf("expected no demotions, got %d", summary.DemotedCount)
	}

	var got models.Subscription
	if err := db.First(&got, "id = ?", sub.ID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if got.Status != models.SubscriptionStatusPendingCancellation {
		t.Fatalf("expected pending_cancellation, got %q", got.Status)
	}
}
