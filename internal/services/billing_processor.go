package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/billing"
	"github.com/hearthstack/household-backend/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// syncConcurrency bounds the per-user fan-out so the nightly run cannot
// saturate the connection pool.
const syncConcurrency = 8

// BillingProcessor runs the nightly billing job: resync every billable
// user, archive due charges to history, demote expired cancellations.
type BillingProcessor struct {
	db      *gorm.DB
	billing *BillingService
}

func NewBillingProcessor(db *gorm.DB, billingService *BillingService) *BillingProcessor {
	return &BillingProcessor{db: db, billing: billingService}
}

// ArchivedRecord identifies one charge moved to history.
type ArchivedRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Amount float64   `json:"amount"`
}

// RunSummary reports what the nightly run did, with enough context to
// retry failed units manually.
type RunSummary struct {
	SyncedUsers   int              `json:"synced_users"`
	SyncFailed    int              `json:"sync_failed"`
	FailedUserIDs []uuid.UUID      `json:"failed_user_ids,omitempty"`
	ArchivedCount int              `json:"archived_count"`
	Archived      []ArchivedRecord `json:"archived,omitempty"`
	DemotedCount  int64            `json:"demoted_count"`
	Warnings      []string         `json:"warnings,omitempty"`
}

// Run executes one nightly pass. Per-user sync failures are counted but
// never abort the run; only failing to list the candidate users does.
// The job performs no automatic retry — re-invoking it is safe because
// sync is idempotent and the archive insert dedupes on the source row id.
func (p *BillingProcessor) Run(ctx context.Context, now time.Time) (*RunSummary, error) {
	summary := &RunSummary{}

	candidateStatuses := []string{
		models.SubscriptionStatusActive,
		models.SubscriptionStatusTrial,
		models.SubscriptionStatusPendingCancellation,
	}
	var userIDs []uuid.UUID
	if err := p.db.Model(&models.Subscription{}).
		Where("status IN ?", candidateStatuses).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to list billing candidates: %w", err)
	}

	p.syncAll(ctx, userIDs, now, summary)
	slog.Info("nightly billing sync completed",
		"synced", summary.SyncedUsers, "failed", summary.SyncFailed)

	if err := p.archiveDue(now, summary); err != nil {
		return summary, err
	}
	slog.Info("nightly billing archive completed", "archived", summary.ArchivedCount)

	if err := p.demoteExpiredCancellations(now, summary); err != nil {
		return summary, err
	}
	slog.Info("nightly cancellation demotion completed", "demoted", summary.DemotedCount)

	return summary, nil
}

// syncAll fans out per-user syncs with bounded concurrency and collects
// pass/fail counts. A single user's failure must not block the others.
func (p *BillingProcessor) syncAll(ctx context.Context, userIDs []uuid.UUID, now time.Time, summary *RunSummary) {
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)

	for _, id := range userIDs {
		id := id
		g.Go(func() error {
			if err := p.billing.SyncUser(id, now); err != nil {
				slog.Error("billing sync failed", "user_id", id, "error", err)
				mu.Lock()
				summary.SyncFailed++
				summary.FailedUserIDs = append(summary.FailedUserIDs, id)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			summary.SyncedUsers++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// archiveDue moves billing rows whose billing date has arrived into
// billing_histories. The history insert always happens before the
// delete: losing the active row without a history copy is the one
// unrecoverable failure mode.
func (p *BillingProcessor) archiveDue(now time.Time, summary *RunSummary) error {
	today := billing.Normalize(now)

	var due []models.BillingActive
	if err := p.db.
		Where("billing_date <= ? AND status = ?", today, models.BillingStatusPending).
		Find(&due).Error; err != nil {
		return fmt.Errorf("failed to fetch due billing rows: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	histories := make([]models.BillingHistory, 0, len(due))
	ids := make([]uuid.UUID, 0, len(due))
	processedAt := time.Now()
	for _, row := range due {
		// TODO: charge through the payment provider here; rows are
		// marked processed unconditionally until that integration lands.
		histories = append(histories, models.BillingHistory{
			ID:          row.ID,
			UserID:      row.UserID,
			Type:        row.Type,
			ToolID:      row.ToolID,
			ToolName:    row.ToolName,
			Amount:      row.Amount,
			PeriodStart: row.PeriodStart,
			PeriodEnd:   row.PeriodEnd,
			BillingDate: row.BillingDate,
			Status:      models.BillingStatusProcessed,
			ProcessedAt: processedAt,
		})
		ids = append(ids, row.ID)
	}

	// History reuses the source row id, so a retried run after a partial
	// failure re-inserts as a no-op instead of duplicating rows.
	if err := p.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&histories).Error; err != nil {
		return fmt.Errorf("failed to insert billing history (%d rows): %w", len(histories), err)
	}

	if err := p.db.Delete(&models.BillingActive{}, "id IN ?", ids).Error; err != nil {
		// History is safe; the rows now exist in both tables until a
		// retry removes them from billing_actives.
		warning := fmt.Sprintf("archived %d rows but failed to delete from billing_actives: %v", len(ids), err)
		slog.Error("billing archive delete failed", "count", len(ids), "error", err)
		summary.Warnings = append(summary.Warnings, warning)
		return nil
	}

	summary.ArchivedCount = len(due)
	for _, row := range due {
		summary.Archived = append(summary.Archived, ArchivedRecord{
			ID:     row.ID,
			UserID: row.UserID,
			Amount: row.Amount,
		})
	}
	return nil
}

// demoteExpiredCancellations flips pending_cancellation subscriptions to
// inactive once the user's billing date for the current month has passed,
// i.e. they have been billed through their cancellation.
func (p *BillingProcessor) demoteExpiredCancellations(now time.Time, summary *RunSummary) error {
	var userIDs []uuid.UUID
	if err := p.db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusPendingCancellation).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return fmt.Errorf("failed to list pending cancellations: %w", err)
	}

	today := billing.Normalize(now)
	resolverStatuses := []string{
		models.SubscriptionStatusActive,
		models.SubscriptionStatusTrial,
		models.SubscriptionStatusPendingCancellation,
	}

	for _, id := range userIDs {
		day, ok, err := p.billing.resolveBillingDay(id, resolverStatuses)
		if err != nil {
			slog.Error("cancellation demotion skipped", "user_id", id, "error", err)
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("demotion skipped for user %s: %v", id, err))
			continue
		}
		if !ok {
			continue
		}

		billingDate := billing.DateFor(today.Year(), today.Month(), day, today.Location())
		if today.Before(billingDate) {
			continue
		}

		result := p.db.Model(&models.Subscription{}).
			Where("user_id = ? AND status = ?", id, models.SubscriptionStatusPendingCancellation).
			Update("status", models.SubscriptionStatusInactive)
		if result.Error != nil {
			slog.Error("cancellation demotion failed", "user_id", id, "error", result.Error)
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("demotion failed for user %s: %v", id, result.Error))
			continue
		}
		summary.DemotedCount += result.RowsAffected
	}
	return nil
}
