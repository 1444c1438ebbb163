package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/services"
)

type BillingHandler struct {
	billingService *services.BillingService
	processor      *services.BillingProcessor
}

func NewBillingHandler(billingService *services.BillingService, processor *services.BillingProcessor) *BillingHandler {
	return &BillingHandler{billingService: billingService, processor: processor}
}

// ListActive returns the caller's upcoming charges for the current
// billing period.
func (h *BillingHandler) ListActive(c *fiber.Ctx) error {
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	rows, err := h.billingService.ListActive(userID)
	if err != nil {
		return internalError(c, "Failed to list billing records")
	}
	return c.JSON(fiber.Map{"billing": rows})
}

func (h *BillingHandler) ListHistory(c *fiber.Ctx) error {
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	rows, total, err := h.billingService.ListHistory(userID, limit, offset)
	if err != nil {
		return internalError(c, "Failed to list billing history")
	}
	return c.JSON(fiber.Map{
		"history": rows,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// Sync recomputes the caller's active billing rows on demand, the same
// computation the nightly run performs for everyone.
func (h *BillingHandler) Sync(c *fiber.Ctx) error {
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.billingService.SyncUser(userID, time.Now()); err != nil {
		slog.Error("billing sync failed", "user_id", userID, "error", err)
		return internalError(c, "Failed to sync billing")
	}
	rows, err := h.billingService.ListActive(userID)
	if err != nil {
		return internalError(c, "Failed to list billing records")
	}
	return c.JSON(fiber.Map{"billing": rows})
}

// RunNightly triggers the full nightly billing pass. Exposed on an
// internal route guarded by the cron secret.
func (h *BillingHandler) RunNightly(c *fiber.Ctx) error {
	summary, err := h.processor.Run(c.Context(), time.Now())
	if err != nil {
		slog.Error("nightly billing run failed", "error", err)
		return internalError(c, "Billing run failed")
	}
	return c.JSON(summary)
}
