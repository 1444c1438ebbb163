package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/dto"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	subs, err := h.subscriptionService.ListForUser(userID)
	if err != nil {
		return internalError(c, "Failed to list subscriptions")
	}
	return c.JSON(fiber.Map{"subscriptions": subs})
}

func (h *SubscriptionHandler) Purchase(c *fiber.Ctx) error {
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	toolID, err := uuid.Parse(req.ToolID)
	if err != nil {
		return badRequest(c, "Invalid tool ID")
	}

	sub, err := h.subscriptionService.Purchase(userID, toolID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrToolNotFound):
			return notFound(c, "Tool not found")
		case errors.Is(err, services.ErrAlreadySubscribed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return internalError(c, "Failed to purchase tool")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	subID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid subscription ID")
	}

	sub, err := h.subscriptionService.Cancel(userID, subID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubscriptionNotFound):
			return notFound(c, "Subscription not found")
		case errors.Is(err, services.ErrNotCancellable):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return internalError(c, "Failed to cancel subscription")
		}
	}
	return c.JSON(sub)
}

// ActivateExpiredTrials promotes every trial past its trial_end in one
// batch. Admin action.
func (h *SubscriptionHandler) ActivateExpiredTrials(c *fiber.Ctx) error {
	count, err := h.subscriptionService.ActivateExpiredTrials(time.Now())
	if err != nil {
		return internalError(c, "Failed to activate expired trials")
	}
	return c.JSON(fiber.Map{"activated": count})
}

// Activate flips a single subscription to active. Admin only.
func (h *SubscriptionHandler) Activate(c *fiber.Ctx) error {
	subID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid subscription ID")
	}
	sub, err := h.subscriptionService.Activate(subID)
	if err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			return notFound(c, "Subscription not found")
		}
		return internalError(c, "Failed to activate subscription")
	}
	return c.JSON(sub)
}
