package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/calendar"
	"github.com/hearthstack/household-backend/internal/dto"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"github.com/hearthstack/household-backend/internal/services"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	goals, err := h.goalService.List(householdID)
	if err != nil {
		return internalError(c, "Failed to list goals")
	}
	return c.JSON(fiber.Map{"goals": goals})
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	goal := models.Goal{
		HouseholdID: householdID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.TargetDate != "" {
		target, err := calendar.ParseLocalDate(req.TargetDate)
		if err != nil {
			return badRequest(c, "Invalid target_date")
		}
		goal.TargetDate = &target
	}

	if err := h.goalService.Create(&goal); err != nil {
		return internalError(c, "Failed to create goal")
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) UpdateProgress(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	goalID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid goal ID")
	}

	var req dto.UpdateGoalProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	goal, err := h.goalService.UpdateProgress(householdID, goalID, req.Progress)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return notFound(c, "Goal not found")
		}
		return internalError(c, "Failed to update goal")
	}
	return c.JSON(goal)
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	goalID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid goal ID")
	}
	if err := h.goalService.Delete(householdID, goalID); err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return notFound(c, "Goal not found")
		}
		return internalError(c, "Failed to delete goal")
	}
	return c.JSON(fiber.Map{"message": "goal deleted"})
}
