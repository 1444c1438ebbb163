package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/dto"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"github.com/hearthstack/household-backend/internal/services"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (h *CalendarHandler) List(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	events, err := h.calendarService.List(householdID)
	if err != nil {
		return internalError(c, "Failed to list events")
	}
	return c.JSON(fiber.Map{"events": events})
}

func (h *CalendarHandler) Create(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ev := models.CalendarEvent{
		HouseholdID: householdID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DaysOfWeek:  req.DaysOfWeek,
		DayOfMonth:  req.DayOfMonth,
		EventTime:   req.EventTime,
		Metadata:    req.Metadata,
	}
	if err := h.calendarService.Create(&ev); err != nil {
		if errors.Is(err, services.ErrInvalidFrequency) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to create event")
	}
	return c.Status(fiber.StatusCreated).JSON(ev)
}

func (h *CalendarHandler) Delete(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}
	if err := h.calendarService.Delete(householdID, eventID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return notFound(c, "Event not found")
		}
		return internalError(c, "Failed to delete event")
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

// Month expands every event into its concrete occurrences for the
// requested calendar month.
func (h *CalendarHandler) Month(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}

	year, err := c.ParamsInt("year")
	if err != nil || year < 1970 || year > 2200 {
		return badRequest(c, "Invalid year")
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return badRequest(c, "Invalid month")
	}

	occurrences, err := h.calendarService.MonthOccurrences(householdID, year, time.Month(month))
	if err != nil {
		return internalError(c, "Failed to expand events")
	}
	return c.JSON(fiber.Map{
		"year":        year,
		"month":       month,
		"occurrences": occurrences,
	})
}
