package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/dto"
	"github.com/hearthstack/household-backend/internal/services"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.settingsService.Get(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Setting not found")
		}
		return internalError(c, "Failed to fetch setting")
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	key := c.Params("key")

	var req dto.SetSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.settingsService.Set(key, req.Value); err != nil {
		return internalError(c, "Failed to save setting")
	}
	return c.JSON(fiber.Map{"key": key, "value": req.Value})
}
