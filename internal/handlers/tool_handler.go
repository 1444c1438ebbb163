package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/dto"
	"github.com/hearthstack/household-backend/internal/models"
	"github.com/hearthstack/household-backend/internal/services"
)

type ToolHandler struct {
	toolService *services.ToolService
}

func NewToolHandler(toolService *services.ToolService) *ToolHandler {
	return &ToolHandler{toolService: toolService}
}

func (h *ToolHandler) List(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)
	tools, err := h.toolService.List(includeInactive)
	if err != nil {
		return internalError(c, "Failed to list tools")
	}
	return c.JSON(fiber.Map{"tools": tools})
}

func (h *ToolHandler) Get(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid tool ID")
	}
	tool, err := h.toolService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			return notFound(c, "Tool not found")
		}
		return internalError(c, "Failed to fetch tool")
	}
	return c.JSON(tool)
}

func (h *ToolHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateToolRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	tool := models.Tool{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Active:      true,
	}
	if err := h.toolService.Create(&tool); err != nil {
		return internalError(c, "Failed to create tool")
	}
	return c.Status(fiber.StatusCreated).JSON(tool)
}

func (h *ToolHandler) Update(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid tool ID")
	}

	var req dto.UpdateToolRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return badRequest(c, "No fields to update")
	}

	tool, err := h.toolService.Update(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			return notFound(c, "Tool not found")
		}
		return internalError(c, "Failed to update tool")
	}
	return c.JSON(tool)
}

func (h *ToolHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid tool ID")
	}
	if err := h.toolService.Delete(id); err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			return notFound(c, "Tool not found")
		}
		return internalError(c, "Failed to delete tool")
	}
	return c.JSON(fiber.Map{"message": "tool deleted"})
}
