package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/dto"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"github.com/hearthstack/household-backend/internal/services"
)

type ShoppingHandler struct {
	shoppingService *services.ShoppingService
}

func NewShoppingHandler(shoppingService *services.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService}
}

func (h *ShoppingHandler) Lists(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	lists, err := h.shoppingService.Lists(householdID)
	if err != nil {
		return internalError(c, "Failed to list shopping lists")
	}
	return c.JSON(fiber.Map{"lists": lists})
}

func (h *ShoppingHandler) CreateList(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := household.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateShoppingListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	list := models.ShoppingList{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        req.Name,
	}
	if err := h.shoppingService.CreateList(&list); err != nil {
		return internalError(c, "Failed to create shopping list")
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

func (h *ShoppingHandler) AddItem(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	listID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid list ID")
	}

	var req dto.AddShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	item, err := h.shoppingService.AddItem(householdID, listID, req.Name, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			return notFound(c, "Shopping list not found")
		}
		return internalError(c, "Failed to add item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ShoppingHandler) ToggleItem(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	listID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid list ID")
	}
	itemID, ok := paramUUID(c, "itemId")
	if !ok {
		return badRequest(c, "Invalid item ID")
	}

	item, err := h.shoppingService.ToggleItem(householdID, listID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListNotFound):
			return notFound(c, "Shopping list not found")
		case errors.Is(err, services.ErrItemNotFound):
			return notFound(c, "Shopping item not found")
		default:
			return internalError(c, "Failed to toggle item")
		}
	}
	return c.JSON(item)
}

func (h *ShoppingHandler) DeleteList(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	listID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid list ID")
	}
	if err := h.shoppingService.DeleteList(householdID, listID); err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			return notFound(c, "Shopping list not found")
		}
		return internalError(c, "Failed to delete shopping list")
	}
	return c.JSON(fiber.Map{"message": "shopping list deleted"})
}
