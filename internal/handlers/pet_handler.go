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

type PetHandler struct {
	petService *services.PetService
}

func NewPetHandler(petService *services.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

func (h *PetHandler) List(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	pets, err := h.petService.List(householdID)
	if err != nil {
		return internalError(c, "Failed to list pets")
	}
	return c.JSON(fiber.Map{"pets": pets})
}

func (h *PetHandler) Create(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	pet := models.Pet{
		HouseholdID: householdID,
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		VetName:     req.VetName,
		VetPhone:    req.VetPhone,
		FoodNotes:   req.FoodNotes,
	}
	if req.BirthDate != "" {
		birth, err := calendar.ParseLocalDate(req.BirthDate)
		if err != nil {
			return badRequest(c, "Invalid birth_date")
		}
		pet.BirthDate = &birth
	}

	if err := h.petService.Create(&pet); err != nil {
		return internalError(c, "Failed to create pet")
	}
	return c.Status(fiber.StatusCreated).JSON(pet)
}

func (h *PetHandler) Update(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	petID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid pet ID")
	}

	var req dto.CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"species":    req.Species,
		"breed":      req.Breed,
		"vet_name":   req.VetName,
		"vet_phone":  req.VetPhone,
		"food_notes": req.FoodNotes,
	}
	if req.BirthDate != "" {
		birth, err := calendar.ParseLocalDate(req.BirthDate)
		if err != nil {
			return badRequest(c, "Invalid birth_date")
		}
		updates["birth_date"] = birth
	}

	pet, err := h.petService.Update(householdID, petID, updates)
	if err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			return notFound(c, "Pet not found")
		}
		return internalError(c, "Failed to update pet")
	}
	return c.JSON(pet)
}

func (h *PetHandler) Delete(c *fiber.Ctx) error {
	householdID, err := household.GetHouseholdID(c)
	if err != nil {
		return unauthorized(c)
	}
	petID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid pet ID")
	}
	if err := h.petService.Delete(householdID, petID); err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			return notFound(c, "Pet not found")
		}
		return internalError(c, "Failed to delete pet")
	}
	return c.JSON(fiber.Map{"message": "pet deleted"})
}
