package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
)

var ErrPetNotFound = errors.New("pet not found")

type PetService struct {
	db *gorm.DB
}

func NewPetService(db *gorm.DB) *PetService {
	return &PetService{db: db}
}

func (s *PetService) Create(pet *models.Pet) error {
	pet.ID = uuid.New()
	if err := s.db.Create(pet).Error; err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (s *PetService) List(householdID uuid.UUID) ([]models.Pet, error) {
	var pets []models.Pet
	if err := s.db.Scopes(household.ForHousehold(householdID)).Order("name asc").Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (s *PetService) Update(householdID, petID uuid.UUID, updates map[string]interface{}) (*models.Pet, error) {
	var pet models.Pet
	if err := s.db.Scopes(household.ForHousehold(householdID)).First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to load pet %s: %w", petID, err)
	}
	if err := s.db.Model(&pet).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update pet %s: %w", petID, err)
	}
	return &pet, nil
}

func (s *PetService) Delete(householdID, petID uuid.UUID) error {
	result := s.db.Scopes(household.ForHousehold(householdID)).Delete(&models.Pet{}, "id = ?", petID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pet %s: %w", petID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPetNotFound
	}
	return nil
}
