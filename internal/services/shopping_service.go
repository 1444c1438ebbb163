package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrListNotFound = errors.New("shopping list not found")
	ErrItemNotFound = errors.New("shopping item not found")
)

type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

func (s *ShoppingService) CreateList(list *models.ShoppingList) error {
	list.ID = uuid.New()
	if err := s.db.Create(list).Error; err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}
	return nil
}

func (s *ShoppingService) Lists(householdID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := s.db.Scopes(household.ForHousehold(householdID)).Preload("Items").Order("created_at desc").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return lists, nil
}

func (s *ShoppingService) AddItem(householdID, listID uuid.UUID, name string, quantity int) (*models.ShoppingItem, error) {
	if err := s.requireList(householdID, listID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}

	item := models.ShoppingItem{
		ID:       uuid.New(),
		ListID:   listID,
		Name:     name,
		Quantity: quantity,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}
	return &item, nil
}

func (s *ShoppingService) ToggleItem(householdID, listID, itemID uuid.UUID) (*models.ShoppingItem, error) {
	if err := s.requireList(householdID, listID); err != nil {
		return nil, err
	}

	var item models.ShoppingItem
	if err := s.db.First(&item, "id = ? AND list_id = ?", itemID, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load shopping item %s: %w", itemID, err)
	}

	item.Checked = !item.Checked
	if err := s.db.Model(&item).Update("checked", item.Checked).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle shopping item %s: %w", itemID, err)
	}
	return &item, nil
}

func (s *ShoppingService) DeleteList(householdID, listID uuid.UUID) error {
	if err := s.requireList(householdID, listID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&models.ShoppingItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete shopping items: %w", err)
		}
		if err := tx.Delete(&models.ShoppingList{}, "id = ?", listID).Error; err != nil {
			return fmt.Errorf("failed to delete shopping list %s: %w", listID, err)
		}
		return nil
	})
}

func (s *ShoppingService) requireList(householdID, listID uuid.UUID) error {
	var list models.ShoppingList
	err := s.db.Scopes(household.ForHousehold(householdID)).First(&list, "id = ?", listID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrListNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load shopping list %s: %w", listID, err)
	}
	return nil
}
