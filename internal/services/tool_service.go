package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
)

type ToolService struct {
	db *gorm.DB
}

func NewToolService(db *gorm.DB) *ToolService {
	return &ToolService{db: db}
}

func (s *ToolService) List(includeInactive bool) ([]models.Tool, error) {
	var tools []models.Tool
	q := s.db.Order("name asc")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}

func (s *ToolService) Get(id uuid.UUID) (*models.Tool, error) {
	var tool models.Tool
	if err := s.db.First(&tool, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to load tool %s: %w", id, err)
	}
	return &tool, nil
}

func (s *ToolService) Create(tool *models.Tool) error {
	tool.ID = uuid.New()
	if err := s.db.Create(tool).Error; err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}
	return nil
}

func (s *ToolService) Update(id uuid.UUID, updates map[string]interface{}) (*models.Tool, error) {
	tool, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(tool).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update tool %s: %w", id, err)
	}
	return tool, nil
}

func (s *ToolService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Tool{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tool %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrToolNotFound
	}
	return nil
}
