package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) Create(goal *models.Goal) error {
	goal.ID = uuid.New()
	if err := s.db.Create(goal).Error; err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (s *GoalService) List(householdID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Scopes(household.ForHousehold(householdID)).Order("created_at desc").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// UpdateProgress sets progress 0-100; hitting 100 marks the goal done.
func (s *GoalService) UpdateProgress(householdID, goalID uuid.UUID, progress int) (*models.Goal, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	var goal models.Goal
	if err := s.db.Scopes(household.ForHousehold(householdID)).First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to load goal %s: %w", goalID, err)
	}

	updates := map[string]interface{}{
		"progress":  progress,
		"completed": progress >= 100,
	}
	if err := s.db.Model(&goal).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}
	goal.Progress = progress
	goal.Completed = progress >= 100
	return &goal, nil
}

func (s *GoalService) Delete(householdID, goalID uuid.UUID) error {
	result := s.db.Scopes(household.ForHousehold(householdID)).Delete(&models.Goal{}, "id = ?", goalID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
