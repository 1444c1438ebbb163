package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/calendar"
	"github.com/hearthstack/household-backend/internal/household"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("calendar event not found")
	ErrInvalidFrequency = errors.New("invalid event frequency")
)

type CalendarService struct {
	db *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

func (s *CalendarService) Create(ev *models.CalendarEvent) error {
	switch ev.Frequency {
	case models.FrequencyOneTime, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyAnnual:
	default:
		return ErrInvalidFrequency
	}
	if _, err := calendar.ParseLocalDate(ev.StartDate); err != nil {
		return fmt.Errorf("invalid start_date %q: %w", ev.StartDate, err)
	}

	ev.ID = uuid.New()
	if err := s.db.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

func (s *CalendarService) List(householdID uuid.UUID) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	if err := s.db.Scopes(household.ForHousehold(householdID)).Order("created_at asc").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return events, nil
}

func (s *CalendarService) Delete(householdID, eventID uuid.UUID) error {
	result := s.db.Scopes(household.ForHousehold(householdID)).Delete(&models.CalendarEvent{}, "id = ?", eventID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// MonthOccurrences expands every event in the household for the
// requested month, sorted by time. A malformed event is logged and
// skipped rather than failing the whole month.
func (s *CalendarService) MonthOccurrences(householdID uuid.UUID, year int, month time.Month) ([]calendar.Occurrence, error) {
	events, err := s.List(householdID)
	if err != nil {
		return nil, err
	}

	occurrences := make([]calendar.Occurrence, 0)
	for i := range events {
		occ, err := calendar.ExpandMonth(&events[i], year, month)
		if err != nil {
			slog.Error("skipping malformed calendar event", "event_id", events[i].ID, "error", err)
			continue
		}
		occurrences = append(occurrences, occ...)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Time.Before(occurrences[j].Time)
	})
	return occurrences, nil
}
