package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/models"
)

func TestCalendarCreate_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db)
	householdID := uuid.New()

	err := svc.Create(&models.CalendarEvent{
		HouseholdID: householdID,
		Title:       "Bin day",
		Frequency:   "fortnightly",
		StartDate:   "2025-03-01",
	})
	if err != ErrInvalidFrequency {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	err = svc.Create(&models.CalendarEvent{
		HouseholdID: householdID,
		Title:       "Bin day",
		Frequency:   models.FrequencyWeekly,
		StartDate:   "March 1st",
	})
	if err == nil {
		t.Fatal("expected error for malformed start_date")
	}
}

func TestCalendarMonthOccurrences_SortedAndScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db)
	householdID := uuid.New()
	otherHousehold := uuid.New()
	userID := uuid.New()

	events := []models.CalendarEvent{
		{
			HouseholdID: householdID,
			UserID:      userID,
			Title:       "Mortgage payment",
			Frequency:   models.FrequencyMonthly,
			StartDate:   "2025-01-01",
			DayOfMonth:  15,
			EventTime:   "17:00",
		},
		{
			HouseholdID: householdID,
			UserID:      userID,
			Title:       "Dentist",
			Frequency:   models.FrequencyOneTime,
			StartDate:   "2025-03-15",
			EventTime:   "08:30",
		},
		{
			HouseholdID: otherHousehold,
			UserID:      uuid.New(),
			Title:       "Neighbour's event",
			Frequency:   models.FrequencyMonthly,
			StartDate:   "2025-01-01",
			DayOfMonth:  15,
		},
	}
	for i := range events {
		if err := svc.Create(&events[i]); err != nil {
			t.Fatalf("create event %d: %v", i, err)
		}
	}

	occ, err := svc.MonthOccurrences(householdID, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthOccurrences: %v", err)
	}
	if len(occ) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occ))
	}
	if occ[0].Title != "Dentist" || occ[1].Title != "Mortgage payment" {
		t.Fatalf("expected time-sorted occurrences, got %q then %q", occ[0].Title, occ[1].Title)
	}
	if got := occ[0].Time.Hour(); got != 8 {
		t.Fatalf("expected 08:30 occurrence first, got hour %d", got)
	}
}

func TestCalendarMonthOccurrences_SkipsMalformedEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db)
	householdID := uuid.New()
	userID := uuid.New()

	good := models.CalendarEvent{
		HouseholdID: householdID,
		UserID:      userID,
		Title:       "Car insurance renewal",
		Frequency:   models.FrequencyAnnual,
		StartDate:   "2024-06-10",
	}
	if err := svc.Create(&good); err != nil {
		t.Fatalf("create event: %v", err)
	}

	// Corrupt a stored event directly; expansion must skip it rather
	// than failing the month.
	bad := models.CalendarEvent{
		ID:          uuid.New(),
		HouseholdID: householdID,
		UserID:      userID,
		Title:       "Corrupted",
		Frequency:   models.FrequencyWeekly,
		StartDate:   "not-a-date",
	}
	if err := db.Create(&bad).Error; err != nil {
		t.Fatalf("insert corrupted event: %v", err)
	}

	occ, err := svc.MonthOccurrences(householdID, 2025, time.June)
	if err != nil {
		t.Fatalf("MonthOccurrences: %v", err)
	}
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].Title != "Car insurance renewal" {
		t.Fatalf("unexpected occurrence %q", occ[0].Title)
	}
	if occ[0].Time.Day() != 10 {
		t.Fatalf("expected day 10, got %d", occ[0].Time.Day())
	}
}

func TestCalendarDelete_ScopedToHousehold(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db)
	householdID := uuid.New()

	ev := models.CalendarEvent{
		HouseholdID: householdID,
		UserID:      uuid.New(),
		Title:       "Piano lesson",
		Frequency:   models.FrequencyWeekly,
		StartDate:   "2025-01-06",
		DaysOfWeek:  []int{1},
	}
	if err := svc.Create(&ev); err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := svc.Delete(uuid.New(), ev.ID); err != ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound for foreign household, got %v", err)
	}
	if err := svc.Delete(householdID, ev.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(householdID, ev.ID); err != ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound on second delete, got %v", err)
	}
}
