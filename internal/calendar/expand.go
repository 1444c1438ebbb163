package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/datatypes"
)

// Occurrence is one concrete calendar instance produced by expanding a
// recurrence rule for a specific month. Occurrences are never persisted.
type Occurrence struct {
	EventID     uuid.UUID      `json:"event_id"`
	Time        time.Time      `json:"time"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
}

const defaultEventHour = 9

// ParseLocalDate parses a YYYY-MM-DD string as a local calendar date.
// time.Parse would produce a UTC instant, which renders as the previous
// day in western timezones; ParseInLocation keeps the date the user typed.
func ParseLocalDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// ExpandMonth turns an event's recurrence rule into the occurrences that
// fall inside the requested month. Days outside [start_date, end_date]
// are skipped; so are days that do not exist in the target month (day 30
// in February, Feb 29 in non-leap years).
func ExpandMonth(ev *models.CalendarEvent, year int, month time.Month) ([]Occurrence, error) {
	anchor, err := ParseLocalDate(ev.StartDate)
	if err != nil {
		return nil, fmt.Errorf("calendar event %s: invalid start_date %q: %w", ev.ID, ev.StartDate, err)
	}

	var until *time.Time
	if ev.EndDate != nil && *ev.EndDate != "" {
		end, err := ParseLocalDate(*ev.EndDate)
		if err != nil {
			return nil, fmt.Errorf("calendar event %s: invalid end_date %q: %w", ev.ID, *ev.EndDate, err)
		}
		until = &end
	}

	hour, minute := parseEventTime(ev.EventTime)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	inRange := func(day time.Time) bool {
		if day.Before(anchor) {
			return false
		}
		if until != nil && day.After(*until) {
			return false
		}
		return true
	}

	var out []Occurrence
	emit := func(day int) {
		out = append(out, Occurrence{
			EventID:     ev.ID,
			Time:        time.Date(year, month, day, hour, minute, 0, 0, time.Local),
			Title:       ev.Title,
			Description: ev.Description,
			Metadata:    ev.Metadata,
		})
	}

	switch ev.Frequency {
	case models.FrequencyOneTime:
		if anchor.Year() == year && anchor.Month() == month && inRange(anchor) {
			emit(anchor.Day())
		}

	case models.FrequencyWeekly:
		weekdays := make(map[time.Weekday]bool, len(ev.DaysOfWeek))
		for _, d := range ev.DaysOfWeek {
			weekdays[time.Weekday(d)] = true
		}
		for d := 1; d <= lastDay; d++ {
			day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
			if weekdays[day.Weekday()] && inRange(day) {
				emit(d)
			}
		}

	case models.FrequencyMonthly:
		if ev.DayOfMonth >= 1 && ev.DayOfMonth <= lastDay {
			day := time.Date(year, month, ev.DayOfMonth, 0, 0, 0, 0, time.Local)
			if inRange(day) {
				emit(ev.DayOfMonth)
			}
		}

	case models.FrequencyAnnual:
		// anchor.Day() > lastDay covers Feb 29 anchors in non-leap years.
		if month == anchor.Month() && anchor.Day() <= lastDay {
			day := time.Date(year, month, anchor.Day(), 0, 0, 0, 0, time.Local)
			if inRange(day) {
				emit(anchor.Day())
			}
		}

	default:
		return nil, fmt.Errorf("calendar event %s: unknown frequency %q", ev.ID, ev.Frequency)
	}

	return out, nil
}

// parseEventTime parses "HH:MM", falling back to 09:00 local.
func parseEventTime(s string) (hour, minute int) {
	hour = defaultEventHour
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return hour, 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return defaultEventHour, 0
	}
	return h, m
}
