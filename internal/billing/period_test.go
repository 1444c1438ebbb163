package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestCalculatePeriod_BeforeBillingDay(t *testing.T) {
	// Billing day 15, referenced on the 10th: charge is still ahead this
	// month, period started on last month's 15th.
	p := CalculatePeriod(15, date(2025, time.March, 10))

	if !p.BillingDate.Equal(date(2025, time.March, 15)) {
		t.Fatalf("expected billing date 2025-03-15, got %s", p.BillingDate)
	}
	if !p.Start.Equal(date(2025, time.February, 15)) {
		t.Fatalf("expected start 2025-02-15, got %s", p.Start)
	}
	if !p.End.Equal(date(2025, time.March, 14)) {
		t.Fatalf("expected end 2025-03-14, got %s", p.End)
	}
}

func TestCalculatePeriod_OnOrAfterBillingDay(t *testing.T) {
	tests := []struct {
		name        string
		ref         time.Time
		billingDay  int
		wantStart   time.Time
		wantEnd     time.Time
		wantBilling time.Time
	}{
		{
			name:        "exactly on billing day rolls to next month",
			ref:         date(2025, time.March, 15),
			billingDay:  15,
			wantStart:   date(2025, time.March, 15),
			wantEnd:     date(2025, time.April, 14),
			wantBilling: date(2025, time.April, 15),
		},
		{
			name:        "after billing day",
			ref:         date(2025, time.March, 20),
			billingDay:  15,
			wantStart:   date(2025, time.March, 15),
			wantEnd:     date(2025, time.April, 14),
			wantBilling: date(2025, time.April, 15),
		},
		{
			name:        "december rolls into january",
			ref:         date(2024, time.December, 20),
			billingDay:  10,
			wantStart:   date(2024, time.December, 10),
			wantEnd:     date(2025, time.January, 9),
			wantBilling: date(2025, time.January, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CalculatePeriod(tt.billingDay, tt.ref)
			if !p.Start.Equal(tt.wantStart) {
				t.Fatalf("start: expected %s, got %s", tt.wantStart, p.Start)
			}
			if !p.End.Equal(tt.wantEnd) {
				t.Fatalf("end: expected %s, got %s", tt.wantEnd, p.End)
			}
			if !p.BillingDate.Equal(tt.wantBilling) {
				t.Fatalf("billing date: expected %s, got %s", tt.wantBilling, p.BillingDate)
			}
		})
	}
}

func TestCalculatePeriod_ClampsShortMonths(t *testing.T) {
	// Day-31 user in February: billing date clamps to the last day of the
	// month instead of rolling into March.
	p := CalculatePeriod(31, date(2025, time.February, 10))
	if !p.BillingDate.Equal(date(2025, time.February, 28)) {
		t.Fatalf("expected billing date 2025-02-28, got %s", p.BillingDate)
	}
	if !p.Start.Equal(date(2025, time.January, 31)) {
		t.Fatalf("expected start 2025-01-31, got %s", p.Start)
	}

	// Leap year clamps to Feb 29.
	p = CalculatePeriod(31, date(2024, time.February, 10))
	if !p.BillingDate.Equal(date(2024, time.February, 29)) {
		t.Fatalf("expected billing date 2024-02-29, got %s", p.BillingDate)
	}

	// Past the clamped date in January the next charge lands on the
	// clamped February date, not in March.
	p = CalculatePeriod(31, date(2025, time.January, 31))
	if !p.BillingDate.Equal(date(2025, time.February, 28)) {
		t.Fatalf("expected billing date 2025-02-28, got %s", p.BillingDate)
	}
	if !p.End.Equal(date(2025, time.February, 27)) {
		t.Fatalf("expected end 2025-02-27, got %s", p.End)
	}
}

func TestCalculatePeriod_Invariants(t *testing.T) {
	// For every billing day 1-28 and a spread of reference dates: start
	// precedes the billing date, the window ends one day before it, and
	// the billing date is never behind the normalized reference date.
	refs := []time.Time{
		date(2024, time.February, 29),
		date(2025, time.January, 1),
		date(2025, time.February, 28),
		date(2025, time.June, 15),
		date(2025, time.December, 31),
	}
	for day := 1; day <= 28; day++ {
		for _, ref := range refs {
			p := CalculatePeriod(day, ref)
			if !p.Start.Before(p.BillingDate) {
				t.Fatalf("day %d ref %s: start %s not before billing date %s", day, ref, p.Start, p.BillingDate)
			}
			if !p.End.Equal(p.BillingDate.AddDate(0, 0, -1)) {
				t.Fatalf("day %d ref %s: end %s is not billing date minus one day", day, ref, p.End)
			}
			if p.BillingDate.Before(Normalize(ref)) {
				t.Fatalf("day %d ref %s: billing date %s in the past", day, ref, p.BillingDate)
			}
		}
	}
}

func TestCalculatePeriod_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2025, time.March, 15, 23, 45, 0, 0, time.Local)
	early := time.Date(2025, time.March, 15, 0, 1, 0, 0, time.Local)

	p1 := CalculatePeriod(15, late)
	p2 := CalculatePeriod(15, early)
	if !p1.BillingDate.Equal(p2.BillingDate) || !p1.Start.Equal(p2.Start) {
		t.Fatalf("time of day changed the computed period: %+v vs %+v", p1, p2)
	}
}
