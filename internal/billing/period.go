package billing

import "time"

// Period is one billing cycle for a user. Start and End are inclusive
// calendar dates at local midnight; BillingDate is the day the period's
// charges come due.
type Period struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	BillingDate time.Time `json:"billing_date"`
}

// Normalize strips the time-of-day from t, keeping the local calendar day.
// All period math compares normalized dates so the hour a job runs at
// never shifts the computed window.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateFor builds the billing date for a given month. A billing day larger
// than the month's length clamps to the last day of the month, so a
// day-31 user bills on Feb 28 (29 in leap years) rather than rolling into
// March.
func DateFor(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// CalculatePeriod maps a billing day-of-month and a reference date to the
// current period window and the next billing date. If the reference date
// is on or after this month's billing date the cycle has already rolled:
// the next charge lands on next month's billing day and the current
// period started this month. Otherwise the charge is still ahead this
// month and the period started last month. End is always one day before
// BillingDate.
func CalculatePeriod(billingDay int, ref time.Time) Period {
	today := Normalize(ref)
	loc := today.Location()
	thisMonth := DateFor(today.Year(), today.Month(), billingDay, loc)

	if !today.Before(thisMonth) {
		// Month+1 may be out of range; time.Date normalizes it, which
		// avoids the overflow AddDate has on clamped dates (Jan 31 plus
		// one month is Mar 3, not Feb 28).
		billingDate := DateFor(today.Year(), today.Month()+1, billingDay, loc)
		return Period{
			Start:       thisMonth,
			End:         billingDate.AddDate(0, 0, -1),
			BillingDate: billingDate,
		}
	}

	start := DateFor(today.Year(), today.Month()-1, billingDay, loc)
	return Period{
		Start:       start,
		End:         thisMonth.AddDate(0, 0, -1),
		BillingDate: thisMonth,
	}
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
