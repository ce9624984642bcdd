package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"invoicer/pkg/models"
)

const (
	// OverdueAfterDays is the age in days from which an unpaid invoice is overdue.
	OverdueAfterDays = 7

	// MaxOverdueDays caps the displayed overdue day count (about five years).
	MaxOverdueDays = 1825
)

// Derived is the display status of an invoice on a given day.
type Derived struct {
	Status      models.Status
	OverdueDays int
}

// DeriveStatus returns the status of inv as of the calendar day of asOf,
// taken in asOf's location.
//
// Paid is terminal and returned as is. Otherwise the age in whole days
// decides: 0-6 is Unpaid, 7 or more is Overdue. Future dates count as age 0.
// An unparseable date counts as infinitely old, so it derives Overdue with
// the capped day count.
func DeriveStatus(inv models.Invoice, asOf time.Time) Derived {
	if inv.Status == models.StatusPaid {
		return Derived{Status: models.StatusPaid}
	}

	issued, ok := ParseDate(inv.Date)
	if !ok {
		return Derived{Status: models.StatusOverdue, OverdueDays: MaxOverdueDays}
	}

	age := DaysBetween(issued, asOf)
	if age < 0 {
		age = 0
	}
	if age < OverdueAfterDays {
		return Derived{Status: models.StatusUnpaid}
	}
	return Derived{Status: models.StatusOverdue, OverdueDays: min(age, MaxOverdueDays)}
}

// ParseDate parses a day-first DD/MM/YYYY date. Day and month may have one
// or two digits; the day must exist in that month. The result is midnight
// UTC of that civil date.
func ParseDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) > 2 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders the calendar day of t (in t's location) as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%02d/%02d/%04d", d, int(m), y)
}

// DaysBetween counts whole calendar days from the day of a to the day of b,
// each taken in its own location. It is negative when b is earlier.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
