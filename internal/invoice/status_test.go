package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	asOf := day(2024, time.March, 8)

	tests := []struct {
		name   string
		date   string
		status models.Status
		want   Derived
	}{
		{"same day", "08/03/2024", models.StatusUnpaid, Derived{Status: models.StatusUnpaid}},
		{"six days", "02/03/2024", models.StatusUnpaid, Derived{Status: models.StatusUnpaid}},
		{"seven days", "01/03/2024", models.StatusUnpaid, Derived{Status: models.StatusOverdue, OverdueDays: 7}},
		{"future date", "20/03/2024", models.StatusUnpaid, Derived{Status: models.StatusUnpaid}},
		{"stored overdue re-derives", "07/03/2024", models.StatusOverdue, Derived{Status: models.StatusUnpaid}},
		{"paid is terminal", "01/01/2000", models.StatusPaid, Derived{Status: models.StatusPaid}},
		{"capped", "01/01/2000", models.StatusUnpaid, Derived{Status: models.StatusOverdue, OverdueDays: MaxOverdueDays}},
		{"invalid date", "31/02/2024", models.StatusUnpaid, Derived{Status: models.StatusOverdue, OverdueDays: MaxOverdueDays}},
		{"empty date", "", models.StatusUnpaid, Derived{Status: models.StatusOverdue, OverdueDays: MaxOverdueDays}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(models.Invoice{Date: tt.date, Status: tt.status}, asOf)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatus_UsesCalendarDayOfAsOf(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	inv := models.Invoice{Date: "01/07/2024", Status: models.StatusUnpaid}

	// 23:30 UTC on 7 July is already 8 July in London (BST).
	asOf := time.Date(2024, time.July, 7, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, models.StatusUnpaid, DeriveStatus(inv, asOf).Status)
	assert.Equal(t, models.StatusOverdue, DeriveStatus(inv, asOf.In(london)).Status)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"08/03/2024", true, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)},
		{"8/3/2024", true, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)},
		{"29/02/2024", true, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"29/02/2023", false, time.Time{}},
		{"31/04/2024", false, time.Time{}},
		{"00/01/2024", false, time.Time{}},
		{"01/13/2024", false, time.Time{}},
		{"2024-03-08", false, time.Time{}},
		{"08/03/24", false, time.Time{}},
		{"08/03/2024/1", false, time.Time{}},
		{"aa/bb/cccc", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/01/2024", FormatDate(day(2024, time.January, 5)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))

	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	// Across the spring clock change.
	assert.Equal(t, 7, DaysBetween(
		time.Date(2024, 3, 28, 0, 0, 0, 0, london),
		time.Date(2024, 4, 4, 0, 0, 0, 0, london),
	))
}
