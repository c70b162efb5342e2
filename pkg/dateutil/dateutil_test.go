package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
		description string
	}{
		{"Same month and day", date(1990, 8, 15), date(2025, 8, 15), 35, "Exact birthday"},
		{"Day before birthday", date(1990, 8, 15), date(2025, 8, 14), 34, "One day before 35th birthday"},
		{"Day after birthday", date(1990, 8, 15), date(2025, 8, 16), 35, "One day after 35th birthday"},
		{"Month before birthday", date(1990, 8, 15), date(2025, 7, 15), 34, "Same day, month before birthday"},
		{"Month after birthday", date(1990, 8, 15), date(2025, 9, 15), 35, "Same day, month after birthday"},
		{"Leap year birth, non-leap year check", date(1992, 2, 29), date(2025, 2, 28), 32, "Born on leap day, checking on Feb 28"},
		{"Leap year birth, leap year check", date(1992, 2, 29), date(2024, 2, 29), 32, "Born on leap day, checking on leap day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := Age(tt.birthDate, tt.atDate)
			assert.Equal(t, tt.expectedAge, age,
				"%s: Expected age %d, got %d", tt.description, tt.expectedAge, age)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1990-08-15", date(1990, 8, 15)},
		{"15/08/1990", date(1990, 8, 15)},
		{"15-08-1990", date(1990, 8, 15)},
		{"5/8/1990", date(1990, 8, 5)},
		{" 2030-01-31 ", date(2030, 1, 31)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	for _, bad := range []string{"", "1990/08/15", "31/02/2020", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same day", date(2025, 3, 14), date(2025, 3, 14), 0},
		{"one month", date(2025, 3, 14), date(2025, 4, 14), 1},
		{"one day short", date(2025, 3, 14), date(2025, 4, 13), 0},
		{"across years", date(2025, 11, 1), date(2031, 5, 1), 66},
		{"backwards", date(2031, 5, 1), date(2025, 11, 1), -66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestYearsBetween(t *testing.T) {
	assert.Equal(t, "5.5", YearsBetween(date(2025, 11, 1), date(2031, 5, 1)).String())
	assert.Equal(t, "10", YearsBetween(date(2020, 1, 1), date(2030, 1, 1)).String())
	assert.Equal(t, "34.75", AgeInYears(date(1990, 8, 15), date(2025, 5, 15)).String())
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2026, 2, 14), AddMonths(date(2025, 3, 14), 11))
	assert.Equal(t, date(2024, 3, 14), AddMonths(date(2025, 3, 14), -12))
}
