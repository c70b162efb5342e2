package dateutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// layouts accepted by ParseDate, ISO first, then the day-first forms common
// in India.
var layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
}

// ParseDate parses an ISO date or a day-first date such as "15/08/1990".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or DD/MM/YYYY)", s)
}

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// MonthsBetween counts the whole calendar months from one date to another.
// It is negative when to is before from.
func MonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return -MonthsBetween(to, from)
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// YearsBetween is MonthsBetween in years, so 66 months is 5.5 years.
func YearsBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(MonthsBetween(from, to))).Div(decimal.NewFromInt(12))
}

// AgeInYears is the exact age at a date in whole months, expressed in years.
func AgeInYears(birthDate, atDate time.Time) decimal.Decimal {
	return YearsBetween(birthDate, atDate)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}
