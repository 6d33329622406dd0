// Package jalali bridges picked Jalali dates to the Gregorian calendar.
//
// The picker itself never performs calendar arithmetic. This package exists for
// the optional day clamping and for the host application, which is expected to
// validate dates before using them.
package jalali

import (
	"errors"
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/tartampluch/go-jalali-picker/internal/config"
)

var (
	ErrInvalidMonth = errors.New(config.ErrInvalidMonth)
	ErrInvalidDay   = errors.New(config.ErrInvalidDay)
)

// Conversions count days from 1 Farvardin 1400 (21 March 2021) with the same
// leap rule as IsLeap, so ToTime, FromTime and DaysInMonth always agree.
const anchorYear = 1400

var nowruzAnchor = time.Date(2021, time.March, 21, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

// IsLeap reports whether the Jalali year has 366 days.
func IsLeap(year int) bool {
	return ptime.Date(year, ptime.Esfand, 1, 0, 0, 0, 0, ptime.Iran()).IsLeap()
}

func yearLength(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the length of the given Jalali month, or 0 when the month
// is outside 1..12.
func DaysInMonth(year, month int) int {
	switch {
	case month < 1 || month > config.MonthsInYear:
		return 0
	case month <= config.LastLongMonth:
		return config.LongMonthDays
	case month < config.MonthsInYear:
		return config.ShortMonthDays
	case IsLeap(year):
		return config.EsfandLeapDays
	default:
		return config.EsfandDays
	}
}

// Validate checks that month and day exist in the given year.
func Validate(year, month, day int) error {
	if month < 1 || month > config.MonthsInYear {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if limit := DaysInMonth(year, month); day < 1 || day > limit {
		return fmt.Errorf("%w: %d (month %d of %d has %d days)", ErrInvalidDay, day, month, year, limit)
	}
	return nil
}

// Clamp limits day to the length of the month. Days below 1 become 1.
func Clamp(year, month, day int) int {
	if day < 1 {
		return 1
	}
	if limit := DaysInMonth(year, month); limit > 0 && day > limit {
		return limit
	}
	return day
}

// ToTime returns midnight of the Jalali date in the Iran time zone.
// Days past the end of the month roll over into the next one.
func ToTime(year, month, day int) time.Time {
	g := nowruzAnchor.AddDate(0, 0, daysFromAnchor(year, month, day))
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, ptime.Iran())
}

// FromTime returns the Jalali components of t, read in the Iran time zone.
func FromTime(t time.Time) (year, month, day int) {
	local := t.In(ptime.Iran())
	civil := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	n := int((civil.Unix() - nowruzAnchor.Unix()) / secondsPerDay)

	year = anchorYear
	for n < 0 {
		year--
		n += yearLength(year)
	}
	for n >= yearLength(year) {
		n -= yearLength(year)
		year++
	}

	const longMonths = config.LastLongMonth * config.LongMonthDays
	if n < longMonths {
		return year, n/config.LongMonthDays + 1, n%config.LongMonthDays + 1
	}
	n -= longMonths
	return year, config.LastLongMonth + n/config.ShortMonthDays + 1, n%config.ShortMonthDays + 1
}

// daysFromAnchor counts the days between 1 Farvardin 1400 and the given date.
func daysFromAnchor(year, month, day int) int {
	n := day - 1
	if month <= config.LastLongMonth {
		n += (month - 1) * config.LongMonthDays
	} else {
		n += config.LastLongMonth*config.LongMonthDays + (month-1-config.LastLongMonth)*config.ShortMonthDays
	}
	for y := anchorYear; y < year; y++ {
		n += yearLength(y)
	}
	for y := year; y < anchorYear; y++ {
		n -= yearLength(y)
	}
	return n
}
