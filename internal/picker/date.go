// Package picker holds the state behind the three-column Jalali date picker:
// the configuration of its columns and the composer that merges single-column
// changes into a full date.
package picker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tartampluch/go-jalali-picker/internal/config"
	"github.com/tartampluch/go-jalali-picker/internal/digits"
)

var (
	ErrUnknownMonth   = errors.New(config.ErrUnknownMonth)
	ErrMonthNumber    = errors.New(config.ErrMonthNumber)
	ErrEmptyMonths    = errors.New(config.ErrEmptyMonths)
	ErrDuplicateMonth = errors.New(config.ErrDuplicateMonth)
	ErrInvalidRange   = errors.New(config.ErrInvalidRange)
	ErrYearBounds     = errors.New(config.ErrYearBounds)
	ErrYearSpan       = errors.New(config.ErrYearSpan)
	ErrUnknownColumn  = errors.New(config.ErrUnknownColumn)
)

// Date is a picked Jalali date in canonical numeric form.
// Month is 1-based. No calendar validation is implied.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY/MM/DD with Latin digits.
func (d Date) String() string {
	return fmt.Sprintf(config.DateFormatJalali, d.Year, d.Month, d.Day)
}

// Farsi renders the date as YYYY/MM/DD with Persian digits.
func (d Date) Farsi() string {
	return digits.ToFarsiDigits(d.String())
}

// YearRange bounds the selectable years, both ends inclusive.
type YearRange struct {
	Start int
	End   int
}

// Validate rejects ranges whose start is after their end, years outside
// MinYear..MaxYear and spans longer than MaxYearSpan.
func (r YearRange) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%w (%d > %d)", ErrInvalidRange, r.Start, r.End)
	}
	if r.Start < config.MinYear || r.End > config.MaxYear {
		return fmt.Errorf("%w: %d..%d", ErrYearBounds, r.Start, r.End)
	}
	if r.End-r.Start+1 > config.MaxYearSpan {
		return fmt.Errorf("%w: %d years", ErrYearSpan, r.End-r.Start+1)
	}
	return nil
}

// Years returns Start..End in increasing order.
func (r YearRange) Years() []int {
	if r.Start > r.End {
		return nil
	}
	years := make([]int, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, y)
	}
	return years
}

// Contains reports whether year lies inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// MonthNames is the ordered list of month labels. A name's 1-based position is
// its month number, so names must be unique.
type MonthNames []string

// DefaultMonthNames returns a fresh copy of the twelve Persian month names.
func DefaultMonthNames() MonthNames {
	return slices.Clone(MonthNames(config.DefaultMonthNames))
}

// Number returns the 1-based position of name.
func (m MonthNames) Number(name string) (int, error) {
	i := slices.Index(m, name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
	}
	return i + 1, nil
}

// Name returns the label of a 1-based month number.
func (m MonthNames) Name(month int) (string, error) {
	if month < 1 || month > len(m) {
		return "", fmt.Errorf("%w: %d", ErrMonthNumber, month)
	}
	return m[month-1], nil
}

// Validate checks the list is usable as a month-number mapping.
func (m MonthNames) Validate() error {
	if len(m) == 0 {
		return ErrEmptyMonths
	}
	// Names are compared as displayed: "1" and "۱" share a label.
	seen := make(map[string]struct{}, len(m))
	for _, name := range m {
		label := digits.ToFarsiDigits(name)
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateMonth, name)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// Options configures a picker. Zero fields fall back to the defaults returned by
// DefaultOptions.
type Options struct {
	// YearRange is the span of the year column. Default 1330..1400.
	YearRange YearRange

	// MonthNames overrides the month column labels and defines month numbers.
	MonthNames MonthNames

	// InitialDate seeds the three columns. Default 1370/01/01.
	InitialDate *Date

	// ClampDays limits the day column to the Jalali length of the selected
	// month. Off by default: the day column always offers 1..31.
	ClampDays bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		YearRange: YearRange{Start: config.DefaultYearStart, End: config.DefaultYearEnd},
		MonthNames: DefaultMonthNames(),
		InitialDate: &Date{
			Year:  config.DefaultInitialYear,
			Month: config.DefaultInitialMonth,
			Day:   config.DefaultInitialDay,
		},
	}
}

// withDefaults fills unset fields and validates the result.
func (o Options) withDefaults() (Options, error) {
	def := DefaultOptions()
	if o.YearRange == (YearRange{}) {
		o.YearRange = def.YearRange
	}
	if len(o.MonthNames) == 0 {
		o.MonthNames = def.MonthNames
	} else {
		o.MonthNames = slices.Clone(o.MonthNames)
	}
	if o.InitialDate == nil {
		o.InitialDate = def.InitialDate
	} else {
		d := *o.InitialDate
		o.InitialDate = &d
	}

	if err := o.YearRange.Validate(); err != nil {
		return o, err
	}
	if err := o.MonthNames.Validate(); err != nil {
		return o, err
	}
	return o, nil
}
