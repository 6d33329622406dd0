package picker

import (
	"slices"

	"github.com/tartampluch/go-jalali-picker/internal/digits"
)

// YearLabels returns the year column entries with Persian digits.
func YearLabels(r YearRange) []string {
	years := r.Years()
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = digits.FormatNumber(y)
	}
	return labels
}

// MonthLabels returns the month column entries. Digits inside custom names are
// rendered in Persian like every other label.
func MonthLabels(m MonthNames) []string {
	labels := make([]string, len(m))
	for i, name := range m {
		labels[i] = digits.ToFarsiDigits(name)
	}
	return labels
}

// DayLabels returns 1..count with Persian digits.
func DayLabels(count int) []string {
	labels := make([]string, 0, count)
	for d := 1; d <= count; d++ {
		labels = append(labels, digits.FormatNumber(d))
	}
	return labels
}

// Index locates the current selection inside the label lists. A column whose
// value is not listed gets -1.
type Index struct {
	Year  int
	Month int
	Day   int
}

// IndexOf returns the list positions of s for the given options and day count.
func IndexOf(s Selection, opts Options, dayCount int) Index {
	idx := Index{Year: -1, Month: -1, Day: -1}
	if opts.YearRange.Contains(s.Year) {
		idx.Year = s.Year - opts.YearRange.Start
	}
	idx.Month = slices.Index(opts.MonthNames, s.MonthName)
	if s.Day >= 1 && s.Day <= dayCount {
		idx.Day = s.Day - 1
	}
	return idx
}
