package picker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-jalali-picker/internal/digits"
	"github.com/tartampluch/go-jalali-picker/internal/picker"
)

// newComposer builds a composer seeded with the given date and default months.
func newComposer(t *testing.T, seed picker.Date) *picker.Composer {
	t.Helper()
	c, err := picker.NewComposer(picker.Options{InitialDate: &seed})
	require.NoError(t, err)
	return c
}

func TestComposer_DayChangeKeepsOtherColumns(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1400, Month: 1, Day: 1})

	got, err := c.ApplyChange(picker.DayChange(15))
	require.NoError(t, err)
	assert.Equal(t, picker.Date{Year: 1400, Month: 1, Day: 15}, got)

	state := c.State()
	assert.Equal(t, 1400, state.Year)
	assert.Equal(t, "فروردین", state.MonthName)
	assert.Equal(t, 15, state.Day)
}

func TestComposer_MonthResolution(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1400, Month: 1, Day: 1})

	got, err := c.ApplyChange(picker.MonthChange("اردیبهشت"))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Month)
}

func TestComposer_SequentialUpdatesCompose(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1370, Month: 1, Day: 1})

	_, err := c.ApplyChange(picker.YearChange(1390))
	require.NoError(t, err)
	_, err = c.ApplyChange(picker.MonthChange("تیر"))
	require.NoError(t, err)
	got, err := c.ApplyChange(picker.DayChange(10))
	require.NoError(t, err)

	assert.Equal(t, picker.Date{Year: 1390, Month: 4, Day: 10}, got)
}

func TestComposer_EmptyChangeReturnsCurrentDate(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1380, Month: 9, Day: 20})

	got, err := c.ApplyChange(picker.Change{})
	require.NoError(t, err)
	assert.Equal(t, picker.Date{Year: 1380, Month: 9, Day: 20}, got)

	current, err := c.Date()
	require.NoError(t, err)
	assert.Equal(t, got, current)
}

func TestComposer_UnknownMonthDoesNotCommit(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1400, Month: 3, Day: 5})
	before := c.State()

	_, err := c.ApplyChange(picker.MonthChange("January"))
	require.Error(t, err)
	assert.ErrorIs(t, err, picker.ErrUnknownMonth)
	assert.Equal(t, before, c.State(), "state must stay untouched on error")
}

// TestComposer_PermissiveDays documents that no calendar validation happens by
// default: day 31 of Mehr (a 30-day month) is emitted as is.
func TestComposer_PermissiveDays(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1400, Month: 7, Day: 1})

	got, err := c.ApplyChange(picker.DayChange(31))
	require.NoError(t, err)
	assert.Equal(t, picker.Date{Year: 1400, Month: 7, Day: 31}, got)
	assert.Equal(t, 31, c.DayCount())
}

func TestComposer_ClampDays(t *testing.T) {
	seed := picker.Date{Year: 1400, Month: 1, Day: 31}
	c, err := picker.NewComposer(picker.Options{InitialDate: &seed, ClampDays: true})
	require.NoError(t, err)
	assert.Equal(t, 31, c.DayCount())

	got, err := c.ApplyChange(picker.MonthChange("مهر"))
	require.NoError(t, err)
	assert.Equal(t, picker.Date{Year: 1400, Month: 7, Day: 30}, got)
	assert.Equal(t, 30, c.State().Day)
	assert.Equal(t, 30, c.DayCount())

	got, err = c.ApplyChange(picker.MonthChange("اسفند"))
	require.NoError(t, err)
	assert.Equal(t, 29, got.Day, "Esfand 1400 has 29 days")

	got, err = c.ApplyChange(picker.YearChange(1399))
	require.NoError(t, err)
	assert.Equal(t, 29, got.Day, "a clamped day is not restored when the month grows")
	assert.Equal(t, 30, c.DayCount(), "Esfand 1399 has 30 days")
}

func TestComposer_ApplyDisplay(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1370, Month: 1, Day: 1})

	got, err := c.ApplyDisplay(picker.ColumnYear, "۱۳۹۰")
	require.NoError(t, err)
	assert.Equal(t, 1390, got.Year)

	got, err = c.ApplyDisplay(picker.ColumnMonth, "تیر")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Month)

	got, err = c.ApplyDisplay(picker.ColumnDay, digits.FormatNumber(10))
	require.NoError(t, err)
	assert.Equal(t, picker.Date{Year: 1390, Month: 4, Day: 10}, got)

	// Latin labels are accepted too.
	got, err = c.ApplyDisplay(picker.ColumnDay, "12")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Day)

	assert.Equal(t, picker.Selection{Year: 1390, MonthName: "تیر", Day: 12}, c.State(),
		"registers hold numeric values, not display glyphs")
}

func TestComposer_ApplyDisplay_Errors(t *testing.T) {
	c := newComposer(t, picker.Date{Year: 1370, Month: 1, Day: 1})
	before := c.State()

	_, err := c.ApplyDisplay(picker.ColumnYear, "abc")
	assert.ErrorIs(t, err, digits.ErrMalformedNumeral)

	_, err = c.ApplyDisplay(picker.ColumnDay, "")
	assert.ErrorIs(t, err, digits.ErrMalformedNumeral)

	_, err = c.ApplyDisplay(picker.Column(7), "1")
	assert.ErrorIs(t, err, picker.ErrUnknownColumn)

	assert.Equal(t, before, c.State())
}

func TestComposer_CustomMonthNamesWithDigits(t *testing.T) {
	months := picker.MonthNames{"M1", "M2", "M3"}
	seed := picker.Date{Year: 1400, Month: 3, Day: 2}
	c, err := picker.NewComposer(picker.Options{MonthNames: months, InitialDate: &seed})
	require.NoError(t, err)

	// The month column displays "M۲" for "M2".
	got, err := c.ApplyDisplay(picker.ColumnMonth, picker.MonthLabels(months)[1])
	require.NoError(t, err)
	assert.Equal(t, 2, got.Month)
	assert.Equal(t, "M2", c.State().MonthName)
}

func TestNewComposer_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts picker.Options
		want error
	}{
		{
			name: "InvertedRange",
			opts: picker.Options{YearRange: picker.YearRange{Start: 1400, End: 1300}},
			want: picker.ErrInvalidRange,
		},
		{
			name: "DuplicateMonths",
			opts: picker.Options{MonthNames: picker.MonthNames{"a", "b", "a"}},
			want: picker.ErrDuplicateMonth,
		},
		{
			name: "InitialMonthOutOfList",
			opts: picker.Options{InitialDate: &picker.Date{Year: 1370, Month: 13, Day: 1}},
			want: picker.ErrMonthNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := picker.NewComposer(tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSelection_ApplyIsPure(t *testing.T) {
	s := picker.Selection{Year: 1400, MonthName: "فروردین", Day: 1}

	next, d, err := s.Apply(picker.YearChange(1401), picker.DefaultMonthNames())
	require.NoError(t, err)

	assert.Equal(t, picker.Date{Year: 1401, Month: 1, Day: 1}, d)
	assert.Equal(t, 1401, next.Year)
	assert.Equal(t, 1400, s.Year, "receiver must not change")
}

func TestColumn_String(t *testing.T) {
	assert.Equal(t, "year", picker.ColumnYear.String())
	assert.Equal(t, "month", picker.ColumnMonth.String())
	assert.Equal(t, "day", picker.ColumnDay.String())
	assert.Equal(t, "column(9)", picker.Column(9).String())
}
