package picker

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-jalali-picker/internal/config"
	"github.com/tartampluch/go-jalali-picker/internal/digits"
	"github.com/tartampluch/go-jalali-picker/internal/jalali"
)

// Column identifies one of the three picker columns.
type Column int

const (
	ColumnYear Column = iota
	ColumnMonth
	ColumnDay
)

func (c Column) String() string {
	switch c {
	case ColumnYear:
		return "year"
	case ColumnMonth:
		return "month"
	case ColumnDay:
		return "day"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// Selection holds the current value of each column.
// Year and Day are always in numeric form; MonthName is a label from the
// configured MonthNames.
type Selection struct {
	Year      int
	MonthName string
	Day       int
}

// Change is a partial update. Nil fields keep the previous column value.
type Change struct {
	Year      *int
	MonthName *string
	Day       *int
}

// YearChange builds a Change touching only the year column.
func YearChange(year int) Change { return Change{Year: &year} }

// MonthChange builds a Change touching only the month column.
func MonthChange(name string) Change { return Change{MonthName: &name} }

// DayChange builds a Change touching only the day column.
func DayChange(day int) Change { return Change{Day: &day} }

// Apply merges c into s and resolves the month number against months.
// s itself is not modified. On error the returned Selection equals s.
func (s Selection) Apply(c Change, months MonthNames) (Selection, Date, error) {
	next := s
	if c.Year != nil {
		next.Year = *c.Year
	}
	if c.MonthName != nil {
		next.MonthName = *c.MonthName
	}
	if c.Day != nil {
		next.Day = *c.Day
	}

	month, err := months.Number(next.MonthName)
	if err != nil {
		return s, Date{}, err
	}
	return next, Date{Year: next.Year, Month: month, Day: next.Day}, nil
}

// Composer owns the column state of a single picker instance.
// It is not safe for concurrent use; callers drive it from one event loop.
type Composer struct {
	opts  Options
	state Selection
}

// NewComposer validates opts and seeds the columns from opts.InitialDate.
func NewComposer(opts Options) (*Composer, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	initial := *opts.InitialDate
	name, err := opts.MonthNames.Name(initial.Month)
	if err != nil {
		return nil, err
	}

	return &Composer{
		opts: opts,
		state: Selection{
			Year:      initial.Year,
			MonthName: name,
			Day:       initial.Day,
		},
	}, nil
}

// Options returns the effective configuration.
func (c *Composer) Options() Options {
	return c.opts
}

// State returns the current column values.
func (c *Composer) State() Selection {
	return c.state
}

// Date returns the date composed from the current columns.
func (c *Composer) Date() (Date, error) {
	_, d, err := c.state.Apply(Change{}, c.opts.MonthNames)
	return d, err
}

// DayCount is the number of entries the day column should offer.
func (c *Composer) DayCount() int {
	if !c.opts.ClampDays {
		return config.MaxDayCount
	}
	month, err := c.opts.MonthNames.Number(c.state.MonthName)
	if err != nil {
		return config.MaxDayCount
	}
	if n := jalali.DaysInMonth(c.state.Year, month); n > 0 {
		return n
	}
	return config.MaxDayCount
}

// ApplyChange merges a partial update, commits it and returns the composed date.
// Each call replaces only the columns present in ch.
func (c *Composer) ApplyChange(ch Change) (Date, error) {
	next, d, err := c.state.Apply(ch, c.opts.MonthNames)
	if err != nil {
		return Date{}, err
	}

	if c.opts.ClampDays {
		if clamped := jalali.Clamp(d.Year, d.Month, d.Day); clamped != d.Day {
			slog.Debug(config.MsgDayClamped,
				config.LogKeyComponent, config.CompComposer,
				config.LogKeyDay, d.Day,
				config.LogKeyMaxDay, clamped)
			d.Day = clamped
			next.Day = clamped
		}
	}

	c.state = next
	slog.Debug(config.MsgColumnApplied,
		config.LogKeyComponent, config.CompComposer,
		config.LogKeyDate, d.String())
	return d, nil
}

// ApplyDisplay applies the label shown in a column. Year and day labels may use
// Persian or Latin digits; month labels must match a configured month name,
// either verbatim or as rendered by MonthLabels.
func (c *Composer) ApplyDisplay(col Column, label string) (Date, error) {
	switch col {
	case ColumnYear:
		y, err := digits.PersianToLatinNumber(label)
		if err != nil {
			return Date{}, err
		}
		return c.ApplyChange(YearChange(y))
	case ColumnMonth:
		return c.ApplyChange(MonthChange(c.monthNameFor(label)))
	case ColumnDay:
		d, err := digits.PersianToLatinNumber(label)
		if err != nil {
			return Date{}, err
		}
		return c.ApplyChange(DayChange(d))
	default:
		return Date{}, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
	}
}

// monthNameFor maps a displayed month label back to its configured name.
func (c *Composer) monthNameFor(label string) string {
	for _, name := range c.opts.MonthNames {
		if name == label || digits.ToFarsiDigits(name) == label {
			return name
		}
	}
	return label
}
