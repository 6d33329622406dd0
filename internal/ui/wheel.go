package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-jalali-picker/internal/config"
	"github.com/tartampluch/go-jalali-picker/internal/picker"
)

// defaultSelectLineColor is the lime accent drawn under each column.
var defaultSelectLineColor = color.NRGBA{R: 0xA3, G: 0xE6, B: 0x35, A: 0xFF}

// WheelOptions configures a WheelPicker. Zero styling fields use the defaults.
type WheelOptions struct {
	picker.Options

	SelectLineColor color.Color
	SelectLineSize  float32
}

// WheelPicker is a three-column Jalali date selector (year, month, day).
// Column labels use Persian digits; OnChanged always receives Latin/numeric dates.
type WheelPicker struct {
	widget.BaseWidget

	// OnChanged is called once per user selection with the composed date.
	OnChanged func(picker.Date)

	composer    *picker.Composer
	yearLabels  []string
	monthLabels []string
	dayLabels   []string

	years  *widget.List
	months *widget.List
	days   *widget.List

	lineColor color.Color
	lineSize  float32

	// silent suppresses OnChanged while the selection is moved programmatically.
	silent bool
}

// NewWheelPicker creates the widget and selects the initial date.
func NewWheelPicker(opts WheelOptions, onChanged func(picker.Date)) (*WheelPicker, error) {
	composer, err := picker.NewComposer(opts.Options)
	if err != nil {
		return nil, err
	}

	effective := composer.Options()
	p := &WheelPicker{
		OnChanged:   onChanged,
		composer:    composer,
		yearLabels:  picker.YearLabels(effective.YearRange),
		monthLabels: picker.MonthLabels(effective.MonthNames),
		dayLabels:   picker.DayLabels(composer.DayCount()),
		lineColor:   opts.SelectLineColor,
		lineSize:    opts.SelectLineSize,
	}
	if p.lineColor == nil {
		p.lineColor = defaultSelectLineColor
	}
	if p.lineSize <= 0 {
		p.lineSize = config.DefaultLineSize
	}

	p.years = p.newColumn(picker.ColumnYear, func() []string { return p.yearLabels })
	p.months = p.newColumn(picker.ColumnMonth, func() []string { return p.monthLabels })
	p.days = p.newColumn(picker.ColumnDay, func() []string { return p.dayLabels })

	p.ExtendBaseWidget(p)
	p.syncSelection()
	return p, nil
}

// Date returns the date composed from the current selection.
func (p *WheelPicker) Date() (picker.Date, error) {
	return p.composer.Date()
}

// SetDate moves all three columns to d without calling OnChanged.
func (p *WheelPicker) SetDate(d picker.Date) error {
	name, err := p.composer.Options().MonthNames.Name(d.Month)
	if err != nil {
		return err
	}
	if _, err := p.composer.ApplyChange(picker.Change{Year: &d.Year, MonthName: &name, Day: &d.Day}); err != nil {
		return err
	}
	p.refreshDays()
	p.syncSelection()
	return nil
}

// CreateRenderer lays the three columns side by side, each with a select line below.
func (p *WheelPicker) CreateRenderer() fyne.WidgetRenderer {
	row := container.NewGridWithColumns(config.PickerColumns,
		p.withSelectLine(p.years),
		p.withSelectLine(p.months),
		p.withSelectLine(p.days),
	)
	return widget.NewSimpleRenderer(row)
}

func (p *WheelPicker) withSelectLine(list *widget.List) fyne.CanvasObject {
	line := canvas.NewRectangle(p.lineColor)
	line.SetMinSize(fyne.NewSize(0, p.lineSize))
	return container.NewBorder(nil, line, nil, nil, list)
}

func (p *WheelPicker) newColumn(col picker.Column, labels func() []string) *widget.List {
	list := widget.NewList(
		func() int { return len(labels()) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Alignment = fyne.TextAlignCenter
			return l
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if ls := labels(); id < len(ls) {
				o.(*widget.Label).SetText(ls[id])
			}
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		p.handleSelect(col, labels(), id)
	}
	return list
}

// handleSelect decodes the selected label and emits the composed date.
func (p *WheelPicker) handleSelect(col picker.Column, labels []string, id widget.ListItemID) {
	if p.silent || id < 0 || id >= len(labels) {
		return
	}

	d, err := p.composer.ApplyDisplay(col, labels[id])
	if err != nil {
		slog.Warn(config.ErrColumnApply,
			config.LogKeyComponent, config.CompWidget,
			config.LogKeyColumn, col.String(),
			config.LogKeyValue, labels[id],
			config.LogKeyError, err)
		return
	}

	// With day clamping the day column follows the month length.
	if col != picker.ColumnDay && p.refreshDays() {
		p.syncSelection()
	}

	slog.Debug(config.MsgDateChanged,
		config.LogKeyComponent, config.CompWidget,
		config.LogKeyColumn, col.String(),
		config.LogKeyDate, d.String())

	if p.OnChanged != nil {
		p.OnChanged(d)
	}
}

// refreshDays rebuilds the day labels and reports whether their count changed.
func (p *WheelPicker) refreshDays() bool {
	n := p.composer.DayCount()
	if n == len(p.dayLabels) {
		return false
	}
	p.dayLabels = picker.DayLabels(n)
	p.days.Refresh()
	return true
}

// syncSelection highlights the composer state in every column.
func (p *WheelPicker) syncSelection() {
	p.silent = true
	defer func() { p.silent = false }()

	opts := p.composer.Options()
	idx := picker.IndexOf(p.composer.State(), opts, len(p.dayLabels))
	selectOrClear(p.years, idx.Year)
	selectOrClear(p.months, idx.Month)
	selectOrClear(p.days, idx.Day)
}

func selectOrClear(list *widget.List, id int) {
	if id < 0 {
		list.UnselectAll()
		return
	}
	list.Select(id)
}
