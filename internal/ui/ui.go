package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-jalali-picker/internal/config"
	"github.com/tartampluch/go-jalali-picker/internal/digits"
	"github.com/tartampluch/go-jalali-picker/internal/engine"
	"github.com/tartampluch/go-jalali-picker/internal/jalali"
	"github.com/tartampluch/go-jalali-picker/internal/picker"
	"github.com/tartampluch/go-jalali-picker/internal/server"
)

// PickerApp encapsulates the UI state, preferences, and the export pipeline.
type PickerApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.FeedServer
	Clock  engine.Clock // Injected clock for testability

	SupportedLanguages []string

	Picker *WheelPicker

	// current is the last date emitted by the picker or restored from preferences.
	current *picker.Date

	pickerHolder   *fyne.Container
	selectedLabel  *widget.Label
	gregorianLabel *widget.Label
	feedLabel      *widget.Label
	settingsButton *widget.Button
	settingsWindow fyne.Window
}

// NewPickerApp constructs the application and wires dependencies.
func NewPickerApp(a fyne.App, ctx context.Context, srv *server.FeedServer) *PickerApp {
	return &PickerApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the feed server and the main UI loop.
func (app *PickerApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.buildMainWindow()
	app.Window.Show()
	app.App.Run()
}

// buildMainWindow assembles the picker, the status labels and the settings button.
func (app *PickerApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.selectedLabel = widget.NewLabel("")
	app.selectedLabel.Alignment = fyne.TextAlignCenter
	app.gregorianLabel = widget.NewLabel("")
	app.gregorianLabel.Alignment = fyne.TextAlignCenter
	app.feedLabel = widget.NewLabel("")
	app.feedLabel.TextStyle = fyne.TextStyle{Italic: true}
	app.feedLabel.Wrapping = fyne.TextWrapBreak

	app.settingsButton = widget.NewButtonWithIcon("", theme.SettingsIcon(), app.ShowSettingsWindow)

	app.pickerHolder = container.NewStack()
	if err := app.rebuildPicker(); err != nil {
		slog.Error(config.ErrPickerBuild,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}

	if d, ok := app.lastDate(); ok {
		slog.Info(config.MsgPrefsRestored,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyDate, d.String())
		app.current = &d
		app.export(d)
	}

	footer := container.NewVBox(
		app.selectedLabel,
		app.gregorianLabel,
		app.feedLabel,
		app.settingsButton,
	)
	w.SetContent(container.NewPadded(container.NewBorder(nil, footer, nil, nil, app.pickerHolder)))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()

	app.refreshTexts()
}

// refreshTexts re-renders every localized string of the main window.
func (app *PickerApp) refreshTexts() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.settingsButton.SetText(app.GetMsg(config.TKeyBtnSettings))
	app.feedLabel.SetText(app.GetMsgData(config.TKeyLblFeed, map[string]any{
		"URL": app.Server.URL(config.RouteCalendar),
	}))

	if app.current == nil {
		app.selectedLabel.SetText(app.GetMsg(config.TKeyLblNoSelection))
		app.gregorianLabel.SetText("")
		return
	}
	app.showDate(*app.current)
}

// pickerOptions reads the picker configuration from preferences.
func (app *PickerApp) pickerOptions() WheelOptions {
	opts := picker.DefaultOptions()
	opts.YearRange = picker.YearRange{
		Start: app.Preferences.IntWithFallback(config.PrefYearStart, config.DefaultYearStart),
		End:   app.Preferences.IntWithFallback(config.PrefYearEnd, config.DefaultYearEnd),
	}
	opts.ClampDays = app.Preferences.Bool(config.PrefClampDays)
	if d, ok := app.lastDate(); ok {
		opts.InitialDate = &d
	}
	return WheelOptions{Options: opts}
}

// lastDate returns the date persisted by the previous pick, if any.
func (app *PickerApp) lastDate() (picker.Date, bool) {
	year := app.Preferences.Int(config.PrefLastYear)
	if year == 0 {
		return picker.Date{}, false
	}
	return picker.Date{
		Year:  year,
		Month: app.Preferences.Int(config.PrefLastMonth),
		Day:   app.Preferences.Int(config.PrefLastDay),
	}, true
}

// rebuildPicker replaces the wheel with one built from current preferences.
// Unusable preferences fall back to the defaults.
func (app *PickerApp) rebuildPicker() error {
	p, err := NewWheelPicker(app.pickerOptions(), app.onDateChanged)
	if err != nil {
		slog.Warn(config.ErrPickerBuild,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)

		p, err = NewWheelPicker(WheelOptions{Options: picker.DefaultOptions()}, app.onDateChanged)
		if err != nil {
			return err
		}
	}

	app.Picker = p
	if app.pickerHolder != nil {
		app.pickerHolder.Objects = []fyne.CanvasObject{p}
		app.pickerHolder.Refresh()
	}
	return nil
}

// onDateChanged persists the picked date, updates the labels and republishes the feeds.
func (app *PickerApp) onDateChanged(d picker.Date) {
	app.Preferences.SetInt(config.PrefLastYear, d.Year)
	app.Preferences.SetInt(config.PrefLastMonth, d.Month)
	app.Preferences.SetInt(config.PrefLastDay, d.Day)

	app.current = &d
	if app.selectedLabel != nil {
		app.showDate(d)
	}
	app.export(d)
}

// showDate renders d and its Gregorian equivalent in the status labels.
func (app *PickerApp) showDate(d picker.Date) {
	app.selectedLabel.SetText(app.GetMsgData(config.TKeyLblSelected, map[string]any{
		"Date": app.formatDate(d),
	}))

	if err := jalali.Validate(d.Year, d.Month, d.Day); err != nil {
		app.gregorianLabel.SetText("")
		return
	}
	greg := jalali.ToTime(d.Year, d.Month, d.Day).Format(config.DateFormatISO)
	app.gregorianLabel.SetText(app.GetMsgData(config.TKeyLblGregorian, map[string]any{
		"Date": app.formatNumeral(greg),
	}))
}

// formatDate renders d with the digits of the active language.
func (app *PickerApp) formatDate(d picker.Date) string {
	return app.formatNumeral(d.String())
}

func (app *PickerApp) formatNumeral(s string) string {
	if app.Language() == config.LangFarsi {
		return digits.ToFarsiDigits(s)
	}
	return s
}

// export builds both documents for d and hands them to the feed server.
// A date the calendar cannot hold (31 Mehr) still yields a feed but no contact.
func (app *PickerApp) export(d picker.Date) {
	label := app.Preferences.StringWithFallback(config.PrefLabel, config.DefaultContactName)
	exp := &engine.Exporter{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}

	if ics, _, err := exp.BuildCalendar(app.Ctx, label, d); err != nil {
		slog.Warn(config.ErrExportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyRoute, config.RouteCalendar,
			config.LogKeyDate, d.String(),
			config.LogKeyError, err)
	} else {
		app.Server.UpdateCalendar(ics)
	}

	if card, err := exp.BuildContact(label, d); err != nil {
		slog.Warn(config.ErrExportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyRoute, config.RouteContact,
			config.LogKeyDate, d.String(),
			config.LogKeyError, err)
	} else {
		app.Server.UpdateContact(card)
	}
}

// buildSummaryFormatter returns a closure that localizes the event summary.
// An empty result lets the engine use its built-in fallback.
func (app *PickerApp) buildSummaryFormatter() func(label string, age int) string {
	return func(label string, age int) string {
		if app.Localizer == nil {
			slog.Debug(config.ErrLocNotInit, config.LogKeyComponent, config.CompUI)
			return ""
		}

		key := config.TKeyEvtSummary
		data := map[string]any{"Name": label}
		if age > 0 {
			key = config.TKeyEvtSummaryAge
			data["Age"] = app.formatNumeral(fmt.Sprint(age))
		}

		msg := app.GetMsgData(key, data)
		if msg == key {
			return ""
		}
		return msg
	}
}
