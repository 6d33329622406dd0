package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-jalali-picker/internal/config"
	"github.com/tartampluch/go-jalali-picker/internal/digits"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect     *widget.Select
	entryYearStart *DigitEntry
	entryYearEnd   *DigitEntry
	checkClamp     *widget.Check
	entryPort      *DigitEntry
	entryLabel     *widget.Entry
}

// ShowSettingsWindow displays the configuration window.
func (app *PickerApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// --- General Section (Language, Port, Label) ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	itemLabel := widget.NewFormItem(app.GetMsg(config.TKeyLblLabel), sw.entryLabel)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "",
		widget.NewForm(itemLang, itemPort, itemLabel))

	// --- Picker Section (Year range, Day clamp) ---
	itemStart := widget.NewFormItem(app.GetMsg(config.TKeyLblYearStart), sw.entryYearStart)
	itemEnd := widget.NewFormItem(app.GetMsg(config.TKeyLblYearEnd), sw.entryYearEnd)
	itemEnd.HintText = app.GetMsg(config.TKeyHelpYears)

	pickerCard := widget.NewCard(app.GetMsg(config.TKeyLblPicker), "",
		container.NewVBox(widget.NewForm(itemStart, itemEnd), sw.checkClamp))

	// --- Actions ---
	saveAction := func() {
		if err := app.validateSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		pickerCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// newSettingsWidgets creates the form controls pre-filled from preferences.
func (app *PickerApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Language())

	sw.entryYearStart = NewDigitEntry()
	sw.entryYearStart.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefYearStart, config.DefaultYearStart)))
	sw.entryYearStart.Validator = app.validateYear

	sw.entryYearEnd = NewDigitEntry()
	sw.entryYearEnd.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefYearEnd, config.DefaultYearEnd)))
	sw.entryYearEnd.Validator = app.validateYear

	sw.checkClamp = widget.NewCheck(app.GetMsg(config.TKeyLblClamp), nil)
	sw.checkClamp.Checked = app.Preferences.Bool(config.PrefClampDays)

	sw.entryPort = NewDigitEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.entryLabel = widget.NewEntry()
	sw.entryLabel.SetText(app.Preferences.StringWithFallback(config.PrefLabel, config.DefaultContactName))

	return sw
}

// validateYear accepts a year within MinYear..MaxYear in Latin or Persian digits.
func (app *PickerApp) validateYear(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrYearReq))
	}
	year, err := digits.PersianToLatinNumber(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrYearNum))
	}
	if year < config.MinYear || year > config.MaxYear {
		return errors.New(app.GetMsgData(config.TKeyErrYearRange, map[string]any{
			"Min": config.MinYear,
			"Max": config.MaxYear,
		}))
	}
	return nil
}

// validatePort requires a number within the TCP port range.
func (app *PickerApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := digits.PersianToLatinNumber(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// validateSettings checks every field, then the order and length of the year range.
func (app *PickerApp) validateSettings(sw *settingsWidgets) error {
	for _, e := range []*DigitEntry{sw.entryYearStart, sw.entryYearEnd, sw.entryPort} {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	start, _ := sw.entryYearStart.Number()
	end, _ := sw.entryYearEnd.Number()
	if start > end {
		return errors.New(app.GetMsg(config.TKeyErrYearOrder))
	}
	if end-start+1 > config.MaxYearSpan {
		return errors.New(app.GetMsgData(config.TKeyErrYearSpan, map[string]any{"Max": config.MaxYearSpan}))
	}
	return nil
}

// saveSettings persists the form and rebuilds the picker.
// A new port takes effect on the next start.
func (app *PickerApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}

	if start, err := sw.entryYearStart.Number(); err == nil {
		app.Preferences.SetInt(config.PrefYearStart, start)
	}
	if end, err := sw.entryYearEnd.Number(); err == nil {
		app.Preferences.SetInt(config.PrefYearEnd, end)
	}
	app.Preferences.SetBool(config.PrefClampDays, sw.checkClamp.Checked)

	if port, err := sw.entryPort.Number(); err == nil {
		app.Preferences.SetString(config.PrefServerPort, strconv.Itoa(port))
	}
	app.Preferences.SetString(config.PrefLabel, sw.entryLabel.Text)

	app.UpdateLocalizer()
	if err := app.rebuildPicker(); err != nil {
		slog.Error(config.ErrPickerBuild,
			config.LogKeyComponent, config.CompUISet,
			config.LogKeyError, err)
	}
	app.refreshTexts()

	if app.current != nil {
		app.export(*app.current)
	}
}
