package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-jalali-picker/internal/digits"
)

// DigitEntry is an Entry widget that only accepts decimal digits.
// Latin, Persian and Arabic-Indic digits are all accepted as typed.
type DigitEntry struct {
	widget.Entry
}

// NewDigitEntry creates a new instance of DigitEntry.
func NewDigitEntry() *DigitEntry {
	entry := &DigitEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops every rune that is not a digit.
// Pasted text bypasses this filter; the Validator covers that case.
func (e *DigitEntry) TypedRune(r rune) {
	if digits.IsDigit(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *DigitEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Number decodes the entry text, whichever digit script it was typed in.
func (e *DigitEntry) Number() (int, error) {
	return digits.PersianToLatinNumber(e.Text)
}
