// Package digits transliterates numerals between Latin and Persian glyphs.
package digits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-jalali-picker/internal/config"
)

// ErrMalformedNumeral is returned when a string does not parse as a base-10 integer
// after transliteration.
var ErrMalformedNumeral = errors.New(config.ErrMalformedNumeral)

// Persian digit glyphs, indexed by their numeric value.
var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

const (
	persianZero = '۰'
	persianNine = '۹'
	arabicZero  = '٠'
	arabicNine  = '٩'
)

// ToFarsiDigits replaces every Latin digit in s with its Persian glyph.
// Other runes are left untouched, so the rune count is preserved.
func ToFarsiDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToLatinDigits replaces Persian and Arabic-Indic digits with Latin ones.
func ToLatinDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= persianZero && r <= persianNine:
			b.WriteRune('0' + (r - persianZero))
		case r >= arabicZero && r <= arabicNine:
			b.WriteRune('0' + (r - arabicZero))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PersianToLatinNumber coerces v to an int. Integers are already canonical and
// returned as is; strings are transliterated and parsed in base 10.
func PersianToLatinNumber[T string | int](v T) (int, error) {
	switch x := any(v).(type) {
	case int:
		return x, nil
	case string:
		n, err := strconv.Atoi(ToLatinDigits(x))
		if err != nil {
			return 0, fmt.Errorf("%w %q: %w", ErrMalformedNumeral, x, err)
		}
		return n, nil
	}
	return 0, ErrMalformedNumeral
}

// FormatNumber renders n with Persian digits.
func FormatNumber(n int) string {
	return ToFarsiDigits(strconv.Itoa(n))
}

// IsDigit reports whether r is a Latin, Persian or Arabic-Indic digit.
func IsDigit(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= persianZero && r <= persianNine) ||
		(r >= arabicZero && r <= arabicNine)
}
