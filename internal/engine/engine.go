package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-jalali-picker/internal/config"
	"github.com/tartampluch/go-jalali-picker/internal/jalali"
	"github.com/tartampluch/go-jalali-picker/internal/picker"
)

// Exporter turns a picked Jalali date into calendar and contact documents.
type Exporter struct {
	Clock Clock // Interface for time mocking.

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	FormatSummary func(label string, age int) string
}

// Occurrences projects d onto the previous, current and next Jalali year.
// Years before d.Year are skipped.
func (e *Exporter) Occurrences(label string, d picker.Date) ([]Occurrence, error) {
	if jalali.DaysInMonth(d.Year, d.Month) == 0 {
		return nil, fmt.Errorf("%w: %d", jalali.ErrInvalidMonth, d.Month)
	}

	currentYear, _, _ := jalali.FromTime(e.Clock.Now())
	uidBase := uidFor(label, d)

	var out []Occurrence
	for y := currentYear - config.ICalYearsBack; y <= currentYear+config.ICalYearsNext; y++ {
		if y < d.Year {
			continue
		}
		// 30 Esfand falls on 29 Esfand in common years.
		day := jalali.Clamp(y, d.Month, d.Day)
		out = append(out, Occurrence{
			UID:        uidBase,
			JalaliYear: y,
			Day:        day,
			Date:       jalali.ToTime(y, d.Month, day),
			Age:        y - d.Year,
		})
	}
	return out, nil
}

// BuildCalendar renders the occurrences of d as an iCalendar feed of all-day events.
func (e *Exporter) BuildCalendar(ctx context.Context, label string, d picker.Date) ([]byte, []Occurrence, error) {
	start := time.Now()

	occurrences, err := e.Occurrences(label, d)
	if err != nil {
		return nil, nil, err
	}

	if len(occurrences) == 0 {
		var buf bytes.Buffer
		// A valid VCALENDAR keeps clients from flagging the feed as broken.
		buf.WriteString(config.StubVCalendar)
		return buf.Bytes(), nil, nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(e.Clock.Now().UTC())

	for _, occ := range occurrences {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, occ.UID, occ.JalaliYear, config.ICalDomain))
		event.Props.SetText(config.PropSummary, e.summary(label, occ.Age))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(occ.Date)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDate, d.String(),
		config.LogKeyEvents, len(occurrences),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), occurrences, nil
}

// BuildContact renders a vCard 4.0 whose BDAY is the Gregorian form of d.
func (e *Exporter) BuildContact(label string, d picker.Date) ([]byte, error) {
	if err := jalali.Validate(d.Year, d.Month, d.Day); err != nil {
		return nil, err
	}

	card := make(vcard.Card)
	card.SetValue(vcard.FieldFormattedName, label)
	card.SetValue(vcard.FieldBirthday, jalali.ToTime(d.Year, d.Month, d.Day).Format(config.DateFormatBasic))
	card.SetValue(vcard.FieldNote, fmt.Sprintf(config.VCardNoteFormat, d.String()))
	vcard.ToV4(card)

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
	}
	return buf.Bytes(), nil
}

// summary returns the localized event title, or the built-in fallback.
func (e *Exporter) summary(label string, age int) string {
	if e.FormatSummary != nil {
		if s := e.FormatSummary(label, age); s != "" {
			return s
		}
	}
	if age > 0 {
		return fmt.Sprintf(config.FallbackSummaryAge, label, age)
	}
	return fmt.Sprintf(config.FallbackSummary, label)
}

// uidFor derives a deterministic identifier so refreshed feeds keep event identity.
func uidFor(label string, d picker.Date) string {
	input := fmt.Sprintf(config.FormatHashInput, label, d.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
