package engine

import "time"

// Occurrence is one yearly recurrence of a picked Jalali date, projected onto the
// Gregorian calendar.
type Occurrence struct {
	// UID is a stable identifier derived from the label and the picked date.
	UID string

	// JalaliYear is the year of this recurrence.
	JalaliYear int

	// Day is the Jalali day actually used. It differs from the picked day when the
	// month is shorter in JalaliYear (30 Esfand in a common year).
	Day int

	// Date is the Gregorian date of the recurrence.
	Date time.Time

	// Age is JalaliYear minus the picked year.
	Age int
}
