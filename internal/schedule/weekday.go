// Package schedule holds the pure weekly class schedule logic: weekday
// normalization, next occurrence resolution and the per-day grid projection.
package schedule

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownWeekday = errors.New("unknown weekday")

// Weekday uses the time.Weekday numbering: 0 is Sunday, 6 is Saturday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AllWeekdays lists the days in the order the grid renders them.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var labels = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var aliases = map[string]Weekday{
	"domingo": Sunday, "dom": Sunday, "sunday": Sunday, "sun": Sunday,
	"lunes": Monday, "lun": Monday, "monday": Monday, "mon": Monday,
	"martes": Tuesday, "mar": Tuesday, "tuesday": Tuesday, "tue": Tuesday,
	"miercoles": Wednesday, "mie": Wednesday, "wednesday": Wednesday, "wed": Wednesday,
	"jueves": Thursday, "jue": Thursday, "thursday": Thursday, "thu": Thursday,
	"viernes": Friday, "vie": Friday, "friday": Friday, "fri": Friday,
	"sabado": Saturday, "sab": Saturday, "saturday": Saturday, "sat": Saturday,
}

// ParseWeekday maps a free text day label ("Miércoles", " miercoles ",
// "MIE") to its Weekday. Unrecognized labels return ErrUnknownWeekday.
func ParseWeekday(label string) (Weekday, error) {
	key := foldLabel(label)
	if d, ok := aliases[key]; ok {
		return d, nil
	}
	return 0, ErrUnknownWeekday
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// Label is the canonical Spanish name stored for a slot.
func (d Weekday) Label() string {
	if !d.Valid() {
		return ""
	}
	return labels[d]
}

func (d Weekday) String() string {
	return d.Label()
}

func foldLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
