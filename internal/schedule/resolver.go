package schedule

import "time"

const minutesPerDay = 24 * 60

// Occurrence is a concrete upcoming session of a weekly slot.
type Occurrence struct {
	Slot     Slot
	At       time.Time
	End      time.Time
	DayDelta int
}

// FindNext returns the slot whose next session starts soonest at or after
// now. A slot that already started today rolls over to the same day next
// week. Ties keep input order. Slots with an unknown weekday or malformed
// start time are skipped; ok is false when nothing is left.
func FindNext(slots []Slot, now time.Time) (occ Occurrence, ok bool) {
	var best time.Duration

	for _, s := range slots {
		day, err := ParseWeekday(s.Day)
		if err != nil {
			continue
		}
		start, err := ParseClock(s.Start)
		if err != nil {
			continue
		}

		dayDelta := (int(day) - int(now.Weekday()) + 7) % 7
		at := start.On(now.AddDate(0, 0, dayDelta))
		if dayDelta == 0 && at.Before(now) {
			dayDelta = 7
			at = start.On(now.AddDate(0, 0, dayDelta))
		}

		delta := at.Sub(now)
		if ok && delta >= best {
			continue
		}

		best = delta
		ok = true
		occ = Occurrence{Slot: s, At: at, DayDelta: dayDelta}
		if end, err := ParseClock(s.End); err == nil {
			occ.End = end.On(at)
		}
	}

	return occ, ok
}

// MinutesUntil is the whole minute distance from now to the occurrence,
// dayDelta*1440 plus the start clock difference.
func (o Occurrence) MinutesUntil(now time.Time) int {
	start := o.At.Hour()*60 + o.At.Minute()
	return o.DayDelta*minutesPerDay + start - (now.Hour()*60 + now.Minute())
}
