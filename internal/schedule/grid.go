package schedule

import (
	"fmt"
	"slices"
	"strings"
)

const UnassignedProfessor = "Sin asignar"

type SlotView struct {
	SlotID    int    `json:"slot_id"`
	ClassID   int    `json:"class_id"`
	Name      string `json:"name"`
	Start     string `json:"start"`
	TimeRange string `json:"time_range"`
	Professor string `json:"professor"`
	Enrolled  int    `json:"enrolled"`
	Capacity  *int   `json:"capacity,omitempty"`
	Occupancy string `json:"occupancy"`
}

type DayColumn struct {
	Day   Weekday    `json:"day"`
	Label string     `json:"label"`
	Slots []SlotView `json:"slots"`
}

// Grid buckets slot views by weekday. Days always holds all seven keys.
// Slots whose day label does not parse land in Unknown instead of any day.
type Grid struct {
	Days    map[Weekday][]SlotView
	Unknown []SlotView
}

// Project builds the weekly grid from slots and per slot enrollment counts.
// It does not mutate its inputs and returns the same grid for the same input.
func Project(slots []Slot, counts map[int]int) Grid {
	g := Grid{Days: make(map[Weekday][]SlotView, 7)}
	for d := Sunday; d <= Saturday; d++ {
		g.Days[d] = []SlotView{}
	}

	for _, s := range slots {
		view := newSlotView(s, counts[s.ID])
		day, err := ParseWeekday(s.Day)
		if err != nil {
			g.Unknown = append(g.Unknown, view)
			continue
		}
		g.Days[day] = append(g.Days[day], view)
	}

	for d, views := range g.Days {
		slices.SortStableFunc(views, func(a, b SlotView) int {
			return strings.Compare(a.Start, b.Start)
		})
		g.Days[d] = views
	}

	return g
}

// Columns returns the days Monday first, the order the management UI shows.
func (g Grid) Columns() []DayColumn {
	cols := make([]DayColumn, 0, len(AllWeekdays))
	for _, d := range AllWeekdays {
		cols = append(cols, DayColumn{Day: d, Label: d.Label(), Slots: g.Days[d]})
	}
	return cols
}

func newSlotView(s Slot, enrolled int) SlotView {
	start := padClock(s.Start)
	end := padClock(s.End)

	professor := UnassignedProfessor
	if s.Professor != nil && strings.TrimSpace(*s.Professor) != "" {
		professor = *s.Professor
	}

	return SlotView{
		SlotID:    s.ID,
		ClassID:   s.ClassID,
		Name:      s.ClassName,
		Start:     start,
		TimeRange: start + " - " + end,
		Professor: professor,
		Enrolled:  enrolled,
		Capacity:  s.Capacity,
		Occupancy: Occupancy(enrolled, s.Capacity),
	}
}

// Occupancy renders "enrolled/capacity", or just "enrolled" when unlimited.
func Occupancy(enrolled int, capacity *int) string {
	if capacity == nil {
		return fmt.Sprintf("%d", enrolled)
	}
	return fmt.Sprintf("%d/%d", enrolled, *capacity)
}

func padClock(raw string) string {
	if c, err := ParseClock(raw); err == nil {
		return c.String()
	}
	return strings.TrimSpace(raw)
}
