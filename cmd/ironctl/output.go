package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/clase"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
)

func printGrid(w io.Writer, grid *clase.GridResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, col := range grid.Days {
		fmt.Fprintf(tw, "%s\n", col.Label)
		if len(col.Slots) == 0 {
			fmt.Fprintf(tw, "  -\n")
		}
		for _, s := range col.Slots {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t#%d\n", s.TimeRange, s.Name, s.Professor, s.Occupancy, s.SlotID)
		}
	}
	if len(grid.Unknown) > 0 {
		fmt.Fprintf(tw, "Sin día\n")
		for _, s := range grid.Unknown {
			fmt.Fprintf(tw, "  %s\t%s\t#%d\n", s.TimeRange, s.Name, s.SlotID)
		}
	}
	tw.Flush()
}

func printNext(w io.Writer, next *clase.NextOccurrence) {
	if next == nil {
		fmt.Fprintln(w, "La clase no tiene horarios")
		return
	}

	when := "hoy"
	if next.DaysAhead == 1 {
		when = "mañana"
	} else if next.DaysAhead > 1 {
		when = fmt.Sprintf("en %d días", next.DaysAhead)
	}
	fmt.Fprintf(w, "%s %s, %s %s (%s)\n", next.Slot.ClassName, when, next.Day, next.At.Format("15:04"), next.Occupancy)
	for _, e := range next.Enrollments {
		fmt.Fprintf(w, "  %s\n", e.MemberName)
	}
}

func printSnapshot(w io.Writer, s *ledger.Snapshot) {
	capacity := "sin límite"
	if s.Capacity != nil {
		capacity = fmt.Sprintf("%d", *s.Capacity)
	}
	fmt.Fprintf(w, "Horario #%d: %d inscriptos, cupo %s, %d en espera\n", s.SlotID, s.Enrolled, capacity, s.Waitlist)
	if s.IsFull {
		fmt.Fprintln(w, "Cupo completo")
	}
}

func printRoster(w io.Writer, r *ledger.Roster) {
	fmt.Fprintf(w, "Horario #%d (%s)\n", r.SlotID, r.Occupancy)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range r.Enrollments {
		fmt.Fprintf(tw, "  #%d\t%s\t%s\n", e.MemberID, e.MemberName, e.MemberPhone)
	}
	tw.Flush()
}

func printWaitlist(w io.Writer, entries []ledger.WaitlistEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "La lista de espera está vacía")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%d.\t#%d\t%s\n", e.Position, e.MemberID, e.MemberName)
	}
	tw.Flush()
}
