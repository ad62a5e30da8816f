package booking

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// slotsPerDay hourly slots starting at slotFirstHour. The candidate universe
// is fixed; the backend's freeSlots decide which of them are selectable.
const (
	slotFirstHour = 9
	slotsPerDay   = 10
)

// Entry is the normalized availability for one calendar day.
type Entry struct {
	Date      string // YYYY-MM-DD
	FreeSlots []string
	Available bool
}

// Table answers availability queries for a barber. A nil Table answers
// everything as unavailable, which is what the wizard needs while a fetch is
// pending or after one failed: unknown means closed.
type Table struct {
	entries map[string]Entry
	order   []string
}

// NewTable normalizes raw entries: malformed dates are dropped, duplicate
// slots within a day are removed (first occurrence wins), days are ordered
// chronologically and Available is recomputed from the slot list.
func NewTable(entries []Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		date, ok := normalizeDate(e.Date)
		if !ok {
			continue
		}
		slots := dedupe(e.FreeSlots)
		if prev, exists := t.entries[date]; exists {
			slots = dedupe(append(prev.FreeSlots, slots...))
		} else {
			t.order = append(t.order, date)
		}
		t.entries[date] = Entry{Date: date, FreeSlots: slots, Available: len(slots) > 0}
	}
	sort.Strings(t.order)
	return t
}

// DayAvailable reports whether date has at least one free slot.
func (t *Table) DayAvailable(date string) bool {
	if t == nil {
		return false
	}
	e, ok := t.entries[date]
	return ok && e.Available
}

// SlotFree reports whether slot is free on date.
func (t *Table) SlotFree(date, slot string) bool {
	if t == nil {
		return false
	}
	e, ok := t.entries[date]
	if !ok {
		return false
	}
	for _, s := range e.FreeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// FreeSlots returns the free slots for date, nil when none are known.
func (t *Table) FreeSlots(date string) []string {
	if t == nil {
		return nil
	}
	e, ok := t.entries[date]
	if !ok {
		return nil
	}
	out := make([]string, len(e.FreeSlots))
	copy(out, e.FreeSlots)
	return out
}

// Days returns the known days in chronological order.
func (t *Table) Days() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.order))
	for _, d := range t.order {
		out = append(out, t.entries[d])
	}
	return out
}

// SlotUniverse returns the fixed candidate slots, 09:00 through 18:00.
// The UI renders all of them and disables the ones missing from FreeSlots.
func SlotUniverse() []string {
	out := make([]string, 0, slotsPerDay)
	for i := 0; i < slotsPerDay; i++ {
		out = append(out, time.Date(0, 1, 1, slotFirstHour+i, 0, 0, 0, time.UTC).Format("15:04"))
	}
	return out
}

// normalizeDate accepts plain dates and RFC3339 timestamps (the backend
// stores Mongo dates) and reduces both to YYYY-MM-DD.
func normalizeDate(s string) (string, bool) {
	if len(s) >= len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

func dedupe(slots []string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
