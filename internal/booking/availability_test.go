package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTableNormalizes(t *testing.T) {
	table := NewTable([]Entry{
		{Date: "2025-06-03", FreeSlots: []string{"10:00", "09:00", "10:00"}},
		{Date: "2025-06-02T00:00:00.000Z", FreeSlots: []string{"11:00"}},
		{Date: "not-a-date", FreeSlots: []string{"09:00"}},
		{Date: "2025-06-04"},
	})

	days := table.Days()
	assert.Len(t, days, 3)
	assert.Equal(t, "2025-06-02", days[0].Date)
	assert.Equal(t, []string{"11:00"}, days[0].FreeSlots)
	assert.Equal(t, []string{"09:00", "10:00"}, days[1].FreeSlots)
	assert.True(t, days[1].Available)
	assert.False(t, days[2].Available, "day without slots is unavailable")
}

func TestTableFailsClosed(t *testing.T) {
	var table *Table
	assert.False(t, table.DayAvailable("2025-06-02"))
	assert.False(t, table.SlotFree("2025-06-02", "09:00"))
	assert.Nil(t, table.FreeSlots("2025-06-02"))
	assert.Nil(t, table.Days())

	empty := NewTable(nil)
	assert.False(t, empty.DayAvailable("2025-06-02"))
	assert.False(t, empty.SlotFree("2025-06-02", "09:00"))
}

func TestTableSlotMembership(t *testing.T) {
	table := NewTable([]Entry{
		{Date: "2025-06-02", FreeSlots: []string{"09:00", "10:00"}},
	})

	for _, slot := range SlotUniverse() {
		free := table.SlotFree("2025-06-02", slot)
		if slot == "09:00" || slot == "10:00" {
			assert.True(t, free, slot)
		} else {
			assert.False(t, free, slot)
		}
	}
	assert.False(t, table.SlotFree("2025-06-03", "09:00"), "unknown day has no slots")
}

func TestSlotUniverse(t *testing.T) {
	u := SlotUniverse()
	assert.Len(t, u, 10)
	assert.Equal(t, "09:00", u[0])
	assert.Equal(t, "18:00", u[len(u)-1])
}
