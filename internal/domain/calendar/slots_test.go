package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayplanner/core/internal/domain/entities"
)

func TestBuildDaySlots_Enumeration(t *testing.T) {
	detail := BuildDaySlots("2024-03-04", nil)

	require.Len(t, detail.Slots, SlotsPerDay)
	assert.Equal(t, "00:00:00", detail.Slots[0].Key)
	assert.Equal(t, "00:15:00", detail.Slots[1].Key)
	assert.Equal(t, "12:00:00", detail.Slots[48].Key)
	assert.Equal(t, "23:45:00", detail.Slots[95].Key)

	for _, slot := range detail.Slots {
		assert.Nil(t, slot.Event)
	}
}

func TestBuildDaySlots_Occupancy(t *testing.T) {
	events := []*entities.Event{
		{ID: 1, Title: "Standup", Date: "2024-03-04", StartTime: "09:00", EndTime: "09:15"},
		{ID: 2, Title: "Lunch", Date: "2024-03-04", StartTime: "12:30:00", EndTime: "12:45:00"},
	}

	detail := BuildDaySlots("2024-03-04", events)

	slot := detail.Slots[36] // 09:00
	require.NotNil(t, slot.Event)
	assert.Equal(t, "Standup", slot.Event.Title)

	slot = detail.Slots[50] // 12:30
	require.NotNil(t, slot.Event)
	assert.Equal(t, "Lunch", slot.Event.Title)
}

func TestBuildDaySlots_StartTimeCollision(t *testing.T) {
	// Two events sharing a start time is not forbidden; the later one in
	// iteration order occupies the slot.
	events := []*entities.Event{
		{ID: 1, Title: "First", StartTime: "09:00"},
		{ID: 2, Title: "Second", StartTime: "09:00"},
	}

	detail := BuildDaySlots("2024-03-04", events)

	slot := detail.Slots[36]
	require.NotNil(t, slot.Event)
	assert.Equal(t, "Second", slot.Event.Title)
}

func TestNextSlotEnd(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"09:00", "09:15"},
		{"10:45", "11:00"},
		{"00:00", "00:15"},
		{"09:00:00", "09:15"},
		{"23:45", "00:00"}, // midnight wrap, date stays the same
	}

	for _, tt := range tests {
		got, err := NextSlotEnd(tt.start)
		require.NoError(t, err, "start %q", tt.start)
		assert.Equal(t, tt.want, got, "start %q", tt.start)
	}
}

func TestNextSlotEnd_Malformed(t *testing.T) {
	for _, start := range []string{"", "9", "ab:cd", "0900"} {
		_, err := NextSlotEnd(start)
		assert.Error(t, err, "start %q", start)
	}
}

func TestLocalDateString(t *testing.T) {
	assert.Equal(t, "2024-03-04", LocalDateString(2024, 3, 4))
	assert.Equal(t, "2024-12-31", LocalDateString(2024, 12, 31))
}
