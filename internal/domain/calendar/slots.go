package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dayplanner/core/internal/domain/entities"
)

// SlotsPerDay is the number of 15-minute intervals in one day.
const SlotsPerDay = 96

// Slot is one 15-minute interval of a day. Event is non-nil when an event
// starts in this slot.
type Slot struct {
	Key   string          `json:"key"` // HH:MM:00
	Event *entities.Event `json:"event,omitempty"`
}

// DayDetail is the render model for a single day.
type DayDetail struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// slotKey normalizes a start time to the HH:MM:00 slot form.
func slotKey(startTime string) string {
	if len(startTime) == 5 {
		return startTime + ":00"
	}
	return startTime
}

// BuildDaySlots enumerates the 96 slots of a day and maps each to the event
// starting there, if any. When two events share a start time the later one
// in iteration order wins; the store does not forbid that collision.
func BuildDaySlots(date string, events []*entities.Event) DayDetail {
	byStart := make(map[string]*entities.Event, len(events))
	for _, ev := range events {
		byStart[slotKey(ev.StartTime)] = ev
	}

	slots := make([]Slot, 0, SlotsPerDay)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 15 {
			key := fmt.Sprintf("%02d:%02d:00", hour, minute)
			slots = append(slots, Slot{Key: key, Event: byStart[key]})
		}
	}

	return DayDetail{Date: date, Slots: slots}
}

// NextSlotEnd computes the default end time for an event started in an
// empty slot: start plus 15 minutes. Minute overflow rolls into the next
// hour and hour 24 wraps to midnight; the date is never incremented, so a
// 23:45 start yields 00:00 on the same date.
func NextSlotEnd(start string) (string, error) {
	parts := strings.SplitN(start, ":", 3)
	if len(parts) < 2 {
		return "", fmt.Errorf("malformed slot time %q", start)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("malformed slot hour %q", start)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed slot minute %q", start)
	}

	minute += 15
	if minute >= 60 {
		minute -= 60
		hour = (hour + 1) % 24
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// LocalDateString formats the clicked cell's local calendar components as
// YYYY-MM-DD. Deriving the string from UTC instead shifts the day near
// midnight in non-UTC timezones.
func LocalDateString(year int, month int, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
