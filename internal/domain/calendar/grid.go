package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/dayplanner/core/internal/domain/entities"
)

// Holiday color classes derived from the feed's summary text.
const (
	HolidayClassPoya    = "poya"
	HolidayClassFull    = "full"
	HolidayClassPartial = "partial"
)

// DayCell is one day of the month grid.
type DayCell struct {
	Day       int               `json:"day"`
	Date      string            `json:"date"`
	HasEvents bool              `json:"has_events"`
	IsToday   bool              `json:"is_today"`
	Holiday   *entities.Holiday `json:"holiday,omitempty"`
}

// MonthGrid is the render model for one calendar month. Weeks start on
// Monday, so LeadingBlanks is the number of empty cells before day 1.
type MonthGrid struct {
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	DaysInMonth   int       `json:"days_in_month"`
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []DayCell `json:"days"`
}

// DaysInMonth returns the number of days in the given month using the
// zeroth-day-of-next-month trick.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// firstDayOffset returns the Monday-first weekday index of day 1.
// Go's Sunday=0 is remapped to the last column (6).
func firstDayOffset(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

// GroupEventsByDate buckets events by their exact date string. The same
// grouping backs both the grid's presence markers and the day-detail view.
func GroupEventsByDate(events []*entities.Event) map[string][]*entities.Event {
	byDate := make(map[string][]*entities.Event, len(events))
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}
	return byDate
}

// HolidayColorClass classifies a holiday summary by marker substrings.
// First match wins; an unrecognized summary yields no class.
func HolidayColorClass(summary string) string {
	switch {
	case strings.Contains(summary, "Poya Day"):
		return HolidayClassPoya
	case strings.Contains(summary, "(P,B,M)"):
		return HolidayClassFull
	case strings.Contains(summary, "(P,B)"):
		return HolidayClassPartial
	default:
		return ""
	}
}

// HolidaysByDate indexes holidays by date string, filling in the color
// class derived from each summary.
func HolidaysByDate(holidays []entities.Holiday) map[string]entities.Holiday {
	byDate := make(map[string]entities.Holiday, len(holidays))
	for _, h := range holidays {
		h.ColorClass = HolidayColorClass(h.Summary)
		byDate[h.Date] = h
	}
	return byDate
}

// BuildMonthGrid produces the render model for one month. It is a pure
// function of its inputs; now is passed in so "today" is testable.
func BuildMonthGrid(year int, month time.Month, events []*entities.Event, holidays []entities.Holiday, now time.Time) MonthGrid {
	days := DaysInMonth(year, month)
	eventsByDate := GroupEventsByDate(events)
	holidaysByDate := HolidaysByDate(holidays)
	today := now.UTC().Format("2006-01-02")

	grid := MonthGrid{
		Year:          year,
		Month:         int(month),
		DaysInMonth:   days,
		LeadingBlanks: firstDayOffset(year, month),
		Days:          make([]DayCell, 0, days),
	}

	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		cell := DayCell{
			Day:       day,
			Date:      date,
			HasEvents: len(eventsByDate[date]) > 0,
			IsToday:   date == today,
		}
		if h, ok := holidaysByDate[date]; ok {
			holiday := h
			cell.Holiday = &holiday
		}
		grid.Days = append(grid.Days, cell)
	}

	return grid
}
