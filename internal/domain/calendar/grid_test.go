package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayplanner/core/internal/domain/entities"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"february non-leap", 2023, time.February, 28},
		{"february leap", 2024, time.February, 29},
		{"december", 2024, time.December, 31},
		{"april", 2024, time.April, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestBuildMonthGrid_LeadingBlanks(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	// December 2024 starts on a Sunday; Monday-first layout puts it in
	// the last column.
	grid := BuildMonthGrid(2024, time.December, nil, nil, now)
	assert.Equal(t, 6, grid.LeadingBlanks)
	assert.Equal(t, 31, grid.DaysInMonth)

	// July 2024 starts on a Monday.
	grid = BuildMonthGrid(2024, time.July, nil, nil, now)
	assert.Equal(t, 0, grid.LeadingBlanks)
}

func TestBuildMonthGrid_Cells(t *testing.T) {
	desc := "morning sync"
	events := []*entities.Event{
		{ID: 1, UserID: "u1", Title: "Standup", Description: &desc, Date: "2024-03-04", StartTime: "09:00", EndTime: "09:15"},
		{ID: 2, UserID: "u1", Title: "Review", Date: "2024-03-04", StartTime: "10:00", EndTime: "10:15"},
	}
	holidays := []entities.Holiday{
		{Date: "2024-03-24", Summary: "Madin Full Moon Poya Day"},
		{Date: "2024-03-29", Summary: "Good Friday (P,B)"},
		{Date: "2024-03-31", Summary: "Easter Sunday"},
	}
	now := time.Date(2024, time.March, 15, 13, 30, 0, 0, time.UTC)

	grid := BuildMonthGrid(2024, time.March, events, holidays, now)
	require.Len(t, grid.Days, 31)

	day4 := grid.Days[3]
	assert.Equal(t, "2024-03-04", day4.Date)
	assert.True(t, day4.HasEvents)
	assert.False(t, day4.IsToday)

	day15 := grid.Days[14]
	assert.True(t, day15.IsToday)
	assert.False(t, day15.HasEvents)

	day24 := grid.Days[23]
	require.NotNil(t, day24.Holiday)
	assert.Equal(t, HolidayClassPoya, day24.Holiday.ColorClass)
	assert.Equal(t, "Madin Full Moon Poya Day", day24.Holiday.Summary)

	day29 := grid.Days[28]
	require.NotNil(t, day29.Holiday)
	assert.Equal(t, HolidayClassPartial, day29.Holiday.ColorClass)

	// Unrecognized summary still tags the day but carries no color.
	day31 := grid.Days[30]
	require.NotNil(t, day31.Holiday)
	assert.Empty(t, day31.Holiday.ColorClass)
}

func TestHolidayColorClass(t *testing.T) {
	tests := []struct {
		summary string
		want    string
	}{
		{"Duruthu Full Moon Poya Day", HolidayClassPoya},
		{"Tamil Thai Pongal Day (P,B,M)", HolidayClassFull},
		{"Good Friday (P,B)", HolidayClassPartial},
		{"Bank Holiday", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HolidayColorClass(tt.summary), "summary %q", tt.summary)
	}
}

func TestGroupEventsByDate(t *testing.T) {
	events := []*entities.Event{
		{ID: 1, Date: "2024-03-04"},
		{ID: 2, Date: "2024-03-04"},
		{ID: 3, Date: "2024-03-05"},
	}

	byDate := GroupEventsByDate(events)
	assert.Len(t, byDate["2024-03-04"], 2)
	assert.Len(t, byDate["2024-03-05"], 1)
	assert.Empty(t, byDate["2024-03-06"])
}
