package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayplanner/core/internal/application/services"
	"github.com/dayplanner/core/internal/domain/calendar"
	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/logger"
	"github.com/dayplanner/core/internal/ports"
)

type fakeHolidaySource struct {
	holidays []entities.Holiday
	err      error
}

func (f *fakeHolidaySource) Upcoming(context.Context) ([]entities.Holiday, error) {
	return f.holidays, f.err
}

func newCalendarService(repo ports.EventRepository, holidays ports.HolidaySource) *services.CalendarService {
	events := services.NewEventService(repo, &fakeViewCache{}, logger.NewNop())
	return services.NewCalendarService(events, holidays, logger.NewNop())
}

func TestMonthView_OverlaysHolidays(t *testing.T) {
	repo := newFakeEventRepo()
	events := services.NewEventService(repo, &fakeViewCache{}, logger.NewNop())
	svc := services.NewCalendarService(events, &fakeHolidaySource{
		holidays: []entities.Holiday{{Date: "2024-03-24", Summary: "Madin Full Moon Poya Day"}},
	}, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, events.Create(ctx, "u1", ports.CreateEventRequest{
		Title: "Standup", Date: "2024-03-04", StartTime: "09:00", EndTime: "09:15",
	}))

	grid, err := svc.MonthView(ctx, "u1", 2024, 3)
	require.NoError(t, err)
	require.Len(t, grid.Days, 31)
	assert.True(t, grid.Days[3].HasEvents)

	require.NotNil(t, grid.Days[23].Holiday)
	assert.Equal(t, calendar.HolidayClassPoya, grid.Days[23].Holiday.ColorClass)
}

func TestMonthView_DegradesWhenFeedFails(t *testing.T) {
	svc := newCalendarService(newFakeEventRepo(), &fakeHolidaySource{err: errors.New("feed down")})

	grid, err := svc.MonthView(context.Background(), "u1", 2024, 3)
	require.NoError(t, err, "a feed failure must not fail the view")
	for _, day := range grid.Days {
		assert.Nil(t, day.Holiday)
	}
}

func TestDayView(t *testing.T) {
	repo := newFakeEventRepo()
	events := services.NewEventService(repo, &fakeViewCache{}, logger.NewNop())
	svc := services.NewCalendarService(events, &fakeHolidaySource{}, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, events.Create(ctx, "u1", ports.CreateEventRequest{
		Title: "Standup", Date: "2024-03-04", StartTime: "09:00", EndTime: "09:15",
	}))

	detail, err := svc.DayView(ctx, "u1", "2024-03-04")
	require.NoError(t, err)
	require.Len(t, detail.Slots, calendar.SlotsPerDay)

	require.NotNil(t, detail.Slots[36].Event) // 09:00
	assert.Equal(t, "Standup", detail.Slots[36].Event.Title)
}

func TestSuggestSlotEnd(t *testing.T) {
	svc := newCalendarService(newFakeEventRepo(), &fakeHolidaySource{})

	end, err := svc.SuggestSlotEnd("23:45")
	require.NoError(t, err)
	assert.Equal(t, "00:00", end)

	_, err = svc.SuggestSlotEnd("nope")
	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
