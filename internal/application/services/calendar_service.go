package services

import (
	"context"
	"time"

	"github.com/dayplanner/core/internal/domain/calendar"
	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/logger"
	"github.com/dayplanner/core/internal/ports"
)

// CalendarService composes the pure grid/slot builders with the event
// store and the external holiday feed.
type CalendarService struct {
	events   *EventService
	holidays ports.HolidaySource
	logger   *logger.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(events *EventService, holidays ports.HolidaySource, logger *logger.Logger) *CalendarService {
	return &CalendarService{
		events:   events,
		holidays: holidays,
		logger:   logger,
	}
}

// MonthView builds the month grid for the user: their events for the
// month plus the holiday overlay. A feed failure degrades to a grid with
// no overlay.
func (s *CalendarService) MonthView(ctx context.Context, userID string, year, month int) (*calendar.MonthGrid, error) {
	events, err := s.events.ListByMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidays.Upcoming(ctx)
	if err != nil {
		s.logger.Warn("Holiday feed unavailable, rendering without overlay", "error", err)
		holidays = nil
	}

	grid := calendar.BuildMonthGrid(year, time.Month(month), events, holidays, time.Now())

	return &grid, nil
}

// DayView builds the 96-slot detail for one day of the user's calendar.
func (s *CalendarService) DayView(ctx context.Context, userID, date string) (*calendar.DayDetail, error) {
	events, err := s.events.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	detail := calendar.BuildDaySlots(date, events)

	return &detail, nil
}

// SuggestSlotEnd computes the default end time for a new event started in
// the given empty slot.
func (s *CalendarService) SuggestSlotEnd(start string) (string, error) {
	end, err := calendar.NextSlotEnd(start)
	if err != nil {
		return "", entities.NewValidationError("start_time", "must be an HH:MM slot time")
	}
	return end, nil
}
