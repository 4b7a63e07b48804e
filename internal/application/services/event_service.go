package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/logger"
	"github.com/dayplanner/core/internal/ports"
)

// EventService orchestrates event mutations: auth check, validation,
// sanitization, store call, view-cache invalidation.
type EventService struct {
	eventRepo ports.EventRepository
	viewCache ports.ViewCache
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo ports.EventRepository, viewCache ports.ViewCache, logger *logger.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		viewCache: viewCache,
		validate:  NewValidator(),
		logger:    logger,
	}
}

// Create validates and stores a new event for the user. The color falls
// back to the default blue when omitted.
func (s *EventService) Create(ctx context.Context, userID string, req ports.CreateEventRequest) error {
	if userID == "" {
		return entities.ErrNotAuthenticated
	}

	// A whitespace-only title must fail the required check.
	req.Title = strings.TrimSpace(req.Title)

	if err := s.validate.Struct(&req); err != nil {
		return asValidationError(err)
	}

	color := req.Color
	if color == "" {
		color = entities.DefaultEventColor
	}

	event := &entities.Event{
		UserID:      userID,
		Title:       sanitizeText(req.Title),
		Description: sanitizeOptionalText(req.Description),
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       color,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("Create event failed", "error", err, "user_id", userID)
		return fmt.Errorf("failed to create event: %w", err)
	}

	s.viewCache.InvalidateUser(ctx, userID)
	s.logger.Info("Event created", "event_id", event.ID, "user_id", userID, "date", event.Date)

	return nil
}

// Update replaces an event's fields. The store call is scoped by both
// event id and user id; when nothing matches (wrong owner or missing id)
// the update silently affects zero rows and no error reaches the caller.
func (s *EventService) Update(ctx context.Context, userID string, eventID int, req ports.UpdateEventRequest) error {
	if userID == "" {
		return entities.ErrNotAuthenticated
	}

	if eventID <= 0 {
		return entities.NewValidationError("id", "must be a positive integer")
	}

	req.Title = strings.TrimSpace(req.Title)

	if err := s.validate.Struct(&req); err != nil {
		return asValidationError(err)
	}

	event := &entities.Event{
		ID:          eventID,
		UserID:      userID,
		Title:       sanitizeText(req.Title),
		Description: sanitizeOptionalText(req.Description),
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
	}

	rows, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		s.logger.Error("Update event failed", "error", err, "event_id", eventID, "user_id", userID)
		return fmt.Errorf("failed to update event: %w", err)
	}

	if rows == 0 {
		s.logger.Warn("Update matched no event", "event_id", eventID, "user_id", userID)
	}

	s.viewCache.InvalidateUser(ctx, userID)

	return nil
}

// Delete removes an event permanently. Same owner scoping and silent
// no-op policy as Update.
func (s *EventService) Delete(ctx context.Context, userID string, eventID int) error {
	if userID == "" {
		return entities.ErrNotAuthenticated
	}

	if eventID <= 0 {
		return entities.NewValidationError("id", "must be a positive integer")
	}

	rows, err := s.eventRepo.Delete(ctx, eventID, userID)
	if err != nil {
		s.logger.Error("Delete event failed", "error", err, "event_id", eventID, "user_id", userID)
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if rows == 0 {
		s.logger.Warn("Delete matched no event", "event_id", eventID, "user_id", userID)
	}

	s.viewCache.InvalidateUser(ctx, userID)

	return nil
}

// MonthRange returns the inclusive start and exclusive end date strings
// for a month, rolling December into the next January.
func MonthRange(year, month int) (string, string) {
	startDate := fmt.Sprintf("%04d-%02d-01", year, month)

	nextMonth := month + 1
	nextYear := year
	if month == 12 {
		nextMonth = 1
		nextYear = year + 1
	}
	endDate := fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)

	return startDate, endDate
}

// ListByMonth returns the user's events with dates in [YYYY-MM-01,
// first-of-next-month), ordered by date then start time. Reads go through
// the month-view cache.
func (s *EventService) ListByMonth(ctx context.Context, userID string, year, month int) ([]*entities.Event, error) {
	if userID == "" {
		return nil, entities.ErrNotAuthenticated
	}

	if month < 1 || month > 12 {
		return nil, entities.NewValidationError("month", "must be between 1 and 12")
	}

	if events, ok := s.viewCache.GetMonthEvents(ctx, userID, year, month); ok {
		return events, nil
	}

	startDate, endDate := MonthRange(year, month)

	events, err := s.eventRepo.ListByRange(ctx, userID, startDate, endDate)
	if err != nil {
		s.logger.Error("List events failed", "error", err, "user_id", userID, "year", year, "month", month)
		return nil, fmt.Errorf("failed to fetch events for month: %w", err)
	}

	s.viewCache.SetMonthEvents(ctx, userID, year, month, events)

	return events, nil
}

// ListByDate returns the user's events for a single day, ordered by start
// time. Backs the day-detail view.
func (s *EventService) ListByDate(ctx context.Context, userID, date string) ([]*entities.Event, error) {
	if userID == "" {
		return nil, entities.ErrNotAuthenticated
	}

	if !dateRegex.MatchString(date) {
		return nil, entities.NewValidationError("date", "must match YYYY-MM-DD")
	}

	events, err := s.eventRepo.ListByDate(ctx, userID, date)
	if err != nil {
		s.logger.Error("List events by date failed", "error", err, "user_id", userID, "date", date)
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return events, nil
}
