package holiday

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/config"
	"github.com/dayplanner/core/internal/ports"
)

// feedWindow is how far ahead the public calendar is read.
const feedWindow = 12 * 31 * 24 * time.Hour

// GoogleFeed reads a public holiday calendar through the Google Calendar
// API. The feed is read-only; entries are never persisted.
type GoogleFeed struct {
	service    *calendar.Service
	calendarID string
}

// NewGoogleFeed creates the feed client with an API key. The target
// calendar must be public.
func NewGoogleFeed(ctx context.Context, cfg config.HolidayConfig) (*GoogleFeed, error) {
	service, err := calendar.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleFeed{
		service:    service,
		calendarID: cfg.CalendarID,
	}, nil
}

// Upcoming lists the feed's entries for the next 12 months. All-day feed
// entries carry their date directly; timed entries fall back to the date
// part of the start time.
func (f *GoogleFeed) Upcoming(ctx context.Context) ([]entities.Holiday, error) {
	now := time.Now().UTC()

	items, err := f.service.Events.List(f.calendarID).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(feedWindow).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday feed: %w", err)
	}

	holidays := make([]entities.Holiday, 0, len(items.Items))
	for _, item := range items.Items {
		if item.Start == nil {
			continue
		}

		date := item.Start.Date
		if date == "" && len(item.Start.DateTime) >= 10 {
			date = item.Start.DateTime[:10]
		}
		if date == "" {
			continue
		}

		holidays = append(holidays, entities.Holiday{
			Date:    date,
			Summary: item.Summary,
		})
	}

	return holidays, nil
}

// NoopFeed satisfies the HolidaySource port when the feed is disabled.
type NoopFeed struct{}

// NewNoopFeed returns a source with no holidays.
func NewNoopFeed() ports.HolidaySource {
	return &NoopFeed{}
}

func (NoopFeed) Upcoming(context.Context) ([]entities.Holiday, error) {
	return nil, nil
}
