package ports

import (
	"context"

	"github.com/dayplanner/core/internal/domain/entities"
)

// EventRepository is the persistence port for planner events. Every
// mutating statement is filtered by both event id and owning user id, so a
// user can never touch another user's rows. Update and Delete report the
// number of rows affected instead of failing on a non-match.
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id int, userID string) (*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) (int64, error)
	Delete(ctx context.Context, id int, userID string) (int64, error)
	ListByDate(ctx context.Context, userID, date string) ([]*entities.Event, error)
	ListByRange(ctx context.Context, userID, startDate, endDate string) ([]*entities.Event, error)
}

// UserRepository is the persistence port for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// ViewCache caches a user's month view between reads. Implementations must
// degrade to cache misses on backend failure; a cache problem never fails
// the request.
type ViewCache interface {
	GetMonthEvents(ctx context.Context, userID string, year, month int) ([]*entities.Event, bool)
	SetMonthEvents(ctx context.Context, userID string, year, month int, events []*entities.Event)
	InvalidateUser(ctx context.Context, userID string)
}

// HolidaySource fetches the external read-only holiday feed.
type HolidaySource interface {
	Upcoming(ctx context.Context) ([]entities.Holiday, error)
}
