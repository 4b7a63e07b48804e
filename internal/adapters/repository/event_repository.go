package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/ports"
)

// EventRepositoryImpl implements the EventRepository interface
type EventRepositoryImpl struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) ports.EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entities.Event) error {
	query := `
		INSERT INTO events (user_id, title, description, date, start_time, end_time, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.UserID, event.Title, event.Description, event.Date,
		event.StartTime, event.EndTime, event.Color,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id int, userID string) (*entities.Event, error) {
	query := `
		SELECT id, user_id, title, description, date, start_time, end_time, color, created_at, updated_at
		FROM events
		WHERE id = $1 AND user_id = $2`

	var event entities.Event
	err := r.db.GetContext(ctx, &event, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}

	return &event, nil
}

// Update replaces the mutable fields of an event. The statement is scoped
// by both id and user_id; a non-match simply affects zero rows.
func (r *EventRepositoryImpl) Update(ctx context.Context, event *entities.Event) (int64, error) {
	query := `
		UPDATE events
		SET title = $3,
			description = $4,
			date = $5,
			start_time = $6,
			end_time = $7,
			color = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query,
		event.ID, event.UserID, event.Title, event.Description,
		event.Date, event.StartTime, event.EndTime, event.Color,
	)
	if err != nil {
		return 0, fmt.Errorf("update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Delete removes an event permanently. Same owner scoping as Update.
func (r *EventRepositoryImpl) Delete(ctx context.Context, id int, userID string) (int64, error) {
	query := `DELETE FROM events WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *EventRepositoryImpl) ListByDate(ctx context.Context, userID, date string) ([]*entities.Event, error) {
	query := `
		SELECT id, user_id, title, description, date, start_time, end_time, color, created_at, updated_at
		FROM events
		WHERE user_id = $1 AND date = $2
		ORDER BY start_time ASC`

	events := []*entities.Event{}
	err := r.db.SelectContext(ctx, &events, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}

	return events, nil
}

// ListByRange returns the user's events with startDate <= date < endDate,
// ordered by date then start time. Dates are compared as YYYY-MM-DD
// strings, which sort chronologically.
func (r *EventRepositoryImpl) ListByRange(ctx context.Context, userID, startDate, endDate string) ([]*entities.Event, error) {
	query := `
		SELECT id, user_id, title, description, date, start_time, end_time, color, created_at, updated_at
		FROM events
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC, start_time ASC`

	events := []*entities.Event{}
	err := r.db.SelectContext(ctx, &events, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list events by range: %w", err)
	}

	return events, nil
}
