package entities

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrNotAuthenticated = errors.New("you must be logged in to perform this action")
	ErrEventNotFound    = errors.New("event not found")
	ErrUserNotFound     = errors.New("user not found")
)

// DefaultEventColor is applied when an event is created without a color.
const DefaultEventColor = "#3b82f6"

// ValidationError reports a malformed or missing request field. It is
// returned before any store access happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Event represents a single planner entry. Date and times are kept as the
// wall-clock strings the user submitted (YYYY-MM-DD and HH:MM); the store
// does not interpret them beyond lexicographic range queries.
type Event struct {
	ID          int       `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Date        string    `json:"date" db:"date"`
	StartTime   string    `json:"start_time" db:"start_time"`
	EndTime     string    `json:"end_time" db:"end_time"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// User represents an account provisioned lazily on first sign-in from the
// identity provider's profile claims.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      *string   `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Image     *string   `json:"image" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Holiday is a read-only annotation from the external feed. It is never
// persisted; ColorClass is derived from the summary text.
type Holiday struct {
	Date       string `json:"date"`
	Summary    string `json:"summary"`
	ColorClass string `json:"color_class,omitempty"`
}
