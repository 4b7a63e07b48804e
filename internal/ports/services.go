package ports

// CreateEventRequest carries the fields of a new event. Title and
// description are sanitized by the service before persistence; color is
// optional and defaults at creation.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,dateymd"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Color       string `json:"color" validate:"omitempty,hexrgb"`
}

// UpdateEventRequest carries the replacement fields for an existing event.
// Unlike creation, color is required here.
type UpdateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,dateymd"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Color       string `json:"color" validate:"required,hexrgb"`
}
