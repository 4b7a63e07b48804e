package services

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dayplanner/core/internal/domain/entities"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	colorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
)

// NewValidator builds the validator used for request structs. The custom
// tags enforce the exact wire formats (time.Parse is too lenient about
// zero padding, and the builtin hexcolor tag admits 4- and 8-digit alpha
// forms the store does not accept).
func NewValidator() *validator.Validate {
	v := validator.New()

	// Failed fields are reported by their wire name, not the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		return dateRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timeRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
		return colorRegex.MatchString(fl.Field().String())
	})

	return v
}

// fieldReasons maps a failed validation tag to a message naming the
// expected format.
var fieldReasons = map[string]string{
	"required": "is required",
	"dateymd":  "must match YYYY-MM-DD",
	"hhmm":     "must match HH:MM",
	"hexrgb":   "must be a hex color (#RGB or #RRGGBB)",
}

// asValidationError converts a validator failure into the domain's
// ValidationError, naming the first offending field.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		reason, ok := fieldReasons[fe.Tag()]
		if !ok {
			reason = "is invalid"
		}
		return entities.NewValidationError(fe.Field(), reason)
	}

	return entities.NewValidationError("request", err.Error())
}

// sanitizeText HTML-escapes free text before it reaches storage, since
// rendered values are not escaped downstream.
func sanitizeText(s string) string {
	return html.EscapeString(s)
}

// sanitizeOptionalText escapes a description, mapping the empty string to
// an absent value.
func sanitizeOptionalText(s string) *string {
	if s == "" {
		return nil
	}
	escaped := html.EscapeString(s)
	return &escaped
}
