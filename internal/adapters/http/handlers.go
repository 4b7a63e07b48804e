package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dayplanner/core/internal/application/services"
	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/logger"
	"github.com/dayplanner/core/internal/ports"
)

const stateCookieName = "oauth_state"

// MessageResponse is a simple acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned after a successful sign-in.
type TokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login redirects to the identity provider's consent page.
func (h *AuthHandler) Login(c echo.Context) error {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start sign-in")
	}
	state := hex.EncodeToString(buf)

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.authService.LoginURL(state))
}

// Callback exchanges the provider's code for a session token.
func (h *AuthHandler) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if state == "" || code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing state or code parameter")
	}

	cookie, err := c.Cookie(stateCookieName)
	if err != nil || cookie.Value != state {
		h.logger.LogSecurityEvent("oauth_state_mismatch", "", c.RealIP(), nil)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid state parameter")
	}

	token, user, err := h.authService.HandleCallback(c.Request().Context(), code)
	if err != nil {
		h.logger.Error("Sign-in failed", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Sign-in failed")
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.authService.TokenTTL().Seconds()),
		User:        user,
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	userID := getUserIDFromContext(c)

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Get current user failed", "error", err, "user_id", userID)
		return domainHTTPError(err, "Failed to load user")
	}

	return c.JSON(http.StatusOK, user)
}

// EventHandler handles event CRUD requests
type EventHandler struct {
	eventService *services.EventService
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents returns the user's events for one month (defaults to the
// current month).
func (h *EventHandler) ListEvents(c echo.Context) error {
	userID := getUserIDFromContext(c)

	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := c.QueryParam("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid year parameter")
		}
		year = y
	}

	if monthStr := c.QueryParam("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month parameter")
		}
		month = m
	}

	events, err := h.eventService.ListByMonth(c.Request().Context(), userID, year, month)
	if err != nil {
		return domainHTTPError(err, "Failed to fetch events")
	}

	return c.JSON(http.StatusOK, events)
}

// CreateEvent stores a new event for the user.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.eventService.Create(c.Request().Context(), userID, req); err != nil {
		return domainHTTPError(err, "Failed to create event")
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Event created"})
}

// UpdateEvent replaces an event's fields.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	userID := getUserIDFromContext(c)

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Event ID must be a number")
	}

	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.eventService.Update(c.Request().Context(), userID, eventID, req); err != nil {
		return domainHTTPError(err, "Failed to update event")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event updated"})
}

// DeleteEvent removes an event.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	userID := getUserIDFromContext(c)

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Event ID must be a number")
	}

	if err := h.eventService.Delete(c.Request().Context(), userID, eventID); err != nil {
		return domainHTTPError(err, "Failed to delete event")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted"})
}

// CalendarHandler handles calendar view requests
type CalendarHandler struct {
	calendarService *services.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *services.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// MonthView returns the month grid with the holiday overlay.
func (h *CalendarHandler) MonthView(c echo.Context) error {
	userID := getUserIDFromContext(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid year parameter")
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid month parameter")
	}

	grid, err := h.calendarService.MonthView(c.Request().Context(), userID, year, month)
	if err != nil {
		return domainHTTPError(err, "Failed to build month view")
	}

	return c.JSON(http.StatusOK, grid)
}

// DayView returns the 96-slot detail for one day.
func (h *CalendarHandler) DayView(c echo.Context) error {
	userID := getUserIDFromContext(c)

	detail, err := h.calendarService.DayView(c.Request().Context(), userID, c.Param("date"))
	if err != nil {
		return domainHTTPError(err, "Failed to build day view")
	}

	return c.JSON(http.StatusOK, detail)
}

// SlotEnd suggests the default end time for an event started in the
// given empty slot.
func (h *CalendarHandler) SlotEnd(c echo.Context) error {
	start := c.QueryParam("start")
	if start == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing start parameter")
	}

	end, err := h.calendarService.SuggestSlotEnd(start)
	if err != nil {
		return domainHTTPError(err, "Failed to compute slot end")
	}

	return c.JSON(http.StatusOK, map[string]string{"start_time": start, "end_time": end})
}

// domainHTTPError maps domain errors onto HTTP status codes. Store-level
// detail stays in the logs; clients get the generic message.
func domainHTTPError(err error, generic string) error {
	var validationErr *entities.ValidationError

	switch {
	case errors.Is(err, entities.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, entities.ErrEventNotFound), errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, generic)
	}
}

// getUserIDFromContext extracts the authenticated user id set by the auth
// middleware. Empty means unauthenticated.
func getUserIDFromContext(c echo.Context) string {
	userID, ok := c.Get("user").(string)
	if !ok {
		return ""
	}
	return userID
}
