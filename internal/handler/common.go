package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/middleware"
	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
)

// reqTimeout bounds store and broker work per request.
const reqTimeout = 5 * time.Second

// actorFrom extracts the authenticated user placed in the context by
// the session middleware.
func actorFrom(c echo.Context) (model.User, bool) {
	actor, ok := c.Get(middleware.ActorKey).(model.User)
	return actor, ok
}

// writeServiceError translates a domain sentinel into its HTTP
// response. Anything unrecognized is an internal error; the detail
// stays in the log, not the body.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case errors.Is(err, service.ErrShuttleFull):
		return c.JSON(http.StatusConflict, echo.Map{"error": "shuttle is full"})
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPickupPointNotFound),
		errors.Is(err, service.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
