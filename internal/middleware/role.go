package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/model"
)

// RequireRole returns a middleware that enforces that the
// authenticated actor holds one of the given roles. It assumes
// SessionAuth ran earlier on the chain; a missing actor is treated
// the same as a disallowed role. This is the boundary-level gate;
// admin operations re-check the role inside the service as well.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ActorKey).(model.User)
			if !ok || !allowed[actor.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
