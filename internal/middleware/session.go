package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/session"
	"github.com/navetta/shuttle-booking/internal/utils"
)

// ActorKey is the context key under which SessionAuth stores the
// authenticated user for downstream handlers.
const ActorKey = "actor"

// SessionAuth returns an Echo middleware that authenticates a Bearer
// session token. The token's signature and expiry are checked first,
// then the live session record is loaded by token hash; a signature
// alone is not enough, so logged-out tokens stop working immediately.
// On success the user snapshot is stored in the request context under
// ActorKey.
func SessionAuth(secret string, sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			if _, err := utils.ParseSessionToken(secret, raw); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			actor, err := sessions.Get(c.Request().Context(), utils.HashToken(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
