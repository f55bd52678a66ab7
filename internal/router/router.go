// Package router wires handlers and middleware onto the Echo
// instance. Routes split into three audiences: public browse and
// auth, authenticated riders, and the admin surface. Admin-only
// operations are also re-checked inside the service, so these groups
// are the first gate, not the only one.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/handler"
	"github.com/navetta/shuttle-booking/internal/middleware"
	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/session"
)

// Handlers collects everything Register needs to mount the API.
type Handlers struct {
	Auth     *handler.AuthHandler
	Events   *handler.EventHandler
	Bookings *handler.BookingHandler
	Users    *handler.UserHandler
	Scan     *handler.ScanHandler
}

// Register mounts all routes on e.
func Register(e *echo.Echo, h Handlers, jwtSecret string, sessions session.Store) {
	e.GET("/healthz", handler.Health)

	// Unauthenticated: signup, login, event browsing.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)

	e.GET("/v1/events", h.Events.List)
	e.GET("/v1/events/:id", h.Events.Get)

	// Authenticated riders (admins included).
	rider := e.Group("/v1")
	rider.Use(middleware.SessionAuth(jwtSecret, sessions))
	rider.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	rider.GET("/me", h.Auth.Me)
	rider.POST("/bookings", h.Bookings.Create)
	rider.GET("/bookings", h.Bookings.Mine)
	rider.DELETE("/bookings/:id", h.Bookings.Delete)

	// Admin surface: event CRUD, user management, manual bookings,
	// manifest export and the check-in station.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.SessionAuth(jwtSecret, sessions))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/events", h.Events.Create)
	admin.PUT("/events/:id", h.Events.Update)
	admin.DELETE("/events/:id", h.Events.Delete)
	admin.GET("/events/:id/bookings", h.Bookings.ForEvent)
	admin.GET("/events/:id/manifest.csv", h.Bookings.ExportCSV)
	admin.GET("/users", h.Users.List)
	admin.PUT("/users/:id/role", h.Users.UpdateRole)
	admin.POST("/bookings", h.Bookings.AdminCreate)
	admin.DELETE("/bookings/:id", h.Bookings.Delete)
	admin.POST("/scan", h.Scan.Scan)
	admin.POST("/bookings/:id/check-in", h.Scan.CheckIn)
}
