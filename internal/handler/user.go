package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
)

// UserHandler serves the admin user-management endpoints.
type UserHandler struct {
	Svc *service.Service
}

func NewUserHandler(svc *service.Service) *UserHandler {
	return &UserHandler{Svc: svc}
}

// List handles GET /v1/admin/users. Credential secrets are blanked
// before the records leave the service.
func (h *UserHandler) List(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	users, err := h.Svc.ListUsers(ctx, actor)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return c.JSON(http.StatusOK, out)
}

type roleReq struct {
	Role string `json:"role"`
}

// UpdateRole handles PUT /v1/admin/users/:id/role.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Svc.UpdateUserRole(ctx, actor, c.Param("id"), req.Role)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, u.Sanitized())
}
