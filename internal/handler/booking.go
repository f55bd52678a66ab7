package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/service"
)

// BookingHandler serves the rider booking endpoints and the admin
// booking management, including the manifest download.
type BookingHandler struct {
	Svc *service.Service
}

func NewBookingHandler(svc *service.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

type createBookingReq struct {
	EventID       string `json:"eventId"`
	PickupPointID string `json:"pickupPointId"`
}

type adminBookingReq struct {
	UserID        string `json:"userId"`
	EventID       string `json:"eventId"`
	PickupPointID string `json:"pickupPointId"`
}

// Create handles POST /v1/bookings: the rider books a seat for
// themselves.
func (h *BookingHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == "" || req.PickupPointID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId and pickupPointId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	b, err := h.Svc.CreateBooking(ctx, service.BookingInput{
		UserID:        actor.ID,
		EventID:       req.EventID,
		PickupPointID: req.PickupPointID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Mine handles GET /v1/bookings: the rider's own bookings.
func (h *BookingHandler) Mine(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	bookings, err := h.Svc.BookingsForUser(ctx, actor.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// Delete handles DELETE /v1/bookings/:id. The service enforces that
// riders can only cancel their own seats.
func (h *BookingHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Svc.DeleteBooking(ctx, actor, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdminCreate handles POST /v1/admin/bookings: manual entry on behalf
// of any rider.
func (h *BookingHandler) AdminCreate(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !actor.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req adminBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == "" || req.EventID == "" || req.PickupPointID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId, eventId and pickupPointId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	b, err := h.Svc.CreateBooking(ctx, service.BookingInput{
		UserID:        req.UserID,
		EventID:       req.EventID,
		PickupPointID: req.PickupPointID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ForEvent handles GET /v1/admin/events/:id/bookings: the event's
// manifest as JSON rows for the management table.
func (h *BookingHandler) ForEvent(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	rows, _, err := h.Svc.EventManifest(ctx, actor, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	type rowResp struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		PickupPoint string `json:"pickupPoint"`
		CheckedIn   bool   `json:"checkedIn"`
		BookingID   string `json:"bookingId"`
	}
	out := make([]rowResp, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowResp{
			FirstName: r.FirstName, LastName: r.LastName, Email: r.Email,
			Phone: r.Phone, PickupPoint: r.PickupPoint, CheckedIn: r.CheckedIn,
			BookingID: r.BookingID,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ExportCSV handles GET /v1/admin/events/:id/manifest.csv and streams
// the manifest as a CSV download named after the event date.
func (h *BookingHandler) ExportCSV(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	rows, event, err := h.Svc.EventManifest(ctx, actor, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bookings_event_%s.csv"`, event.Date))
	c.Response().WriteHeader(http.StatusOK)
	return service.WriteManifestCSV(c.Response(), rows)
}
