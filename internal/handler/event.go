package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
)

// EventHandler serves the public browse endpoints and the admin event
// CRUD.
type EventHandler struct {
	Svc *service.Service
}

func NewEventHandler(svc *service.Service) *EventHandler {
	return &EventHandler{Svc: svc}
}

type eventReq struct {
	Date         string              `json:"date"`
	Time         string              `json:"time"`
	Capacity     int                 `json:"capacity"`
	PickupPoints []model.PickupPoint `json:"pickupPoints"`
}

// eventResp decorates an event with occupancy so browse views can
// show remaining seats without a second request.
type eventResp struct {
	model.Event
	SeatsBooked int `json:"seatsBooked"`
	SeatsLeft   int `json:"seatsLeft"`
}

func (h *EventHandler) withOccupancy(ctx context.Context, events []model.Event) ([]eventResp, error) {
	counts, err := h.Svc.SeatsBooked(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		left := e.Capacity - counts[e.ID]
		if left < 0 {
			left = 0
		}
		out = append(out, eventResp{Event: e, SeatsBooked: counts[e.ID], SeatsLeft: left})
	}
	return out, nil
}

// List handles GET /v1/events.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	events, err := h.Svc.ListEvents(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	out, err := h.withOccupancy(ctx, events)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	event, err := h.Svc.GetEvent(ctx, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	out, err := h.withOccupancy(ctx, []model.Event{event})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, out[0])
}

// Create handles POST /v1/admin/events.
func (h *EventHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	event, err := h.Svc.CreateEvent(ctx, actor, service.EventInput{
		Date: req.Date, Time: req.Time, Capacity: req.Capacity, PickupPoints: req.PickupPoints,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// Update handles PUT /v1/admin/events/:id.
func (h *EventHandler) Update(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	event, err := h.Svc.UpdateEvent(ctx, actor, c.Param("id"), service.EventInput{
		Date: req.Date, Time: req.Time, Capacity: req.Capacity, PickupPoints: req.PickupPoints,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /v1/admin/events/:id and cascades to the
// event's bookings.
func (h *EventHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Svc.DeleteEvent(ctx, actor, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
