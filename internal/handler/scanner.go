package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/service"
)

// ScanHandler serves the check-in station: resolving a scanned ticket
// code and confirming the rider on board. The optical decode happens
// on the device; what arrives here is the decoded string.
type ScanHandler struct {
	Svc *service.Service
}

func NewScanHandler(svc *service.Service) *ScanHandler {
	return &ScanHandler{Svc: svc}
}

type scanReq struct {
	Code string `json:"code"`
}

// Scan handles POST /v1/admin/scan. It returns the booking joined
// with rider, event and pickup point; joins that no longer resolve
// come back absent rather than failing the scan.
func (h *ScanHandler) Scan(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req scanReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	det, err := h.Svc.ResolveTicket(ctx, actor, strings.TrimSpace(req.Code))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, det)
}

// CheckIn handles POST /v1/admin/bookings/:id/check-in. Confirming an
// already-boarded rider answers 200 with the unchanged booking.
func (h *ScanHandler) CheckIn(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	b, err := h.Svc.ConfirmCheckIn(ctx, actor, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
