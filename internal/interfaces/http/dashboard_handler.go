package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct{ service DashboardService }

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Artisan(c echo.Context) error {
	d, err := h.service.Artisan(c.Request().Context(), actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, d)
}

func (h *DashboardHandler) Applicant(c echo.Context) error {
	d, err := h.service.Applicant(c.Request().Context(), actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, d)
}
