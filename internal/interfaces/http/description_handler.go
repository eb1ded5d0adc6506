package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/application"
)

type DescriptionHandler struct{ service DescriptionService }

func NewDescriptionHandler(service DescriptionService) *DescriptionHandler {
	return &DescriptionHandler{service: service}
}

func (h *DescriptionHandler) Generate(c echo.Context) error {
	var req struct {
		Title    string `json:"title" validate:"required,max=200"`
		Category string `json:"category" validate:"max=100"`
		Duration string `json:"duration" validate:"max=100"`
		Location string `json:"location" validate:"max=200"`
		Criteria string `json:"criteria" validate:"max=2000"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	draft, err := h.service.Draft(c.Request().Context(), actor(c), application.DraftInput{
		Title:    req.Title,
		Category: req.Category,
		Duration: req.Duration,
		Location: req.Location,
		Criteria: req.Criteria,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, draft)
}
