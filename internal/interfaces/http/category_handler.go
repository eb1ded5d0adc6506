package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct{ service CategoryService }

func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, categories)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name" validate:"required,max=100"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	category, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, category)
}
