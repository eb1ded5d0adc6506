package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/application"
)

type UploadHandler struct {
	service UploadService
}

func NewUploadHandler(service UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) Upload(c echo.Context) error {
	kind, err := application.ParseUploadKind(c.Param("kind"))
	if err != nil {
		return badRequest(c, "unknown upload kind")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "unreadable file")
	}
	defer f.Close()

	stored, err := h.service.Upload(c.Request().Context(), actor(c), kind, fh.Filename, f)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, stored)
}

func (h *UploadHandler) Delete(c echo.Context) error {
	var req struct {
		Path string `json:"path" query:"path" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.service.Delete(c.Request().Context(), actor(c), req.Path); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusNoContent)
}
