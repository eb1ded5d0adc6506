package http

import (
	"errors"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/domain"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidInput, stdhttp.StatusBadRequest},
	{domain.ErrUnauthenticated, stdhttp.StatusUnauthorized},
	{domain.ErrPermissionDeny, stdhttp.StatusForbidden},
	{domain.ErrNotFound, stdhttp.StatusNotFound},
	{domain.ErrDuplicateApplication, stdhttp.StatusConflict},
	{domain.ErrNotAcceptingApplications, stdhttp.StatusConflict},
	{domain.ErrInvalidTransition, stdhttp.StatusConflict},
	{domain.ErrConflict, stdhttp.StatusConflict},
	{domain.ErrFileTooLarge, stdhttp.StatusRequestEntityTooLarge},
	{domain.ErrUnsupportedMediaType, stdhttp.StatusUnsupportedMediaType},
}

func handleError(c echo.Context, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.JSON(e.status, map[string]string{"error": e.err.Error()})
		}
	}
	c.Logger().Error(err)
	return c.JSON(stdhttp.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": msg})
}
