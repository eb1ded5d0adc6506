package http

import (
	"errors"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/application"
	"warisin/internal/domain"
)

type ApplicationHandler struct {
	service ApplicationService
}

func NewApplicationHandler(service ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Eligibility answers whether the caller may apply to the program. Business
// refusals are part of the answer, not request failures.
func (h *ApplicationHandler) Eligibility(c echo.Context) error {
	err := h.service.CanApply(c.Request().Context(), actor(c), c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(stdhttp.StatusOK, map[string]any{"eligible": true})
	case errors.Is(err, domain.ErrDuplicateApplication), errors.Is(err, domain.ErrNotAcceptingApplications):
		return c.JSON(stdhttp.StatusOK, map[string]any{"eligible": false, "reason": err.Error()})
	default:
		return handleError(c, err)
	}
}

func (h *ApplicationHandler) Apply(c echo.Context) error {
	var req struct {
		ProgramID  string `json:"program_id" validate:"required"`
		Message    string `json:"message" validate:"required"`
		Motivation string `json:"motivation"`
		CVURL      string `json:"cv_url" validate:"omitempty,url"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	app, err := h.service.Apply(c.Request().Context(), actor(c), application.ApplyInput{
		ProgramID:  req.ProgramID,
		Message:    req.Message,
		Motivation: req.Motivation,
		CVURL:      req.CVURL,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, app)
}

func (h *ApplicationHandler) transition(next domain.ApplicationStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			ID string `json:"id" validate:"required"`
		}
		if err := bind(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
		app, err := h.service.SetStatus(c.Request().Context(), actor(c), req.ID, next)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(stdhttp.StatusOK, app)
	}
}

func (h *ApplicationHandler) Approve() echo.HandlerFunc  { return h.transition(domain.StatusApproved) }
func (h *ApplicationHandler) Reject() echo.HandlerFunc   { return h.transition(domain.StatusRejected) }
func (h *ApplicationHandler) Complete() echo.HandlerFunc { return h.transition(domain.StatusCompleted) }

func (h *ApplicationHandler) Get(c echo.Context) error {
	app, err := h.service.Get(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, app)
}

func (h *ApplicationHandler) ListByProgram(c echo.Context) error {
	apps, err := h.service.ListByProgram(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, apps)
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	apps, err := h.service.ListByApplicant(c.Request().Context(), actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, apps)
}
