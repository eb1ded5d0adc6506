package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/application"
)

type ProgramHandler struct {
	service ProgramService
}

func NewProgramHandler(service ProgramService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

type programRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Duration    string   `json:"duration" validate:"max=100"`
	Location    string   `json:"location" validate:"max=200"`
	Criteria    string   `json:"criteria"`
	CategoryID  string   `json:"category_id" validate:"required"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	IsOpen      *bool    `json:"is_open"`
	MediaURLs   []string `json:"media_urls" validate:"max=20,dive,url"`
}

func (r programRequest) input() (application.ProgramInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return application.ProgramInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return application.ProgramInput{}, err
	}
	return application.ProgramInput{
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Location:    r.Location,
		Criteria:    r.Criteria,
		CategoryID:  r.CategoryID,
		StartDate:   start,
		EndDate:     end,
		IsOpen:      r.IsOpen,
		MediaURLs:   r.MediaURLs,
	}, nil
}

func (h *ProgramHandler) Create(c echo.Context) error {
	var req programRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	in, err := req.input()
	if err != nil {
		return badRequest(c, "invalid date")
	}
	program, err := h.service.Create(c.Request().Context(), actor(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, program)
}

func (h *ProgramHandler) Update(c echo.Context) error {
	var req programRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	in, err := req.input()
	if err != nil {
		return badRequest(c, "invalid date")
	}
	program, err := h.service.Update(c.Request().Context(), actor(c), c.Param("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, program)
}

func (h *ProgramHandler) SetOpen(c echo.Context) error {
	var req struct {
		IsOpen *bool `json:"is_open" validate:"required"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	program, err := h.service.SetOpen(c.Request().Context(), actor(c), c.Param("id"), *req.IsOpen)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, program)
}

func (h *ProgramHandler) Get(c echo.Context) error {
	program, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, program)
}

func (h *ProgramHandler) List(c echo.Context) error {
	programs, err := h.service.ListOpen(c.Request().Context(), application.ProgramFilter{
		Query:      c.QueryParam("q"),
		CategoryID: c.QueryParam("category"),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, programs)
}

func (h *ProgramHandler) ListMine(c echo.Context) error {
	programs, err := h.service.ListByArtisan(c.Request().Context(), actor(c).UserID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, programs)
}
