package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/application"
)

type ProfileHandler struct {
	service ProfileService
}

func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) UpsertArtisan(c echo.Context) error {
	var req struct {
		Story     string   `json:"story" validate:"max=10000"`
		Expertise string   `json:"expertise" validate:"max=500"`
		Location  string   `json:"location" validate:"max=200"`
		ImageURL  string   `json:"image_url" validate:"omitempty,url"`
		Works     []string `json:"works" validate:"max=20,dive,url"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	profile, err := h.service.UpsertArtisan(c.Request().Context(), actor(c), application.ArtisanProfileInput{
		Story:     req.Story,
		Expertise: req.Expertise,
		Location:  req.Location,
		ImageURL:  req.ImageURL,
		Works:     req.Works,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, profile)
}

func (h *ProfileHandler) GetArtisan(c echo.Context) error {
	page, err := h.service.GetArtisan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, page)
}

func (h *ProfileHandler) UpsertApplicant(c echo.Context) error {
	var req struct {
		Background   string `json:"background" validate:"max=5000"`
		Interests    string `json:"interests" validate:"max=2000"`
		PortfolioURL string `json:"portfolio_url" validate:"omitempty,url"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	profile, err := h.service.UpsertApplicant(c.Request().Context(), actor(c), application.ApplicantProfileInput{
		Background:   req.Background,
		Interests:    req.Interests,
		PortfolioURL: req.PortfolioURL,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, profile)
}

func (h *ProfileHandler) GetApplicant(c echo.Context) error {
	profile, err := h.service.GetApplicant(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, profile)
}
