package http

import (
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"warisin/internal/application"
	"warisin/internal/domain"
)

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	service  AuthService
	cookie   CookieConfig
	provider string
}

func NewAuthHandler(service AuthService, cookie CookieConfig, provider string) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie, provider: provider}
}

type loginRequest struct {
	Role     string `json:"role" validate:"omitempty,oneof=ARTISAN APPLICANT"`
	Provider string `json:"provider" validate:"omitempty,oneof=firebase cognito"`
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func (h *AuthHandler) Login(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": "missing authorization token"})
	}
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Provider != "" && req.Provider != h.provider {
		return badRequest(c, "unsupported identity provider")
	}
	user, sess, err := h.service.Login(c.Request().Context(), token, domain.Role(req.Role))
	if err != nil {
		return handleError(c, err)
	}
	c.SetCookie(&stdhttp.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: stdhttp.SameSiteLaxMode,
		MaxAge:   int(h.cookie.TTL.Seconds()),
		Expires:  time.Now().Add(h.cookie.TTL),
	})
	return c.JSON(stdhttp.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		if err := h.service.Logout(c.Request().Context(), cookie.Value); err != nil {
			return handleError(c, err)
		}
	}
	c.SetCookie(&stdhttp.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: stdhttp.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	return c.NoContent(stdhttp.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.service.Me(c.Request().Context(), actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, user)
}

type updateUserRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Bio             string `json:"bio" validate:"max=2000"`
	Location        string `json:"location" validate:"max=200"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.service.Update(c.Request().Context(), actor(c), application.UserUpdate{
		Name:            req.Name,
		Bio:             req.Bio,
		Location:        req.Location,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, user)
}
