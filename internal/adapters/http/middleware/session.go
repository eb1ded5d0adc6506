package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"warisin/internal/adapters/logger"
	"warisin/internal/domain"
)

const sessionKey = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Session, error)
}

// Session resolves the session cookie, when present, into the request. It
// never rejects a request; RequireSession and RequireRole do that.
func Session(auth Authenticator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			ctx := c.Request().Context()
			sess, err := auth.Authenticate(ctx, cookie.Value)
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				return next(c)
			case err != nil:
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
			}
			c.Set(sessionKey, sess)
			c.SetRequest(c.Request().WithContext(logger.WithUserID(ctx, sess.UserID)))
			return next(c)
		}
	}
}

func CurrentSession(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(domain.Session)
	return sess, ok
}

func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentSession(c); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrUnauthenticated.Error()})
			}
			return next(c)
		}
	}
}

func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrUnauthenticated.Error()})
			}
			if sess.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrPermissionDeny.Error()})
			}
			return next(c)
		}
	}
}
