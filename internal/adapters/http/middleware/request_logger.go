package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"warisin/internal/adapters/logger"
	"warisin/internal/ports"
)

// RequestLogger must run after echo's RequestID middleware so the id is set.
func RequestLogger(log ports.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID != "" {
				c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), requestID)))
			}
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			duration := time.Since(started)
			ctx := c.Request().Context()
			args := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"route_pattern", c.Path(),
				"status", c.Response().Status,
				"duration", duration.String(),
			}
			if err != nil {
				log.Error(ctx, "http request", append(args, "error", err.Error())...)
				return nil
			}
			log.Info(ctx, "http request", args...)
			return nil
		}
	}
}
