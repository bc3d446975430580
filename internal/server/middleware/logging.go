package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"ai-signal-analyzer/internal/logger"
)

// RequestLogging logs one line per request. Server errors log at ERROR, slow
// requests at WARN, everything else at DEBUG.
func RequestLogging(slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", status,
				"duration_ms", latency.Milliseconds(),
				"bytes", c.Response().Size,
				"remote_ip", c.RealIP(),
				"request_id", RequestIDFrom(c),
			}

			switch {
			case status >= 500:
				logger.Error(req.Context(), "HTTP request failed", fields...)
			case slowThreshold > 0 && latency >= slowThreshold:
				logger.Warn(req.Context(), "HTTP request slow", fields...)
			default:
				logger.Debug(req.Context(), "HTTP request", fields...)
			}
			return nil
		}
	}
}
