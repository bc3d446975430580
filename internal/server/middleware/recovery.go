package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"ai-signal-analyzer/internal/logger"
)

// Recover turns handler panics into a 500 JSON error and keeps the server up.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				logger.ErrorWithErr(c.Request().Context(), "Recovered from panic", perr,
					"path", c.Path(),
					"request_id", RequestIDFrom(c),
					"stack", string(debug.Stack()),
				)
				err = c.JSON(http.StatusInternalServerError, map[string]any{
					"success": false,
					"error":   perr.Error(),
				})
			}()
			return next(c)
		}
	}
}
