package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = 24 * time.Hour
)

// CORS allows any origin and answers every OPTIONS request with 204 before
// routing, auth or storage code runs. Browser clients on other origins call
// the action endpoint directly.
func CORS() echo.MiddlewareFunc {
	maxAge := strconv.Itoa(int(corsMaxAge.Seconds()))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			headers := c.Response().Header()
			headers.Set(echo.HeaderAccessControlAllowOrigin, "*")
			headers.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
			headers.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

			if c.Request().Method == http.MethodOptions {
				headers.Set(echo.HeaderAccessControlMaxAge, maxAge)
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
