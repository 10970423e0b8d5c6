package middleware

import (
	"log/slog"
	"net/http"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/services"
	"github.com/labstack/echo/v4"
)

// ActionGuard rejects action requests before the body is read: with 403
// when the environment tier disables the endpoint, and with 500 when no
// shared password is configured.
func ActionGuard(cfg config.Config, authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.ActionsBlocked() {
				slog.Warn("action endpoint disabled for tier", "env", cfg.Env, "path", c.Request().URL.Path)
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden: the action API is disabled in this environment")
			}

			if !authService.Configured() {
				return echo.NewHTTPError(http.StatusInternalServerError, "Server is not configured").
					SetInternal(services.ErrNotConfigured)
			}

			return next(c)
		}
	}
}
