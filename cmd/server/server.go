package main

import (
	"log/slog"
	"net/http"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/handlers"
	"github.com/damacus/bucket-gate/internal/metrics"
	customMiddleware "github.com/damacus/bucket-gate/internal/middleware"
	"github.com/damacus/bucket-gate/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func newServer(cfg config.Config, store services.ObjectStore, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler
	e.Validator = handlers.NewRequestValidator()

	// Services
	authService := services.NewAuthService(cfg.Auth.Password)
	gatewayHandler := handlers.NewGatewayHandler(cfg, store, authService, m)

	// Middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer m.Inflight()()
			return next(c)
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			m.ObserveRequest(v.Method, v.Status, v.Latency)
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "REQUEST",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())
	e.Use(customMiddleware.CORS())

	// Public Routes
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// Share links: no password, the short presign lifetime is the protection
	e.GET("/api/download/*", gatewayHandler.Download)
	e.GET("/download/*", gatewayHandler.Download)

	// Action endpoint
	guard := customMiddleware.ActionGuard(cfg, authService)
	e.POST("/api", gatewayHandler.Action, guard)
	e.POST("/api/:action", gatewayHandler.Action, guard)

	return e
}
