package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/damacus/bucket-gate/internal/models"
	"github.com/labstack/echo/v4"
)

func errBadRequest(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, "Bad Request: "+msg)
}

func errUnauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: wrong or missing password")
}

func errNotConfigured(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, "Server is not configured").SetInternal(err)
}

func errActionNotFound(action string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Action not found: %q", action))
}

// errUpstream reports a failed object store call. The cause is part of the
// message so callers get a diagnostic, and it is kept as internal for logs.
func errUpstream(msg string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, msg+": "+err.Error()).SetInternal(err)
}

// ErrorHandler writes every error as a JSON ErrorResponse. Server side
// failures are logged at error level, client errors at debug.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error: "+err.Error()).SetInternal(err)
	}

	req := c.Request()
	attrs := []any{"method", req.Method, "path", req.URL.Path, "status", he.Code}
	if he.Internal != nil {
		attrs = append(attrs, "err", he.Internal)
	}
	if he.Code >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Debug("request rejected", attrs...)
	}

	if req.Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, models.ErrorResponse{
			Error:   http.StatusText(he.Code),
			Message: fmt.Sprint(he.Message),
		})
	}
	if err != nil {
		slog.Error("failed to write error response", "err", err)
	}
}
