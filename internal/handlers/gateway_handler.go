package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/metrics"
	"github.com/damacus/bucket-gate/internal/models"
	"github.com/damacus/bucket-gate/internal/services"
	"github.com/damacus/bucket-gate/internal/utils"
	"github.com/labstack/echo/v4"
)

type GatewayHandler struct {
	store       services.ObjectStore
	authService *services.AuthService
	metrics     *metrics.Metrics
	bucket      string
	presign     config.PresignConfig
}

func NewGatewayHandler(cfg config.Config, store services.ObjectStore, authService *services.AuthService, m *metrics.Metrics) *GatewayHandler {
	return &GatewayHandler{
		store:       store,
		authService: authService,
		metrics:     m,
		bucket:      cfg.Storage.Bucket,
		presign:     cfg.Presign,
	}
}

// Action handles POST /api and POST /api/:action. A path segment that names
// a known action wins; otherwise the body's action field does. An empty body
// is treated as an empty request.
func (h *GatewayHandler) Action(c echo.Context) error {
	var req models.ActionRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil && !errors.Is(err, io.EOF) {
		return errBadRequest("body must be a JSON object")
	}

	if err := h.authService.Verify(req.Password); err != nil {
		if errors.Is(err, services.ErrNotConfigured) {
			return errNotConfigured(err)
		}
		h.metrics.AuthFailed()
		return errUnauthorized()
	}

	action, ok := ParseAction(c.Param("action"))
	if !ok {
		action, ok = ParseAction(req.Action)
	}
	if !ok {
		return errActionNotFound(req.Action)
	}

	switch action {
	case ActionListFiles:
		return h.listFiles(c)
	case ActionGenerateUploadURL:
		return h.generateUploadURL(c, req)
	case ActionGenerateDownloadURL:
		return h.generateDownloadURL(c, req)
	}
	return errActionNotFound(string(action))
}

func (h *GatewayHandler) listFiles(c echo.Context) error {
	files, err := h.store.ListObjects(c.Request().Context(), h.bucket)
	h.metrics.ObserveStore("list", err)
	if err != nil {
		return errUpstream("Failed to list files", err)
	}
	if files == nil {
		files = []models.ObjectSummary{}
	}
	return c.JSON(http.StatusOK, models.FilesResponse{Files: files})
}

func (h *GatewayHandler) generateUploadURL(c echo.Context, req models.ActionRequest) error {
	in := models.UploadURLRequest{Filename: req.Filename, ContentType: req.ContentType}
	if err := c.Validate(&in); err != nil {
		return errBadRequest("filename and contentType are required.")
	}

	u, err := h.presignURL(c.Request().Context(), http.MethodPut, in.Filename, in.ContentType, h.presign.UploadTTL)
	if err != nil {
		return errUpstream("Failed to generate upload URL", err)
	}
	return c.JSON(http.StatusOK, models.URLResponse{URL: u.String()})
}

func (h *GatewayHandler) generateDownloadURL(c echo.Context, req models.ActionRequest) error {
	in := models.DownloadURLRequest{Filename: req.Filename}
	if err := c.Validate(&in); err != nil {
		return errBadRequest("filename is required.")
	}

	u, err := h.presignURL(c.Request().Context(), http.MethodGet, in.Filename, "", h.presign.DownloadTTL)
	if err != nil {
		return errUpstream("Failed to generate download URL", err)
	}
	return c.JSON(http.StatusOK, models.URLResponse{URL: u.String()})
}

// Download handles GET <prefix>/*: a public share link that redirects to a
// short-lived presigned GET URL for the key in the remaining path.
func (h *GatewayHandler) Download(c echo.Context) error {
	prefix := strings.TrimSuffix(c.Path(), "*")
	key, err := utils.ObjectKeyFromPath(c.Request().URL.EscapedPath(), prefix)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyKey) {
			return errBadRequest("filename is required.")
		}
		return errBadRequest("malformed object key")
	}

	u, err := h.presignURL(c.Request().Context(), http.MethodGet, key, "", h.presign.ShareTTL)
	if err != nil {
		return errUpstream("Could not process the download link", err)
	}
	return c.Redirect(http.StatusFound, u.String())
}

func (h *GatewayHandler) presignURL(ctx context.Context, method, key, contentType string, ttl time.Duration) (*url.URL, error) {
	u, err := h.store.Presign(ctx, services.PresignRequest{
		Method:      method,
		Bucket:      h.bucket,
		Key:         key,
		ContentType: contentType,
		Expires:     ttl,
	})
	h.metrics.ObserveStore("presign_"+strings.ToLower(method), err)
	if err != nil {
		return nil, err
	}
	slog.Debug("issued presigned url", "method", method, "key", key, "ttl", ttl)
	return u, nil
}
