package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/models"
)

// PresignRequest describes one presigned URL to issue
type PresignRequest struct {
	Method      string // http.MethodGet or http.MethodPut
	Bucket      string
	Key         string
	ContentType string // signed into PUT URLs when set
	Expires     time.Duration
}

// ObjectStore is the subset of an S3 client the gateway needs
type ObjectStore interface {
	// ListObjects returns every object in the bucket, without prefix filtering.
	ListObjects(ctx context.Context, bucket string) ([]models.ObjectSummary, error)
	Presign(ctx context.Context, req PresignRequest) (*url.URL, error)
}

// NewObjectStore builds the driver selected by cfg.Driver
func NewObjectStore(cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinioStore(cfg)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func validatePresign(req PresignRequest) error {
	if req.Method != http.MethodGet && req.Method != http.MethodPut {
		return fmt.Errorf("unsupported presign method %q", req.Method)
	}
	if req.Key == "" {
		return fmt.Errorf("presign %s: empty object key", req.Method)
	}
	if req.Expires <= 0 {
		return fmt.Errorf("presign %s %s: non-positive expiry", req.Method, req.Key)
	}
	return nil
}

// useSSL applies the explicit override, falling back to endpoint detection
func useSSL(cfg config.StorageConfig) bool {
	if cfg.UseSSL != nil {
		return *cfg.UseSSL
	}
	if strings.HasPrefix(cfg.Endpoint, "http://") {
		return false
	}
	return shouldUseSSL(cfg.ResolvedEndpoint())
}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	// Local development endpoints
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, minio2:9000, etc.)
	// Only match simple hostnames without dots (not domain names like minio.example.com)
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}
