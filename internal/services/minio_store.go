package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements ObjectStore on top of minio-go
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates a client for any S3-compatible endpoint. The region
// is always passed explicitly so presigning never triggers a bucket
// location lookup.
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.ResolvedEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL(cfg),
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{client: client}, nil
}

func (s *MinioStore) ListObjects(ctx context.Context, bucket string) ([]models.ObjectSummary, error) {
	// Convert channel to slice
	objects := []models.ObjectSummary{}
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects in %s: %w", bucket, obj.Err)
		}
		objects = append(objects, models.ObjectSummary{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return objects, nil
}

func (s *MinioStore) Presign(ctx context.Context, req PresignRequest) (*url.URL, error) {
	if err := validatePresign(req); err != nil {
		return nil, err
	}

	var headers http.Header
	if req.Method == http.MethodPut && req.ContentType != "" {
		headers = http.Header{}
		headers.Set("Content-Type", req.ContentType)
	}

	u, err := s.client.PresignHeader(ctx, req.Method, req.Bucket, req.Key, req.Expires, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("presign %s %s: %w", req.Method, req.Key, err)
	}
	return u, nil
}
