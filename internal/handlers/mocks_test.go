package handlers

import (
	"context"
	"net/url"

	"github.com/damacus/bucket-gate/internal/models"
	"github.com/damacus/bucket-gate/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore implements services.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListObjects(ctx context.Context, bucket string) ([]models.ObjectSummary, error) {
	args := m.Called(ctx, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ObjectSummary), args.Error(1)
}

func (m *MockObjectStore) Presign(ctx context.Context, req services.PresignRequest) (*url.URL, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}
