package main

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/damacus/bucket-gate/internal/models"
	"github.com/damacus/bucket-gate/internal/services"
)

// fakeStore is an in-memory ObjectStore. Presigned URLs point at a fake
// host and carry the method and lifetime so tests can inspect them.
type fakeStore struct {
	mu       sync.Mutex
	objects  map[string]models.ObjectSummary
	lists    int
	presigns []services.PresignRequest
	seq      int
	failWith error
}

func newFakeStore(objects ...models.ObjectSummary) *fakeStore {
	s := &fakeStore{objects: map[string]models.ObjectSummary{}}
	for _, o := range objects {
		s.objects[o.Key] = o
	}
	return s
}

func (s *fakeStore) ListObjects(ctx context.Context, bucket string) ([]models.ObjectSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]models.ObjectSummary, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *fakeStore) Presign(ctx context.Context, req services.PresignRequest) (*url.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presigns = append(s.presigns, req)
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.seq++
	q := url.Values{}
	q.Set("method", req.Method)
	q.Set("expires", strconv.Itoa(int(req.Expires.Seconds())))
	q.Set("sig", fmt.Sprintf("sig-%d", s.seq))
	return &url.URL{
		Scheme:   "https",
		Host:     "fake.store",
		Path:     "/" + req.Bucket + "/" + req.Key,
		RawQuery: q.Encode(),
	}, nil
}

func (s *fakeStore) calls() (lists, presigns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, len(s.presigns)
}
