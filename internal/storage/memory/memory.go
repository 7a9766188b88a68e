package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/trendella/storefront/internal/storage"
)

// Storage is an in-memory blob store for development and tests. Blobs are
// addressable under a fake base URL.
type Storage struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string][]byte
}

// New creates an in-memory storage rooted at baseURL.
func New(baseURL string) *Storage {
	return &Storage{
		baseURL: baseURL,
		blobs:   make(map[string][]byte),
	}
}

// Upload stores the blob and returns its synthetic URL.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	s.mu.Lock()
	s.blobs[input.Key] = data
	s.mu.Unlock()

	return &storage.UploadResult{
		Key: input.Key,
		URL: s.baseURL + "/" + input.Key,
	}, nil
}

// Get returns a stored blob. Test helper.
func (s *Storage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	return data, ok
}

// Len returns the number of stored blobs. Test helper.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
