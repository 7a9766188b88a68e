package storage

import (
	"context"
	"io"
)

// UploadInput describes one image to persist.
type UploadInput struct {
	// Key is a caller-chosen identifier, typically productID/slot.
	Key         string
	ContentType string
	Body        io.Reader
}

// UploadResult is the stored blob's address.
type UploadResult struct {
	Key string
	URL string
}

// Storage persists image blobs and hands back retrievable URLs. One call per
// image; callers treat it as a black box.
type Storage interface {
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
}
