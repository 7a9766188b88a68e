package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/trendella/storefront/internal/storage"
	"github.com/trendella/storefront/pkg/httpclient"
)

// Storage uploads image blobs to a remote media endpoint over HTTP. The
// endpoint accepts a multipart form with a single "file" part and answers
// with a JSON body carrying the blob's public address in "secure_url".
type Storage struct {
	client    *httpclient.CircuitBreakerClient
	uploadURL string
	logger    *slog.Logger
}

// uploadResponse is the media endpoint's answer.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// New creates a cloud storage backend talking to uploadURL.
func New(uploadURL string, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *Storage {
	return &Storage{
		client:    client,
		uploadURL: uploadURL,
		logger:    logger,
	}
}

// Upload sends the blob as a multipart form and returns the URL the backend
// assigned. The form is buffered in memory so the transport can replay it on
// retry.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, input.Key))
	if input.ContentType != "" {
		header.Set("Content-Type", input.ContentType)
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, input.Body); err != nil {
		return nil, fmt.Errorf("copy blob into form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	resp, err := s.client.Post(ctx, s.uploadURL, writer.FormDataContentType(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", input.Key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("upload blob %s: unexpected status %d: %s", input.Key, resp.StatusCode, body)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if decoded.SecureURL == "" {
		return nil, fmt.Errorf("upload blob %s: response missing secure_url", input.Key)
	}

	s.logger.DebugContext(ctx, "blob uploaded",
		slog.String("key", input.Key),
		slog.String("url", decoded.SecureURL),
	)

	return &storage.UploadResult{Key: input.Key, URL: decoded.SecureURL}, nil
}
