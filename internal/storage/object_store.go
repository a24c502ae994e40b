package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ObjectStore uploads a buffered file to an external image host and returns
// the public URL it is served from.
type ObjectStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type httpObjectStore struct {
	client   *http.Client
	endpoint string
	apiKey   string
	logger   *zap.Logger
}

// NewHTTPObjectStore creates an ObjectStore that POSTs files as multipart
// requests to the configured endpoint.
func NewHTTPObjectStore(endpoint, apiKey string, logger *zap.Logger) ObjectStore {
	return &httpObjectStore{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   logger,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload pushes the file to the object store and returns its public URL.
func (s *httpObjectStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	s.logger.Debug("Uploading file to object store",
		zap.String("filename", filename),
		zap.Int("size", len(data)),
	)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("object store returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	if uploaded.URL == "" {
		return "", fmt.Errorf("object store response missing url")
	}

	return uploaded.URL, nil
}
