package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/config"
)

// Accepted upload content types. Anything else is rejected before a byte is
// written to the bucket.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrUnsupportedContentType indicates an upload with a non-image content type
type ErrUnsupportedContentType struct {
	ContentType string
}

func (e ErrUnsupportedContentType) Error() string {
	return "unsupported upload content type: " + e.ContentType
}

// ImageStore persists uploaded images and returns their public URL
type ImageStore interface {
	Save(ctx context.Context, contentType string, r io.Reader) (string, error)
	Close() error
}

// GCSImageStore stores product and room images in a Google Cloud Storage
// bucket under random object names.
type GCSImageStore struct {
	logger        *slog.Logger
	client        *gcs.Client
	bucket        string
	publicBaseURL string
}

func NewGCSImageStore(ctx context.Context, logger *slog.Logger, cfg *config.StorageConfig) (*GCSImageStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	logger.Info("Connected to GCS", "bucket", cfg.Bucket)

	return &GCSImageStore{
		logger:        logger,
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Save streams the image into the bucket and returns its public URL. Callers
// are expected to wrap r with an upload size limit.
func (s *GCSImageStore) Save(ctx context.Context, contentType string, r io.Reader) (string, error) {
	name, err := objectName(contentType)
	if err != nil {
		return "", err
	}

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", name, err)
	}

	s.logger.Debug("Stored image", "bucket", s.bucket, "object", name)

	return s.publicURL(name), nil
}

func (s *GCSImageStore) Close() error {
	return s.client.Close()
}

func (s *GCSImageStore) publicURL(name string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + name
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name)
}

// objectName builds a collision-free object name with the extension implied
// by the content type.
func objectName(contentType string) (string, error) {
	ext, ok := allowedContentTypes[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedContentType{ContentType: contentType}
	}
	return path.Join("images", uuid.New().String()+ext), nil
}
