package media

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnsupportedType is returned when an upload is not a supported image.
var ErrUnsupportedType = errors.New("unsupported image type")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Uploader stores product images under uniquely named paths and hands back
// their public URLs.
type Uploader struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewUploader creates a new Uploader over the given object store.
func NewUploader(store ObjectStore, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Uploader{store: store, logger: logger}
}

// Upload sniffs the content type, rejects anything that is not an image,
// stores the file as products/<uuid>.<ext> and returns its public URL.
func (u *Uploader) Upload(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !allowedTypes[mt.String()] {
		u.logger.Warn("rejected upload", zap.String("content_type", mt.String()))
		return "", ErrUnsupportedType
	}

	// La verificación del bucket no es bloqueante; la subida decide
	if !u.store.BucketExists(Bucket) {
		u.logger.Warn("bucket not found, attempting upload anyway", zap.String("bucket", Bucket))
	}

	path := "products/" + uuid.NewString() + mt.Extension()
	if err := u.store.Upload(path, data, mt.String()); err != nil {
		u.logger.Error("image upload failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	publicURL := u.store.PublicURL(path)
	u.logger.Info("image uploaded", zap.String("path", path), zap.String("url", publicURL))
	return publicURL, nil
}

// Delete removes a previously uploaded image by its object path.
func (u *Uploader) Delete(path string) error {
	return u.store.Remove([]string{path})
}
