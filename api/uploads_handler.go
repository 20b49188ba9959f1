package api

import (
	"errors"
	"io"
	"net/http"

	"agrostore/internal/media"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadBytes caps product image uploads at 5 MB.
const maxUploadBytes = 5 << 20

// uploadsHandler implements the product image upload endpoint.
type uploadsHandler struct {
	uploader *media.Uploader
	logger   *zap.Logger
}

// NewUploadsHandler creates a new uploads handler.
func NewUploadsHandler(uploader *media.Uploader, logger *zap.Logger) *uploadsHandler {
	return &uploadsHandler{uploader: uploader, logger: logger}
}

// handleUpload handles POST /admin/uploads with a multipart "image" field,
// responding with the public URL of the stored file.
func (h *uploadsHandler) handleUpload(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	if file.Size > maxUploadBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}

	url, err := h.uploader.Upload(data)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			ctx.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported image type"})
			return
		}
		h.logger.Error("image upload failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"url": url})
}
