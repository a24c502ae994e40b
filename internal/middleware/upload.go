package middleware

import (
	"context"
	"io"
	"net/http"

	"catalog-api/internal/storage"

	"go.uber.org/zap"
)

const (
	// ImageURLKey holds the public URL of an uploaded image.
	ImageURLKey contextKey = "image_url"

	// maxUploadMemory caps the in-memory multipart form buffer.
	maxUploadMemory = 10 << 20 // 10 MiB
)

// UploadMiddleware runs the two-stage upload pipeline in front of a
// handler: buffer the file from the named multipart field fully in memory,
// push it to the object store, and attach the resulting URL to the request
// context. A request without the file field passes through untouched, so
// downstream handlers must tolerate a missing URL. A store failure ends the
// request with 500 before any persistence happens.
func UploadMiddleware(store storage.ObjectStore, fieldName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
				logger.Debug("Failed to parse multipart form", zap.Error(err))
				RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
				return
			}

			file, header, err := r.FormFile(fieldName)
			if err == http.ErrMissingFile {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				logger.Debug("Failed to read file field", zap.Error(err))
				RespondWithError(w, http.StatusBadRequest, "invalid file field")
				return
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				logger.Error("Failed to buffer uploaded file", zap.Error(err))
				RespondWithError(w, http.StatusInternalServerError, "failed to read uploaded file")
				return
			}

			url, err := store.Upload(r.Context(), header.Filename, data)
			if err != nil {
				logger.Error("Object store upload failed",
					zap.Error(err),
					zap.String("filename", header.Filename),
				)
				RespondWithError(w, http.StatusInternalServerError, "failed to upload image")
				return
			}

			logger.Debug("Image uploaded",
				zap.String("filename", header.Filename),
				zap.String("url", url),
			)

			ctx := context.WithValue(r.Context(), ImageURLKey, url)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetImageURL extracts the uploaded image URL from the request context
func GetImageURL(ctx context.Context) (string, bool) {
	url, ok := ctx.Value(ImageURLKey).(string)
	return url, ok
}
