package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/illodev/technical-test-go/internal/apperr"
	"github.com/illodev/technical-test-go/internal/auth"
	"github.com/illodev/technical-test-go/internal/services"
	"github.com/illodev/technical-test-go/internal/store"
)

const (
	formFieldFile      = "file"
	maxMultipartMemory = 32 << 20
	maxUploadBytes     = 64 << 20
)

// UserImageHandler provides HTTP handlers for image uploads.
type UserImageHandler struct {
	imageService *services.UserImageService
}

// NewUserImageHandler constructs a handler with the provided service.
func NewUserImageHandler(imageService *services.UserImageService) *UserImageHandler {
	return &UserImageHandler{imageService: imageService}
}

// UserImageRouter registers user image routes on the given router.
func UserImageRouter(r chi.Router, imageService *services.UserImageService, tokens *auth.TokenService) {
	handler := NewUserImageHandler(imageService)

	authenticated := RequireAuth(tokens, auth.AnyAuthenticated)

	r.With(authenticated).Post("/", handler.CreateUserImage)
	r.With(authenticated).Delete("/{id}", handler.DeleteUserImage)
}

// CreateUserImage stores the uploaded "file" multipart part and returns
// the created metadata record.
func (h *UserImageHandler) CreateUserImage(w http.ResponseWriter, r *http.Request) {
	upload, err := parseUpload(r)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	image, err := h.imageService.Create(r.Context(), upload)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, image)
}

// DeleteUserImage removes the blob and then the record. The record
// lookup runs first, so an unknown id 404s before any blob access.
func (h *UserImageHandler) DeleteUserImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.imageService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "User image not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseUpload(r *http.Request) (services.Upload, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return services.Upload{}, apperr.Domain("Invalid multipart form")
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File[formFieldFile]) == 0 {
		return services.Upload{}, apperr.Validation(validationFailedMessage, []apperr.FieldError{
			{Field: formFieldFile, Message: "is required"},
		})
	}

	fileHeader := r.MultipartForm.File[formFieldFile][0]
	file, err := fileHeader.Open()
	if err != nil {
		return services.Upload{}, apperr.Domain("Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return services.Upload{}, apperr.Domain("Failed to read upload")
	}
	if int64(len(data)) > maxUploadBytes {
		return services.Upload{}, apperr.Domain("Uploaded file too large")
	}

	return services.Upload{
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Data:         data,
	}, nil
}
