package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-blog-api/internal/model"
	"go-blog-api/internal/service"
	"go-blog-api/pkg/apierror"
)

type ImageHandler struct {
	service       *service.ImageService
	maxUploadSize int64
}

func NewImageHandler(service *service.ImageService, maxUploadSize int64) *ImageHandler {
	return &ImageHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, apierror.New("PAYLOAD_TOO_LARGE", "File is too large", "", http.StatusRequestEntityTooLarge))
			return
		}
		writeError(w, apierror.BadRequest("Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apierror.BadRequest("File is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, apierror.BadRequest("Could not read uploaded file"))
		return
	}

	filename, err := h.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UploadResponse{URL: "/file/" + filename})
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.Get(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}
