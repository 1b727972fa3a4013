package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"go-blog-api/internal/model"
)

type ImageStore interface {
	Store(ctx context.Context, img model.Image) error
	FindByFilename(ctx context.Context, filename string) (model.Image, error)
}

type ImageService struct {
	images ImageStore
}

func NewImageService(images ImageStore) *ImageService {
	return &ImageService{images: images}
}

// Upload verifies the payload decodes as an image before persisting it and
// returns the stored filename. The stored name is prefixed with a fresh id
// so uploads with the same original name cannot clobber each other.
func (s *ImageService) Upload(ctx context.Context, originalName string, contentType string, data []byte) (string, error) {
	format, err := sniffImage(data)
	if err != nil {
		return "", &ValidationError{Fields: []model.FieldError{
			{Field: "file", Message: "File must be a valid image"},
		}}
	}

	if contentType == "" {
		contentType = "image/" + format
	}

	filename := buildFilename(originalName, format)
	img := model.Image{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.images.Store(ctx, img); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *ImageService) Get(ctx context.Context, filename string) (model.Image, error) {
	return s.images.FindByFilename(ctx, filename)
}

func sniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image config: %w", err)
	}
	return format, nil
}

func buildFilename(originalName string, format string) string {
	base := path.Base(strings.TrimSpace(originalName))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == "/" {
		base = "upload." + format
	}
	return uuid.NewString()[:8] + "-" + base
}
