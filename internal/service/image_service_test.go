package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/model"
)

type memImageStore struct {
	mu     sync.Mutex
	images map[string]model.Image
}

func (s *memImageStore) Store(_ context.Context, img model.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[img.Filename] = img
	return nil
}

func (s *memImageStore) FindByFilename(_ context.Context, filename string) (model.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[filename]
	if !ok {
		return model.Image{}, model.ErrImageNotFound
	}
	return img, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageUploadAndGet(t *testing.T) {
	store := &memImageStore{images: map[string]model.Image{}}
	svc := NewImageService(store)
	ctx := context.Background()

	filename, err := svc.Upload(ctx, "banner.png", "image/png", pngBytes(t))
	require.NoError(t, err)
	assert.Contains(t, filename, "banner.png")

	img, err := svc.Get(ctx, filename)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.NotEmpty(t, img.Data)
}

func TestImageUpload_RejectsNonImage(t *testing.T) {
	store := &memImageStore{images: map[string]model.Image{}}
	svc := NewImageService(store)

	_, err := svc.Upload(context.Background(), "notes.txt", "text/plain", []byte("just text"))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestImageUpload_SameNameDoesNotCollide(t *testing.T) {
	store := &memImageStore{images: map[string]model.Image{}}
	svc := NewImageService(store)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "photo.png", "image/png", pngBytes(t))
	require.NoError(t, err)
	second, err := svc.Upload(ctx, "photo.png", "image/png", pngBytes(t))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestImageUpload_FillsContentTypeFromFormat(t *testing.T) {
	store := &memImageStore{images: map[string]model.Image{}}
	svc := NewImageService(store)
	ctx := context.Background()

	filename, err := svc.Upload(ctx, "photo.png", "", pngBytes(t))
	require.NoError(t, err)

	img, err := svc.Get(ctx, filename)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestImageGet_Missing(t *testing.T) {
	store := &memImageStore{images: map[string]model.Image{}}
	svc := NewImageService(store)

	_, err := svc.Get(context.Background(), "nope.png")
	assert.ErrorIs(t, err, model.ErrImageNotFound)
}
