package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-api/internal/model"
)

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// Store upserts by filename so re-uploading a file replaces its content
// instead of failing on the unique index.
func (r *ImageRepository) Store(ctx context.Context, img model.Image) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO images (id, filename, content_type, data, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (filename) DO UPDATE
		 SET content_type = EXCLUDED.content_type, data = EXCLUDED.data`,
		img.ID, img.Filename, img.ContentType, img.Data, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	return nil
}

func (r *ImageRepository) FindByFilename(ctx context.Context, filename string) (model.Image, error) {
	var img model.Image
	err := r.pool.QueryRow(ctx,
		`SELECT id, filename, content_type, data, created_at
		 FROM images WHERE filename = $1`, filename).
		Scan(&img.ID, &img.Filename, &img.ContentType, &img.Data, &img.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Image{}, model.ErrImageNotFound
	}
	if err != nil {
		return model.Image{}, fmt.Errorf("find image: %w", err)
	}
	return img, nil
}
