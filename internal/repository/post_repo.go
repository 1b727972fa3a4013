package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-api/internal/model"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p model.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, title, description, picture, username, categories, created_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Title, p.Description, p.Picture, p.Username, p.Categories, p.CreatedDate)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (model.Post, error) {
	var p model.Post
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, picture, username, categories, created_date
		 FROM posts WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Picture, &p.Username, &p.Categories, &p.CreatedDate)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Post{}, model.ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// List returns newest posts first, optionally filtered by category.
func (r *PostRepository) List(ctx context.Context, category string) ([]model.Post, error) {
	query := `SELECT id, title, description, picture, username, categories, created_date
	          FROM posts ORDER BY created_date DESC`
	args := []any{}
	if category != "" {
		query = `SELECT id, title, description, picture, username, categories, created_date
		         FROM posts WHERE categories = $1 ORDER BY created_date DESC`
		args = append(args, category)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Picture, &p.Username, &p.Categories, &p.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p model.Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $2, description = $3, picture = $4, categories = $5
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Picture, p.Categories)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}
