package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-blog-api/internal/model"
)

type PostStore interface {
	Create(ctx context.Context, p model.Post) error
	FindByID(ctx context.Context, id string) (model.Post, error)
	List(ctx context.Context, category string) ([]model.Post, error)
	Update(ctx context.Context, p model.Post) error
	Delete(ctx context.Context, id string) error
}

type PostService struct {
	posts PostStore
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// Create stamps the post with its id, the author from the verified claims,
// and the server-side creation time. The author field in the body is ignored.
func (s *PostService) Create(ctx context.Context, p model.Post, author string) (model.Post, error) {
	if err := validatePostFields(p); err != nil {
		return model.Post{}, err
	}

	p.ID = uuid.NewString()
	p.Username = author
	p.CreatedDate = time.Now().UTC()

	if err := s.posts.Create(ctx, p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (model.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context, category string) ([]model.Post, error) {
	return s.posts.List(ctx, strings.TrimSpace(category))
}

func (s *PostService) Update(ctx context.Context, id string, p model.Post) (model.Post, error) {
	if err := validatePostFields(p); err != nil {
		return model.Post{}, err
	}

	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	existing.Title = p.Title
	existing.Description = p.Description
	existing.Picture = p.Picture
	existing.Categories = p.Categories

	if err := s.posts.Update(ctx, existing); err != nil {
		return model.Post{}, err
	}
	return existing, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}

func validatePostFields(p model.Post) error {
	var fields []model.FieldError

	if strings.TrimSpace(p.Title) == "" {
		fields = append(fields, model.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(p.Description) == "" {
		fields = append(fields, model.FieldError{Field: "description", Message: "Description is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
