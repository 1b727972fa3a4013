package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-blog-api/internal/model"
)

type CommentStore interface {
	Create(ctx context.Context, c model.Comment) error
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentService struct {
	comments CommentStore
	posts    PostStore
}

func NewCommentService(comments CommentStore, posts PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	var fields []model.FieldError
	if strings.TrimSpace(c.PostID) == "" {
		fields = append(fields, model.FieldError{Field: "postId", Message: "Post id is required"})
	}
	if strings.TrimSpace(c.Comments) == "" {
		fields = append(fields, model.FieldError{Field: "comments", Message: "Comment text is required"})
	}
	if len(fields) > 0 {
		return model.Comment{}, &ValidationError{Fields: fields}
	}

	// Commenting on a deleted post is a 404, not an orphaned row.
	if _, err := s.posts.FindByID(ctx, c.PostID); err != nil {
		return model.Comment{}, err
	}

	c.ID = uuid.NewString()
	if c.Date.IsZero() {
		c.Date = time.Now().UTC()
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.comments.Delete(ctx, id)
}
