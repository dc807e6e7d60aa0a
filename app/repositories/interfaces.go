package repositories

import (
	"context"
	"errors"

	"blogapi/app/models"
)

// ErrNotFound is returned by every repository implementation when the
// requested record does not exist.
var ErrNotFound = errors.New("record not found")

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}
