package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a blog post that comments attach to.
type Post struct {
	ID          int64     `json:"id" validate:"gte=0"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required"`
	Content     string    `json:"content" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
}

// Comment represents a comment on a blog post. PostID is fixed once the
// comment has been created.
type Comment struct {
	ID        int64     `json:"id" validate:"gte=0"`
	PostID    int64     `json:"post_id" validate:"required,gt=0"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,max=254"`
	Body      string    `json:"body" validate:"required,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}
