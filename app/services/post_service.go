package services

import (
	"context"
	"errors"
	"fmt"

	"blogapi/app/payload"
	"blogapi/app/repositories"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	maxPage        = 1 << 20
)

// PostService handles the post operations the comment API relies on.
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost creates a new blog post with validation
func (s *PostService) CreatePost(ctx context.Context, req payload.Post) (*payload.Post, error) {
	post := toPostEntity(req)
	post.ID = 0
	if err := post.Validate(); err != nil {
		return nil, &BadRequestError{Message: fmt.Sprintf("invalid post: %v", err)}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	out := toPostPayload(post)
	return &out, nil
}

// GetPostByID retrieves a post by ID
func (s *PostService) GetPostByID(ctx context.Context, id int64) (*payload.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	out := toPostPayload(post)
	return &out, nil
}

// DeletePost removes a post together with its comments
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	err := s.postRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return postNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// NormalizePage clamps paging parameters to the range ListPosts serves.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// ListPosts retrieves a paginated list of posts
func (s *PostService) ListPosts(ctx context.Context, page, perPage int) ([]payload.Post, error) {
	page, perPage = NormalizePage(page, perPage)

	offset := (page - 1) * perPage
	posts, err := s.postRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	out := make([]payload.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostPayload(p))
	}
	return out, nil
}
