package services

import (
	"context"
	"errors"
	"fmt"

	"blogapi/app/models"
	"blogapi/app/payload"
	"blogapi/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment stores a new comment under postID. Any id carried by the
// request is ignored.
func (s *CommentService) CreateComment(ctx context.Context, postID int64, req payload.Comment) (*payload.Comment, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := toCommentEntity(req)
	comment.ID = 0
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	out := toCommentPayload(comment)
	return &out, nil
}

// GetCommentsByPostID lists the comments attached to postID. The post itself
// is not looked up, so an unknown post yields an empty list.
func (s *CommentService) GetCommentsByPostID(ctx context.Context, postID int64) ([]payload.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %d: %w", postID, err)
	}

	out := make([]payload.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentPayload(c))
	}
	return out, nil
}

// GetCommentByID returns the comment if it belongs to postID.
func (s *CommentService) GetCommentByID(ctx context.Context, postID, commentID int64) (*payload.Comment, error) {
	comment, err := s.findPostComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	out := toCommentPayload(comment)
	return &out, nil
}

// UpdateComment overwrites name, email and body. The owning post and the
// creation time never change.
func (s *CommentService) UpdateComment(ctx context.Context, postID, commentID int64, req payload.Comment) (*payload.Comment, error) {
	comment, err := s.findPostComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Name = req.Name
	comment.Email = req.Email
	comment.Body = req.Body
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, commentNotFound(commentID)
		}
		return nil, fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}

	out := toCommentPayload(comment)
	return &out, nil
}

// DeleteComment removes the comment if it belongs to postID.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID int64) error {
	if _, err := s.findPostComment(ctx, postID, commentID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return commentNotFound(commentID)
		}
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}
	return nil
}

func (s *CommentService) findPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound(postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}
	return post, nil
}

// findPostComment resolves the post, then the comment, then checks that the
// comment is attached to that post.
func (s *CommentService) findPostComment(ctx context.Context, postID, commentID int64) (*models.Comment, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, commentNotFound(commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", commentID, err)
	}

	if !comment.BelongsTo(post.ID) {
		return nil, commentNotInPost()
	}
	return comment, nil
}

func validateComment(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return &BadRequestError{Message: fmt.Sprintf("invalid comment: %v", err)}
	}
	return nil
}
