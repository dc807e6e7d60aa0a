package repositories

import (
	"context"
	"fmt"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments live under comment:<id>; post_comment:<postID>:<id> indexes them
// by post.
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(_ context.Context, comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id
		comment.BeforeCreate()

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		if err := txn.Set(commentKey(comment.ID), data); err != nil {
			return err
		}
		return txn.Set(postCommentKey(comment.PostID, comment.ID), nil)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, commentKey(id), &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := postCommentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := commentIDFromIndexKey(it.Item().Key())
			if err != nil {
				return err
			}

			var comment models.Comment
			if err := getEntity(txn, commentKey(id), &comment); err != nil {
				return fmt.Errorf("failed to load comment %d: %w", id, err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates an existing comment
func (r *BadgerCommentRepository) Update(_ context.Context, comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.Comment
		if err := getEntity(txn, commentKey(comment.ID), &existing); err != nil {
			return err
		}

		if existing.PostID != comment.PostID {
			if err := txn.Delete(postCommentKey(existing.PostID, existing.ID)); err != nil {
				return err
			}
			if err := txn.Set(postCommentKey(comment.PostID, comment.ID), nil); err != nil {
				return err
			}
		}

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentKey(comment.ID), data)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(_ context.Context, id int64) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.Comment
		if err := getEntity(txn, commentKey(id), &existing); err != nil {
			return err
		}

		if err := txn.Delete(postCommentKey(existing.PostID, id)); err != nil {
			return err
		}
		return txn.Delete(commentKey(id))
	})
}
