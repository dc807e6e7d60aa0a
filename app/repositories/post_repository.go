package repositories

import (
	"context"
	"fmt"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(_ context.Context, post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(_ context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a paginated list of posts
func (r *BadgerPostRepository) List(_ context.Context, limit, offset int) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		count := 0
		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if count < offset {
				count++
				continue
			}
			if count >= offset+limit {
				break
			}

			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete deletes a post by ID together with its comments
func (r *BadgerPostRepository) Delete(_ context.Context, id int64) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)
		if _, err := txn.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}

		var indexKeys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := postCommentPrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			indexKeys = append(indexKeys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range indexKeys {
			commentID, err := commentIDFromIndexKey(k)
			if err != nil {
				return err
			}
			if err := txn.Delete(commentKey(commentID)); err != nil {
				return err
			}
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		return txn.Delete(key)
	})
}
