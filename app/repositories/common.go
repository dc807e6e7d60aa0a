package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
	// PostCommentPrefix indexes comment ids under their owning post.
	PostCommentPrefix = "post_comment:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

// ids are zero padded so that prefix iteration runs in id order
func formatID(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func postKey(id int64) []byte {
	return []byte(PostKeyPrefix + formatID(id))
}

func commentKey(id int64) []byte {
	return []byte(CommentKeyPrefix + formatID(id))
}

func postCommentPrefix(postID int64) []byte {
	return []byte(PostCommentPrefix + formatID(postID) + ":")
}

func postCommentKey(postID, commentID int64) []byte {
	return append(postCommentPrefix(postID), formatID(commentID)...)
}

// commentIDFromIndexKey extracts the comment id from a post_comment key.
func commentIDFromIndexKey(key []byte) (int64, error) {
	s := string(key)
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return 0, fmt.Errorf("malformed index key %q", s)
	}
	return strconv.ParseInt(s[i+1:], 10, 64)
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int64, error) {
	var id int64
	item, err := txn.Get([]byte(seqKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		id = 1
	} else if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	} else {
		err = item.Value(func(val []byte) error {
			current, err := strconv.ParseInt(string(val), 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse sequence: %w", err)
			}
			id = current + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	// Update the sequence
	if err := txn.Set([]byte(seqKey), []byte(strconv.FormatInt(id, 10))); err != nil {
		return 0, fmt.Errorf("failed to update sequence: %w", err)
	}

	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the value stored at key into v, translating a missing key
// into ErrNotFound.
func getEntity(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, v)
	})
}
