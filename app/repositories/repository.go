package repositories

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore owns the badger database shared by the badger repositories.
type BadgerStore struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool
}

// NewBadgerStore opens (or creates) a badger database at path. An empty path
// opens an isolated throwaway database in a temporary directory that is
// removed again on Close.
func NewBadgerStore(path string) (*BadgerStore, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "blogapi_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}

	db, err := badger.Open(badgerOptions(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}
	return &BadgerStore{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

// NewInMemoryBadgerStore opens a badger database that never touches disk.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadger opens the badger database at path with the options the blog
// service runs with.
func OpenBadger(path string) (*badger.DB, error) {
	return badger.Open(badgerOptions(path))
}

func badgerOptions(path string) badger.Options {
	return badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
}

// Posts returns a post repository backed by this store.
func (s *BadgerStore) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(s.db)
}

// Comments returns a comment repository backed by this store.
func (s *BadgerStore) Comments() *BadgerCommentRepository {
	return NewBadgerCommentRepository(s.db)
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}

	// Clean up test database
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}
