// Package mock provides in-memory repositories for tests.
package mock

import (
	"context"
	"sort"
	"sync"

	"blogapi/app/models"
	"blogapi/app/repositories"
)

type PostRepository struct {
	posts    map[int64]models.Post
	nextID   int64
	mutex    sync.RWMutex
	comments *CommentRepository
}

type CommentRepository struct {
	comments map[int64]models.Comment
	nextID   int64
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int64]models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int64]models.Comment),
		nextID:   1,
	}
}

// NewRepositories returns a linked pair: deleting a post also deletes its
// comments, as the badger and gorm stores do.
func NewRepositories() (*PostRepository, *CommentRepository) {
	comments := NewCommentRepository()
	posts := NewPostRepository()
	posts.comments = comments
	return posts, comments
}

// PostRepository implementation
func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	post.BeforeCreate()
	m.nextID++
	m.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) GetByID(_ context.Context, id int64) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *PostRepository) Delete(_ context.Context, id int64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)

	if m.comments != nil {
		m.comments.deleteByPost(id)
	}
	return nil
}

func (m *PostRepository) List(_ context.Context, limit, offset int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	count := 0
	for id := int64(1); id < m.nextID; id++ {
		post, exists := m.posts[id]
		if !exists {
			continue
		}
		if count >= offset && len(posts) < limit {
			p := post
			posts = append(posts, &p)
		}
		count++
	}
	return posts, nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	comment.BeforeCreate()
	m.nextID++
	m.comments[comment.ID] = *comment
	return nil
}

func (m *CommentRepository) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) Update(_ context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = *comment
	return nil
}

func (m *CommentRepository) Delete(_ context.Context, id int64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) deleteByPost(postID int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
}

func (m *CommentRepository) ListByPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			c := comment
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

var (
	_ repositories.PostRepository    = (*PostRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)
