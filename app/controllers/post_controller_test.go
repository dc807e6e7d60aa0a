package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"blogapi/app/models"
	"blogapi/app/payload"
	"blogapi/app/repositories/mock"
	"blogapi/app/services"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostController(t *testing.T) (*PostController, *mock.PostRepository, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	posts := mock.NewPostRepository()
	return NewPostController(services.NewPostService(posts), log), posts, hook
}

func TestPostControllerCreateAndShow(t *testing.T) {
	pc, _, _ := setupPostController(t)

	rr := call(pc.Create, http.MethodPost, "/api/posts",
		`{"title":"Hello","description":"A short description","content":"Body text"}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created payload.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	require.NotZero(t, created.ID)

	rr = call(pc.Show, http.MethodGet, "/api/posts/"+id(created.ID), "", map[string]string{"id": id(created.ID)})
	require.Equal(t, http.StatusOK, rr.Code)

	var got payload.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, created, got)
}

func TestPostControllerErrors(t *testing.T) {
	pc, _, _ := setupPostController(t)

	rr := call(pc.Create, http.MethodPost, "/api/posts", `{"title":"H"}`, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeError(t, rr)
	assert.Contains(t, body.Fields, "title")
	assert.Contains(t, body.Fields, "description")

	rr = call(pc.Create, http.MethodPost, "/api/posts", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = call(pc.Show, http.MethodGet, "/api/posts/9", "", map[string]string{"id": "9"})
	require.Equal(t, http.StatusNotFound, rr.Code)
	body = decodeError(t, rr)
	assert.Equal(t, "Post not found with id : '9'", body.Message)
	assert.Equal(t, "uri=/api/posts/9", body.Details)

	rr = call(pc.Show, http.MethodGet, "/api/posts/nine", "", map[string]string{"id": "nine"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostControllerIndex(t *testing.T) {
	pc, posts, _ := setupPostController(t)
	for _, title := range []string{"One", "Two", "Three"} {
		require.NoError(t, posts.Create(context.Background(), &models.Post{
			Title: title, Description: "Some description", Content: "Content",
		}))
	}

	rr := call(pc.Index, http.MethodGet, "/api/posts?page=2&per_page=2", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page payload.PostPage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "Three", page.Posts[0].Title)

	rr = call(pc.Index, http.MethodGet, "/api/posts?page=-3", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Posts, 3)
}

type failingPosts struct {
	*mock.PostRepository
}

func (failingPosts) List(context.Context, int, int) ([]*models.Post, error) {
	return nil, errors.New("disk on fire")
}

func TestPostControllerInternalError(t *testing.T) {
	log, hook := test.NewNullLogger()
	pc := NewPostController(services.NewPostService(failingPosts{mock.NewPostRepository()}), log)

	rr := call(pc.Index, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", decodeError(t, rr).Message)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "request failed", hook.LastEntry().Message)
}

func TestPostControllerIndexHugePage(t *testing.T) {
	pc, posts, _ := setupPostController(t)
	require.NoError(t, posts.Create(context.Background(), &models.Post{
		Title: "Only", Description: "Some description", Content: "Content",
	}))

	rr := call(pc.Index, http.MethodGet, "/api/posts?page=9223372036854775807&per_page=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page payload.PostPage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	assert.Equal(t, 1<<20, page.Page)
	assert.Empty(t, page.Posts)
}

func TestPostControllerDelete(t *testing.T) {
	log, _ := test.NewNullLogger()
	posts, comments := mock.NewRepositories()
	pc := NewPostController(services.NewPostService(posts), log)

	post := &models.Post{Title: "Doomed", Description: "Will be deleted", Content: "Content"}
	require.NoError(t, posts.Create(context.Background(), post))
	comment := &models.Comment{PostID: post.ID, Name: "Ada", Email: "ada@example.com", Body: "Goes with the post"}
	require.NoError(t, comments.Create(context.Background(), comment))

	vars := map[string]string{"id": id(post.ID)}
	rr := call(pc.Delete, http.MethodDelete, "/api/posts/"+id(post.ID), "", vars)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"post deleted successfully"}`, rr.Body.String())

	_, err := comments.GetByID(context.Background(), comment.ID)
	assert.Error(t, err)

	rr = call(pc.Delete, http.MethodDelete, "/api/posts/"+id(post.ID), "", vars)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Post not found with id : '"+id(post.ID)+"'", decodeError(t, rr).Message)

	rr = call(pc.Delete, http.MethodDelete, "/api/posts/x", "", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
