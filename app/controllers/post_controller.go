package controllers

import (
	"net/http"
	"strconv"

	"blogapi/app/payload"
	"blogapi/app/services"

	"github.com/sirupsen/logrus"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	log         logrus.FieldLogger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log logrus.FieldLogger) *PostController {
	return &PostController{
		postService: postService,
		log:         log,
	}
}

// Index handles listing posts with pagination
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	page, perPage = services.NormalizePage(page, perPage)

	posts, err := pc.postService.ListPosts(r.Context(), page, perPage)
	if err != nil {
		sendServiceError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, payload.PostPage{Page: page, Posts: posts})
}

// Show returns a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPostByID(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.Post
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		sendValidationError(w, r, payload.Describe(err))
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), req)
	if err != nil {
		sendServiceError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Delete removes a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		sendServiceError(w, r, pc.log, err)
		return
	}

	pc.log.WithField("post_id", id).Debug("post deleted")
	sendJSON(w, http.StatusOK, payload.Message{Message: "post deleted successfully"})
}
