package controllers

import (
	"net/http"

	"blogapi/app/payload"
	"blogapi/app/services"

	"github.com/sirupsen/logrus"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	log            logrus.FieldLogger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, log logrus.FieldLogger) *CommentController {
	return &CommentController{
		commentService: commentService,
		log:            log,
	}
}

// Index lists the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.GetCommentsByPostID(r.Context(), postID)
	if err != nil {
		sendServiceError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Show returns a single comment of a post
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := cc.ids(w, r)
	if !ok {
		return
	}

	comment, err := cc.commentService.GetCommentByID(r.Context(), postID, commentID)
	if err != nil {
		sendServiceError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	req, ok := cc.readComment(w, r)
	if !ok {
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), postID, req)
	if err != nil {
		sendServiceError(w, r, cc.log, err)
		return
	}

	cc.log.WithFields(logrus.Fields{"post_id": postID, "comment_id": comment.ID}).Debug("comment created")
	sendJSON(w, http.StatusCreated, comment)
}

// Update handles editing an existing comment
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := cc.ids(w, r)
	if !ok {
		return
	}

	req, ok := cc.readComment(w, r)
	if !ok {
		return
	}

	comment, err := cc.commentService.UpdateComment(r.Context(), postID, commentID, req)
	if err != nil {
		sendServiceError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := cc.ids(w, r)
	if !ok {
		return
	}

	if err := cc.commentService.DeleteComment(r.Context(), postID, commentID); err != nil {
		sendServiceError(w, r, cc.log, err)
		return
	}

	cc.log.WithFields(logrus.Fields{"post_id": postID, "comment_id": commentID}).Debug("comment deleted")
	sendJSON(w, http.StatusOK, payload.Message{Message: "comment deleted successfully"})
}

func (cc *CommentController) ids(w http.ResponseWriter, r *http.Request) (postID, commentID int64, ok bool) {
	postID, err := pathID(r, "postId")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return 0, 0, false
	}
	commentID, err = pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
		return 0, 0, false
	}
	return postID, commentID, true
}

// readComment decodes, sanitizes and validates a comment body.
func (cc *CommentController) readComment(w http.ResponseWriter, r *http.Request) (payload.Comment, bool) {
	var req payload.Comment
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return req, false
	}

	req.Sanitize()
	if err := req.Validate(); err != nil {
		sendValidationError(w, r, payload.Describe(err))
		return req, false
	}
	return req, true
}
