package routes

import (
	"encoding/json"
	"net/http"

	"blogapi/app/controllers"
	"blogapi/app/middleware"
	"blogapi/app/payload"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SetupRoutes wires the JSON API onto a new router.
func SetupRoutes(postService *services.PostService, commentService *services.CommentService, log logrus.FieldLogger) *mux.Router {
	postController := controllers.NewPostController(postService, log)
	commentController := controllers.NewCommentController(commentService, log)

	router := mux.NewRouter()

	// Apply global middleware.
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.Logger(log))

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	// API routes with JSON content type.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Posts API endpoints.
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods(http.MethodGet)
	posts.HandleFunc("", postController.Create).Methods(http.MethodPost)
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods(http.MethodGet)
	posts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods(http.MethodDelete)

	// Comments API endpoints.
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods(http.MethodGet)
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods(http.MethodPost)
	posts.HandleFunc("/{postId:[0-9]+}/comments/{id:[0-9]+}", commentController.Show).Methods(http.MethodGet)
	posts.HandleFunc("/{postId:[0-9]+}/comments/{id:[0-9]+}", commentController.Update).Methods(http.MethodPut)
	posts.HandleFunc("/{postId:[0-9]+}/comments/{id:[0-9]+}", commentController.Delete).Methods(http.MethodDelete)

	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "Not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
}

func writeError(w http.ResponseWriter, r *http.Request, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload.NewErrorDetails(message, r.URL.Path))
}
