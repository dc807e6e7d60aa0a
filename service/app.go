package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"blogapi/app/config"
	"blogapi/app/repositories"
	"blogapi/app/routes"
	"blogapi/app/services"

	"github.com/sirupsen/logrus"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// store bundles the repositories of whichever backend the config selects.
type store struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	close    func() error
}

func openStore(cfg config.Config, log *logrus.Logger) (*store, error) {
	switch cfg.Store {
	case config.StoreBadger:
		s, err := repositories.NewBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		return &store{posts: s.Posts(), comments: s.Comments(), close: s.Close}, nil
	case config.StoreMemory:
		s, err := repositories.NewInMemoryBadgerStore()
		if err != nil {
			return nil, err
		}
		return &store{posts: s.Posts(), comments: s.Comments(), close: s.Close}, nil
	case config.StorePostgres:
		s, err := repositories.OpenPostgres(cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, err
		}
		return &store{posts: s.Posts(), comments: s.Comments(), close: s.Close}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func newHandler(s *store, log logrus.FieldLogger) http.Handler {
	postService := services.NewPostService(s.posts)
	commentService := services.NewCommentService(s.comments, s.posts)
	return routes.SetupRoutes(postService, commentService, log)
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// RunAppServer serves the blog API until ctx is cancelled.
func RunAppServer(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	s, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer s.close()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	log.WithFields(logrus.Fields{
		"addr":  ln.Addr().String(),
		"store": cfg.Store,
	}).Info("starting blog API")

	return serve(ctx, newServer(newHandler(s, log)), ln, log)
}

// serve runs srv on ln and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
