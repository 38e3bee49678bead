// Package rest is the HTTP/JSON gateway: routing, bearer authentication,
// role checks and the mapping of service errors to status codes.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address       string
	users         UserService
	files         FileService
	logger        logging.Logger
	maxUploadSize int64
	publicBaseURL string
	staticDir     string
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us UserService, fs FileService) *HTTPServer {
	return &HTTPServer{
		address:       cfg.EndpointAddrHTTP,
		users:         us,
		files:         fs,
		logger:        l.With("module", "http_server"),
		maxUploadSize: cfg.MaxUploadSize,
		publicBaseURL: cfg.PublicBaseURL,
		staticDir:     cfg.StaticDir,
	}
}

// Router builds the full route table.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(Observe(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(s.users))

			r.Get("/user", s.currentUser)
			r.Get("/files", s.listFiles)
			r.Get("/download/{id}", s.download)
			r.Post("/send-file/{id}", s.sendFile)

			r.With(RequireAdmin).Post("/upload", s.upload)
			r.With(RequireAdmin).Delete("/files/{id}", s.deleteFile)
		})
	})

	r.NotFound(notFound(s.staticDir))

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
