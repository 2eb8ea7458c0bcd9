// Package dashboard serves the session service over HTTP for the web dashboard
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

// Server is the dashboard HTTP API
type Server struct {
	addr    string
	handler *Handler
	log     *logging.Logger
}

// NewServer creates a dashboard listening on addr. New progressions start
// from defaults unless the request overrides them.
func NewServer(addr string, service SessionService, defaults session.Params, logger *logging.Logger) *Server {
	log := logger.WithPrefix("dashboard")
	return &Server{
		addr:    addr,
		handler: NewHandler(service, defaults, log),
		log:     log,
	}
}

// Router builds the route table
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           900,
	}))

	r.Get("/healthz", s.handler.Health)

	r.Route("/users/{userID}", func(rr chi.Router) {
		rr.Route("/progression", func(pr chi.Router) {
			pr.Post("/", s.handler.StartProgression)
			pr.Get("/", s.handler.GetProgression)
			pr.Delete("/", s.handler.StopProgression)
			pr.Post("/result", s.handler.ReportResult)
		})
		rr.Route("/bacbo", func(br chi.Router) {
			br.Post("/rounds", s.handler.PlayRound)
			br.Delete("/", s.handler.ExitBacBo)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Dashboard listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Dashboard stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}
