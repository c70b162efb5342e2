// Package server exposes the calculators, the advisory chat and saved
// calculations over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rupeecalc/rupee-calculator/internal/advisor"
	"github.com/rupeecalc/rupee-calculator/internal/calculation"
	"github.com/rupeecalc/rupee-calculator/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// Options wires a Server. Store and Advisor are required.
type Options struct {
	Store   storage.Store
	Advisor advisor.Client
	Engine  *calculation.CalculationEngine
	Logger  *slog.Logger

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration

	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that overwrites those headers;
	// otherwise callers pick their own rate limit key.
	TrustProxyHeaders bool

	// NewSessionID overrides session id generation in tests.
	NewSessionID func() string
}

// Server holds the handlers' collaborators and the assembled router.
type Server struct {
	store        storage.Store
	advisor      advisor.Client
	engine       *calculation.CalculationEngine
	logger       *slog.Logger
	limiter      *RateLimiter
	newSessionID func() string
	router       chi.Router
}

// NewSessionID returns a fresh chat session id.
func NewSessionID() string { return "session_" + uuid.NewString() }

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		store:        opts.Store,
		advisor:      opts.Advisor,
		engine:       opts.Engine,
		logger:       opts.Logger,
		newSessionID: opts.NewSessionID,
	}
	if s.engine == nil {
		s.engine = calculation.NewCalculationEngine()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newSessionID == nil {
		s.newSessionID = NewSessionID
	}
	s.limiter = NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors(opts.AllowedOrigins))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter))
		r.Post("/chat", s.handleChat)
		r.Get("/chat/{sessionId}", s.handleChatHistory)
		r.Post("/calculations", s.handleSaveCalculation)
		r.Get("/calculations/{sessionId}", s.handleListCalculations)
		r.Post("/calculate/{calculatorType}", s.handleCalculate)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Close stops background work. The store is owned by the caller.
func (s *Server) Close() { s.limiter.Stop() }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
