// Package http serves the dashboard page, the session API, and the ops
// endpoints (/healthz, /readyz, /metrics).
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
	"github.com/ankiibott/Forest-fire-prediction/internal/observability"
	"github.com/ankiibott/Forest-fire-prediction/internal/predict"
	"github.com/ankiibott/Forest-fire-prediction/internal/state"
)

// Predictor runs one prediction against the model backend, falling back to
// simulation internally. Satisfied by *predict.Client.
type Predictor interface {
	Predict(ctx context.Context, bounds domain.Bounds, manifest domain.Manifest) (predict.Outcome, error)
}

// RunPublisher emits completed-run audit events. Satisfied by the Kafka
// publisher; nil disables publishing.
type RunPublisher interface {
	PublishRun(ctx context.Context, rec domain.RunRecord) error
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server hosts the dashboard and ops routes on one listener.
type Server struct {
	httpServer *http.Server
	store      *state.Store
	predictor  Predictor
	publisher  RunPublisher
	validate   *validator.Validate
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer wires the dashboard routes. publisher may be nil.
func NewServer(addr string, store *state.Store, predictor Predictor, publisher RunPublisher, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		store:     store,
		predictor: predictor,
		publisher: publisher,
		validate:  validator.New(),
		metrics:   metrics,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Dashboard page and browser form posts.
	r.Get("/", s.handlePage)
	r.Post("/form/files", s.handleFormFiles)
	r.Post("/form/bounds", s.handleFormBounds)
	r.Post("/predict", s.handleFormPredict)
	r.Post("/horizon", s.handleFormHorizon)
	r.Get("/grid", s.handleGridFragment)

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Post("/form/files", s.handleAPIFiles)
		r.Post("/form/bounds", s.handleAPIBounds)
		r.Get("/form", s.handleAPIForm)
		r.Post("/predict", s.handleAPIPredict)
		r.Post("/horizon", s.handleAPIHorizon)
		r.Get("/result", s.handleAPIResult)
	})

	// Ops.
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(store))
	r.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
