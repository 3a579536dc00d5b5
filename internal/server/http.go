package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Check is a named readiness probe against a dependency.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHTTPServer wires the trivia routes plus health, readiness and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *question.HTTPHandlers, m *metrics.Metrics, checks []Check) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewHandler(cfg, logger, handlers, m, checks),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(cfg *config.App, logger zerolog.Logger, handlers *question.HTTPHandlers, m *metrics.Metrics, checks []Check) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pingDependencies(ctx, checks); err != nil {
			logging.FromContextOr(r.Context(), logger).Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondServiceUnavailable(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ready":true}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	if handlers != nil {
		mux.HandleFunc("GET /categories", handlers.ListCategories)
		mux.HandleFunc("GET /categories/{id}/questions", handlers.ListCategoryQuestions)
		mux.HandleFunc("GET /questions", handlers.ListQuestions)
		mux.HandleFunc("POST /questions", handlers.CreateQuestion)
		mux.HandleFunc("DELETE /questions/{id}", handlers.DeleteQuestion)
		mux.HandleFunc("POST /questions/searches", handlers.SearchQuestions)
		mux.HandleFunc("POST /quizzes", handlers.PlayQuiz)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(mux, r); len(allowed) > 0 {
			httperrors.RespondMethodNotAllowed(w, allowed)
			return
		}
		httperrors.RespondNotFound(w)
	})

	var h http.Handler = mux
	if m != nil {
		h = m.Middleware(h)
	}
	h = logging.Middleware(logger)(h)
	h = CORS(cfg.CORS)(h)
	return h
}

var routeMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete}

// allowedMethods lists the methods some route other than the catch-all
// accepts for r's path.
func allowedMethods(mux *http.ServeMux, r *http.Request) []string {
	var allowed []string
	for _, method := range routeMethods {
		alt := r.WithContext(r.Context())
		alt.Method = method
		if _, pattern := mux.Handler(alt); pattern != "/" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func pingDependencies(ctx context.Context, checks []Check) error {
	for _, c := range checks {
		if err := c.Ping(ctx); err != nil {
			return &dependencyError{name: c.Name, err: err}
		}
	}
	return nil
}

type dependencyError struct {
	name string
	err  error
}

func (e *dependencyError) Error() string {
	return e.name + ": " + e.err.Error()
}

func (e *dependencyError) Unwrap() error {
	return e.err
}
