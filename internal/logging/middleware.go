package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in and out of the service.
const RequestIDHeader = "X-Request-ID"

// Middleware tags each request with an id, stores a request-scoped logger in
// the context and logs the completed request.
func Middleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLogger := logger.With().Str("request_id", requestID).Logger()
			rec := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(IntoContext(r.Context(), reqLogger)))

			reqLogger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.Status).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status      int
	wroteHeader bool
}

func (r *StatusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.Status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *StatusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
