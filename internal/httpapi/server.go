// ABOUTME: HTTP surface with welcome, health, and recommendation endpoints
// ABOUTME: Every failure path returns an error object with an empty results list
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/recommend"
)

// Server wires the recommendation service into net/http handlers.
type Server struct {
	service *recommend.Service
	log     *zap.Logger
}

// NewServer creates a Server around the given service.
func NewServer(service *recommend.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{service: service, log: log}
}

// errorResponse is the failure payload. Results is always present, so callers
// never need a null-check for it.
type errorResponse struct {
	Error   string `json:"error"`
	Results []any  `json:"results"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler returns the route mux wrapped with request-ID tagging, logging,
// and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /recommend", s.handleRecommend)
	return s.withRecovery(s.withRequestLog(mux))
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Assessment Recommendation API",
	})
}

// handleHealth reports degraded rather than failing outright when the index
// is not loaded, so the process stays observable while an operator rebuilds.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.service.Ready() {
		s.writeJSON(w, http.StatusOK, healthResponse{
			Status:  "degraded",
			Message: "index not loaded; run an index build and restart or reload",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "service is up and running",
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	k := recommend.DefaultResults
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "k must be an integer")
			return
		}
		k = parsed
	}

	resp, err := s.service.Recommend(r.Context(), query, k)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrEmptyQuery), errors.Is(err, recommend.ErrInvalidK):
			s.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, recommend.ErrNotReady):
			s.writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			s.log.Error("recommendation request failed", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Results: []any{}})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRecovery is the ultimate fallback: a panic anywhere below still
// produces the structured error object instead of a crashed connection.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic in request handler", zap.Any("panic", rec))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
