package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/pm10-etl/internal/pipeline"
)

// RunReporter is the view of the pipeline the server needs.
type RunReporter interface {
	sharedobs.ReadinessChecker
	LastRun() (pipeline.RunStatus, bool)
}

// runStatusResponse is the /status body.
type runStatusResponse struct {
	State  string           `json:"state"`
	Error  string           `json:"error,omitempty"`
	Report *pipeline.Report `json:"report,omitempty"`
}

// Server exposes health, readiness, run status and metrics while the job runs
// and after a successful run, so the final counters can be scraped.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /status and
// /metrics routes. Readiness follows the outcome of the latest run.
func NewServer(addr string, runs RunReporter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(runs))
	mux.HandleFunc("GET /status", statusHandler(runs))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// statusHandler reports the latest run as pending, succeeded or failed, with
// its report once one exists.
func statusHandler(runs RunReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := runStatusResponse{State: "pending"}
		if status, ok := runs.LastRun(); ok {
			resp.State = "succeeded"
			resp.Report = &status.Report
			if status.Err != nil {
				resp.State = "failed"
				resp.Error = status.Err.Error()
			}
		}
		sharedobs.WriteJSON(w, http.StatusOK, resp)
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
