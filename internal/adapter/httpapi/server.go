// Package httpapi exposes the visualization engine over a read-mostly JSON
// API: storm summaries, zoom-simplified tracks, forecast cones, timeline
// scrubbing, and the animation scheduler, plus the usual health, readiness,
// and metrics routes.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/storm-track-viz/internal/config"
	"github.com/couchcryptid/storm-track-viz/internal/domain"
	"github.com/couchcryptid/storm-track-viz/internal/geometry"
	"github.com/couchcryptid/storm-track-viz/internal/intensity"
	"github.com/couchcryptid/storm-track-viz/internal/observability"
	"github.com/couchcryptid/storm-track-viz/internal/scheduler"
	"github.com/couchcryptid/storm-track-viz/internal/store"
	"github.com/couchcryptid/storm-track-viz/internal/timeline"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the storm visualization API.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	sched      *scheduler.Scheduler
	palette    intensity.Palette
	rings      []intensity.CircleConfig
	visMode    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires the API routes over the session store and scheduler. The
// palette and rings come from the style config, or the defaults when nil.
func NewServer(cfg *config.Config, st *store.Store, sched *scheduler.Scheduler,
	palette intensity.Palette, rings []intensity.CircleConfig,
	logger *slog.Logger, metrics *observability.Metrics) *Server {
	if palette == nil {
		palette = intensity.DefaultPalette()
	}
	if rings == nil {
		rings = intensity.DefaultRings()
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:   st,
		sched:   sched,
		palette: palette,
		rings:   rings,
		visMode: cfg.VisMode,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(st))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/storms", s.instrument("storms", s.handleStorms))
	mux.HandleFunc("GET /api/storms/{id}/track", s.instrument("track", s.handleTrack))
	mux.HandleFunc("GET /api/storms/{id}/cone", s.instrument("cone", s.handleCone))
	mux.HandleFunc("GET /api/storms/{id}/state", s.instrument("state", s.handleState))
	mux.HandleFunc("GET /api/timeline", s.instrument("timeline", s.handleTimeline))

	mux.HandleFunc("GET /api/animations", s.instrument("animations", s.handleAnimations))
	mux.HandleFunc("POST /api/animations/{id}", s.instrument("animations", s.handleAnimationRequest))
	mux.HandleFunc("POST /api/animations/{id}/complete", s.instrument("animations", s.handleAnimationComplete))
	mux.HandleFunc("DELETE /api/animations/{id}", s.instrument("animations", s.handleAnimationCancel))

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

func (s *Server) instrument(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		s.metrics.HTTPRequestSeconds.WithLabelValues(name).
			Observe(time.Since(start).Seconds())
	}
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

// stormSummary is one entry in the /api/storms listing.
type stormSummary struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	DisplayName    string             `json:"displayName"`
	Status         string             `json:"status"`
	Category       domain.Category    `json:"category"`
	Color          string             `json:"color"`
	IntensityScore float64            `json:"intensityScore"`
	MarkerSize     float64            `json:"markerSize"`
	Trend          intensity.Trend    `json:"trend"`
	Position       *domain.StormPoint `json:"position"`
}

func (s *Server) handleStorms(w http.ResponseWriter, _ *http.Request) {
	storms := s.store.Snapshot()
	summaries := make([]stormSummary, 0, len(storms))
	for _, storm := range storms {
		summaries = append(summaries, s.summarize(storm))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"visMode": s.visMode,
		"storms":  summaries,
	})
}

func (s *Server) summarize(storm domain.Storm) stormSummary {
	curr := storm.CurrentPosition
	summary := stormSummary{
		ID:          storm.ID,
		Name:        storm.Name,
		DisplayName: storm.DisplayName,
		Status:      storm.Status,
		Position:    curr,
	}
	if curr == nil {
		return summary
	}
	summary.Category = curr.Category
	summary.Color = s.palette.Color(curr.Category)
	summary.IntensityScore = intensity.Score(*curr)
	summary.MarkerSize = intensity.MarkerSize(curr.WindSpeed, curr.Category)
	summary.Trend = intensity.TrendStable
	if n := len(storm.Historical); n > 0 {
		summary.Trend = intensity.DetectIntensityChange(storm.Historical[n-1], *curr)
	}
	return summary
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	storm, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown storm")
		return
	}

	track := storm.FullTrack()
	if zoomParam := r.URL.Query().Get("zoom"); zoomParam != "" {
		zoom, err := strconv.ParseFloat(zoomParam, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "zoom must be a number")
			return
		}
		track = geometry.ForZoom(track, zoom)
	}
	s.metrics.TrackPointsServed.Observe(float64(len(track)))

	feature := geojson.NewFeature(geometry.LineString(track))
	feature.ID = storm.ID
	feature.Properties["stormId"] = storm.ID
	feature.Properties["pointCount"] = len(track)

	writeJSON(w, http.StatusOK, map[string]any{
		"track":      feature,
		"colorStops": intensity.TrackColorStops(track, s.palette),
	})
}

func (s *Server) handleCone(w http.ResponseWriter, r *http.Request) {
	storm, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown storm")
		return
	}

	ring := geometry.ConeForStorm(storm)
	if ring == nil {
		writeError(w, http.StatusNotFound, "storm has no forecast")
		return
	}
	s.metrics.ConesBuilt.Inc()

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.ID = storm.ID
	feature.Properties["stormId"] = storm.ID

	writeJSON(w, http.StatusOK, feature)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	storm, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown storm")
		return
	}

	t, err := strconv.ParseInt(r.URL.Query().Get("t"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "t must be an epoch millisecond timestamp")
		return
	}

	state, ok := timeline.StateAtTime(storm, t)
	if !ok {
		writeError(w, http.StatusNotFound, "storm has no track")
		return
	}

	sample := state.Sample.Point
	writeJSON(w, http.StatusOK, map[string]any{
		"state":      state,
		"color":      s.palette.Color(sample.Category),
		"markerSize": intensity.MarkerSize(sample.WindSpeed, sample.Category),
		"rings":      intensity.RingsFor(sample.WindSpeed, s.rings),
	})
}

func (s *Server) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	r, ok := timeline.ComputeTimeRange(s.store.Snapshot())
	if !ok {
		writeError(w, http.StatusNotFound, "no storms with valid timestamps")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"range":  r,
		"labels": r.Labels(),
	})
}

func (s *Server) handleAnimations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    s.sched.ActiveCount(),
		"queued":    s.sched.QueuedCount(),
		"targetFps": s.sched.TargetFPS(),
	})
}

func (s *Server) handleAnimationRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Get(id); !ok {
		writeError(w, http.StatusNotFound, "unknown storm")
		return
	}

	granted := s.sched.Request(id, nil)
	status := http.StatusOK
	if !granted {
		status = http.StatusAccepted
	}
	writeJSON(w, status, map[string]any{
		"id":        id,
		"state":     s.sched.StateOf(id).String(),
		"granted":   granted,
		"targetFps": s.sched.TargetFPS(),
	})
}

func (s *Server) handleAnimationComplete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.sched.Complete(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    id,
		"state": s.sched.StateOf(id).String(),
	})
}

func (s *Server) handleAnimationCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.sched.Cancel(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    id,
		"state": s.sched.StateOf(id).String(),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
