package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/tickforge/engine/session"
)

var (
	snapshotRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tickforge_snapshot_requests_total",
		Help: "Number of session snapshot requests served by the management API.",
	}, []string{"outcome"})

	streamConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tickforge_stream_connections",
		Help: "Number of currently open snapshot-stream WebSocket connections.",
	})
)

// APIServer exposes read-only session inspection: a REST snapshot
// endpoint, a WebSocket push of periodic snapshots, health and metrics
// endpoints, all behind one request-rate limiter that every caller and
// route of a Router shares. It never mutates a session.
type APIServer struct {
	host      *session.Host
	log       *slog.Logger
	limiter   func() *rate.Limiter
	upgrader  websocket.Upgrader
	pushEvery time.Duration
}

// NewAPIServer builds an APIServer over host. A nil logger defaults to
// slog.Default(); pushEvery controls how often the stream endpoint
// pushes a fresh snapshot, defaulting to 250ms if <= 0.
func NewAPIServer(host *session.Host, logger *slog.Logger, pushEvery time.Duration) *APIServer {
	if logger == nil {
		logger = slog.Default()
	}
	if pushEvery <= 0 {
		pushEvery = 250 * time.Millisecond
	}
	return &APIServer{
		host:      host,
		log:       logger,
		limiter:   func() *rate.Limiter { return rate.NewLimiter(rate.Limit(20), 40) },
		pushEvery: pushEvery,
	}
}

// Router builds the chi router for the management API, with CORS
// enabled for browser clients and a request-rate limiter applied to
// every route.
func (s *APIServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/sessions/{id}", s.handleSnapshot)
	r.Get("/sessions/{id}/stream", s.handleStream)

	return r
}

func (s *APIServer) rateLimit(next http.Handler) http.Handler {
	limiter := s.limiter()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *APIServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := session.ID(chi.URLParam(r, "id"))
	sess, ok := s.host.Lookup(id)
	if !ok {
		snapshotRequests.WithLabelValues("not_found").Inc()
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()
	snap, err := sess.Snapshot(ctx)
	if err != nil {
		snapshotRequests.WithLabelValues("error").Inc()
		http.Error(w, "error reading session state", http.StatusInternalServerError)
		return
	}

	snapshotRequests.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *APIServer) handleStream(w http.ResponseWriter, r *http.Request) {
	id := session.ID(chi.URLParam(r, "id"))
	sess, ok := s.host.Lookup(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("stream upgrade failed", "session", id, "error", err)
		return
	}
	defer conn.Close()

	streamConnections.Inc()
	defer streamConnections.Dec()

	ticker := time.NewTicker(s.pushEvery)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		snap, err := sess.Snapshot(ctx)
		cancel()
		if err != nil {
			return
		}
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}
}
