// Package http serves the JSON API: trips, vehicles and the dashboard
// aggregates.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"navexa/internal/middleware/trace"
	"navexa/internal/services"
)

type Server struct {
	http.Server

	trips     *services.TripService
	vehicles  *services.VehicleService
	dashboard *services.DashboardService

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, trips *services.TripService, vehicles *services.VehicleService, dashboard *services.DashboardService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		trips:       trips,
		vehicles:    vehicles,
		dashboard:   dashboard,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/trips", s.withLimits(s.handleTrips))
	mux.HandleFunc("/api/trips/", s.withLimits(s.handleTripByID))
	mux.HandleFunc("/api/vehicles", s.withLimits(s.handleVehicles))
	mux.HandleFunc("/api/vehicles/", s.withLimits(s.handleVehicleByID))
	mux.HandleFunc("/api/dashboard/stats", s.withLimits(s.handleDashboardStats))
	mux.HandleFunc("/api/dashboard/series", s.withLimits(s.handleDashboardSeries))

	tracer := trace.NewMiddleware(nil)
	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// withLimits applies rate limiting to mutating requests.
func (s *Server) withLimits(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.rateLimiter.allow(trace.ClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// pathID extracts the trailing id from a collection path like
// /api/trips/{id}. An empty string means the path had no id.
func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return strings.TrimSpace(id)
}
