// Package http exposes the reconciliation pipeline over a JSON API.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"ledgerlink/internal/core"
	"ledgerlink/internal/middleware/ratelimit"
	"ledgerlink/internal/middleware/trace"
)

// Pipeline is what the handlers need from the service layer.
type Pipeline interface {
	Contacts(ctx context.Context) ([]core.NormalizedContact, error)
	Reconcile(ctx context.Context) ([]core.ReconciledSummary, error)
}

type Server struct {
	http.Server
	pipeline Pipeline

	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, pipeline Pipeline) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		pipeline:    pipeline,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	tracer := trace.NewMiddleware(extractClientIP)
	limited := s.rateLimiter.Middleware(extractClientIP, nil)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/contacts", tracer.Middleware(limited(s.requireGet(s.handleContacts))))
	mux.Handle("/reconciliation", tracer.Middleware(limited(s.requireGet(s.handleReconciliation))))

	return s
}

// Shutdown stops the server and its background helpers.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) requireGet(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	})
}

// extractClientIP resolves the caller's IP, honoring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// First hop is the original client.
		if idx := strings.IndexByte(ip, ','); idx > 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
