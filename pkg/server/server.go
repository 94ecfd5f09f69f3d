package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glint-ui/glint/pkg/host/memdom"
	"github.com/glint-ui/glint/pkg/runtime"
	"github.com/glint-ui/glint/pkg/telemetry"
	"github.com/glint-ui/glint/pkg/vdom"
)

// ComponentFactory produces a fresh root component per session.
type ComponentFactory func() runtime.Component

// Server serves the preview page and live WebSocket sessions.
type Server struct {
	config *Config
	logger *slog.Logger

	router   chi.Router
	upgrader websocket.Upgrader

	factory ComponentFactory

	metrics  *telemetry.Metrics
	registry *prometheus.Registry

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a preview server. SetRootComponent must be called before
// serving sessions.
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := config.withDefaults()

	s := &Server{
		config:   cfg,
		logger:   cfg.Logger,
		router:   chi.NewRouter(),
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	if cfg.EnableMetrics {
		s.registry = prometheus.NewRegistry()
		s.metrics = telemetry.NewMetrics(telemetry.WithRegistry(s.registry))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handlePage)
	s.router.Get("/ws", s.handleWebSocket)
	if s.registry != nil {
		s.router.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
}

// SetRootComponent sets the factory for per-session root components.
func (s *Server) SetRootComponent(factory ComponentFactory) {
	s.factory = factory
}

// Handler returns the server's http.Handler for mounting in external
// routers.
func (s *Server) Handler() http.Handler { return s.router }

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger { return s.logger }

// handlePage server-renders the root component into the preview shell.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if s.factory == nil {
		http.Error(w, "no root component configured", http.StatusServiceUnavailable)
		return
	}

	html, err := s.renderRoot()
	if err != nil {
		s.logger.Error("page render failed", "scope", "server", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, renderShell(s.config.Title, html))
}

// renderRoot mounts a throwaway instance and serializes its first paint.
func (s *Server) renderRoot() (string, error) {
	clock := memdom.NewClock()
	ctx := runtime.NewContext(
		runtime.WithLogger(s.logger),
		runtime.WithClock(clock),
	)
	doc := memdom.NewDocument()

	inst := runtime.New(ctx, s.factory())
	defer inst.Destroy()

	if err := inst.Mount(doc, doc.Body()); err != nil {
		return "", err
	}
	return vdom.RenderHTML(inst.Tree()), nil
}

// handleWebSocket upgrades the connection and runs a live session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.factory == nil {
		http.Error(w, "no root component configured", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "scope", "server", "error", err)
		return
	}

	resume := r.URL.Query().Get("session")
	sess := s.newSession(conn, resume)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("session started", "scope", "server", "session_id", sess.id)
	sess.run()

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.logger.Info("session closed", "scope", "server", "session_id", sess.id)
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.router,
	}
	s.logger.Info("preview server listening", "scope", "server", "addr", s.config.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server and closes live sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// newSessionID returns a random session identifier.
func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("server: session id entropy unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}
