package server

import (
	"log/slog"
	"time"

	"github.com/glint-ui/glint/pkg/storage"
)

// Config holds preview server configuration.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// Title is the page title of the preview shell.
	Title string

	// Logger is the structured logger (default slog.Default()).
	Logger *slog.Logger

	// Snapshots persists session state across reconnects
	// (default: in-memory store).
	Snapshots storage.SnapshotStore

	// EnableMetrics mounts the Prometheus handler at /metrics and
	// wires the telemetry observer into every session runtime.
	EnableMetrics bool

	// WriteTimeout bounds a single WebSocket write (default 10s).
	WriteTimeout time.Duration
}

// DefaultConfig returns a Config with defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		Addr:          ":8080",
		Title:         "glint preview",
		Logger:        slog.Default(),
		Snapshots:     storage.NewMemoryStore(),
		EnableMetrics: true,
		WriteTimeout:  10 * time.Second,
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Addr == "" {
		out.Addr = ":8080"
	}
	if out.Title == "" {
		out.Title = "glint preview"
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Snapshots == nil {
		out.Snapshots = storage.NewMemoryStore()
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = 10 * time.Second
	}
	return &out
}
