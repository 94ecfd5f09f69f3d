package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glint-ui/glint/pkg/runtime"
	"github.com/glint-ui/glint/pkg/server"
	"github.com/glint-ui/glint/pkg/widgets"
)

func devCmd() *cobra.Command {
	var (
		addr    string
		widget  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the component preview server",
		Long: `Start the preview server with a built-in demo widget.

The page is server-rendered for first paint, then a WebSocket session
streams every committed render back to the browser. Session state is
snapshotted on disconnect so reloading the page resumes where you
left off.

Examples:
  glint dev
  glint dev --addr=:9000
  glint dev --widget=ticker`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(addr, widget, verbose)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVarP(&widget, "widget", "w", "counter", "Demo widget (counter, ticker)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

func runDev(addr, widget string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	var factory server.ComponentFactory
	switch widget {
	case "counter":
		factory = func() runtime.Component { return widgets.NewCounter() }
	case "ticker":
		factory = func() runtime.Component { return widgets.NewTicker(time.Second) }
	default:
		return fmt.Errorf("unknown widget %q (want counter or ticker)", widget)
	}

	srv := server.New(&server.Config{
		Addr:          addr,
		Title:         "glint preview · " + widget,
		Logger:        logger,
		EnableMetrics: true,
	})
	srv.SetRootComponent(factory)

	printBanner()
	fmt.Println()
	success("preview server ready")
	info("widget:  %s", widget)
	info("address: http://localhost%s", addr)
	info("metrics: http://localhost%s/metrics", addr)
	fmt.Println()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		fmt.Println()
		info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
