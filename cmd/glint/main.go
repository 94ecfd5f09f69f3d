package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┬┌┐┌┌┬┐
  │ ┬│  ││││ │
  └─┘┴─┘┴┘└┘ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "glint",
		Short: "Reactive rendering runtime for UI widgets",
		Long: `Glint is a reactive rendering runtime.

Components declare markup from reactive state; the runtime batches
state changes, defers renders while the user interacts, and commits
only trees that actually changed. The CLI ships a preview server for
developing components in a browser:

  • Server-side rendering for first paint
  • Live updates over WebSocket
  • Session state snapshots across reconnects
  • Prometheus metrics at /metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		devCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
