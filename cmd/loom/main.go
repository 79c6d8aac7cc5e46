package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	loomerrors "github.com/loom-ui/loom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┌─┐┌─┐┌┬┐
  ║  │ ││ ││││
  ╩═╝└─┘└─┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "Server-driven UI for Go",
		Long: `Loom keeps the UI state on the server and syncs it to a thin
JavaScript client over WebSocket.

  • Server-held element tree with dirty tracking
  • Incremental change batches over a binary frame protocol
  • Component templates extracted from bundler statistics
  • Session snapshots and resume across reconnects`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		extractCmd(),
		statsCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var structured *loomerrors.Error
		if errors.As(err, &structured) {
			fmt.Fprintln(os.Stderr, loomerrors.Format(structured))
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the loom ASCII art banner.
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

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
