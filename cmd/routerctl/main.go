package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerservice/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┬ ┬┌┬┐┌─┐┬─┐┌─┐┌┬┐┬
  ├┬┘│ ││ │ │ ├┤ ├┬┘│   │ │
  ┴└─└─┘└─┘ ┴ └─┘┴└─└─┘ ┴ ┴─┘
`

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	snapshot   string
	envFile    string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.Fprint(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "routerctl",
		Short: "Dry-run router service calls against a router state snapshot",
		Long: `routerctl drives the router service facade against an in-memory
router engine loaded from a YAML snapshot.

Use it to check how a navigation call is classified, what URL a
route generates, whether a route is active, or to serve a read-only
HTTP inspector with Prometheus metrics.

Arguments after a route name are models. A trailing JSON object with a
"queryParams" key is read as options:

  routerctl navigate blog.post 42 '{"queryParams":{"sort":"asc"}}'
  routerctl url blog.post 42 --query sort=asc
  routerctl active blog --query page=2`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to routerctl.json (default: ./routerctl.json when present)")
	flags.StringVar(&opts.snapshot, "snapshot", "", "Router state snapshot, overrides the configured one")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file with ROUTERCTL_* overrides")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		classifyCmd(),
		navigateCmd(opts),
		urlCmd(opts),
		activeCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the routerctl banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
