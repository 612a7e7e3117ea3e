package main

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerservice/internal/errors"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only HTTP inspector",
		Long: `Serve the snapshot's router state over HTTP.

Endpoints:
  GET  /state               current route, URL, query params and history
  GET  /active/{route}      activity check (?model=42&q.sort=asc)
  GET  /url/{route}         URL generation (?model=42&q.sort=asc)
  POST /navigate            {"target": "blog.post", "args": ["42"], "replace": false}
  GET  /metrics             Prometheus metrics

Navigation changes the in-memory state only. With --watch the snapshot
is reloaded whenever the file changes.

Examples:
  routerctl serve
  routerctl serve --addr :7070 --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.cfg.InspectorAddress()
			}
			if cmd.Flags().Changed("watch") {
				s.cfg.Inspector.Watch = watch
			}
			return runInspector(cmd, s, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the snapshot when the file changes")

	return cmd
}

func runInspector(cmd *cobra.Command, s *session, addr string) error {
	ctx := cmd.Context()
	in := newInspector(s)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("R303").WithDetail("Cannot listen on " + addr).Wrap(err)
	}

	srv := &http.Server{
		Handler:           in.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	w := cmd.OutOrStdout()
	success(w, "Inspector listening on http://%s", ln.Addr())
	info(w, "Snapshot: %s", s.snapshotPath)
	if s.metrics == nil {
		warn(w, "Metrics are disabled, /metrics will be empty")
	}

	if s.cfg.Inspector.Watch {
		go func() {
			err := watchFile(ctx, s.snapshotPath, in.logger, func() {
				if err := in.reload(); err != nil {
					in.logger.Error("snapshot reload failed", "error", err)
				}
			})
			if err != nil {
				in.logger.Error("snapshot watch stopped", "error", err)
			}
		}()
		info(w, "Watching for changes")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.New("R303").Wrap(err)
	}
	return nil
}
