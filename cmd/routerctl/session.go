package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/routerservice/internal/config"
	"github.com/vango-dev/routerservice/internal/errors"
	"github.com/vango-dev/routerservice/pkg/routerservice"
	"github.com/vango-dev/routerservice/pkg/routertest"
)

// session is the state one command runs against: configuration, the
// engine loaded from the snapshot and the service facade over it.
type session struct {
	cfg          *config.Config
	logger       *slog.Logger
	snapshotPath string
	registry     *prometheus.Registry
	metrics      *routerservice.Metrics

	engine  *routertest.Engine
	service *routerservice.Service
}

// loadConfig resolves configuration from the config file, the environment
// and the persistent flags, in that order.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.LoadEnv(o.envFile); err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads configuration and the snapshot, and builds the service.
// Logs go to logOut.
func (o *rootOptions) openSession(logOut io.Writer) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:          cfg,
		logger:       newLogger(cfg, logOut),
		snapshotPath: cfg.SnapshotPath(),
		registry:     prometheus.NewRegistry(),
	}
	if o.snapshot != "" {
		s.snapshotPath = o.snapshot
	}
	if cfg.Metrics.Enabled {
		s.metrics = routerservice.NewMetrics(
			routerservice.WithNamespace(cfg.Metrics.Namespace),
			routerservice.WithSubsystem(cfg.Metrics.Subsystem),
			routerservice.WithRegistry(s.registry),
		)
	}

	engine, err := loadEngine(s.snapshotPath)
	if err != nil {
		return nil, err
	}
	s.use(engine)
	return s, nil
}

// use points the session at engine, rebuilding the service. The metrics
// collectors are shared across engines.
func (s *session) use(engine *routertest.Engine) {
	opts := []routerservice.Option{
		routerservice.WithLogger(s.logger.With("component", "routerservice")),
		routerservice.WithTracerName(s.cfg.Tracing.TracerName),
	}
	if s.metrics != nil {
		opts = append(opts, routerservice.WithMetrics(s.metrics))
	}
	s.engine = engine
	s.service = routerservice.New(engine, opts...)
}

// save writes the engine state back to the snapshot file.
func (s *session) save() error {
	data, err := s.engine.Snapshot().Marshal()
	if err != nil {
		return errors.New("R201").Wrap(err)
	}
	if err := os.WriteFile(s.snapshotPath, data, 0644); err != nil {
		return errors.New("R201").
			WithDetail("Failed to write " + s.snapshotPath).
			Wrap(err)
	}
	return nil
}

// loadEngine builds an engine from the snapshot at path.
func loadEngine(path string) (*routertest.Engine, error) {
	if path == "" {
		return nil, errors.New("R202").
			WithSuggestion("Pass --snapshot or set \"snapshot\" in routerctl.json")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New("R200").
			WithDetail("No snapshot found at " + path).
			WithSuggestion("Pass --snapshot or set \"snapshot\" in routerctl.json").
			WithExample("routerctl url blog.post 42 --snapshot router-state.yaml")
	}

	snap, err := routertest.LoadSnapshot(path)
	if err != nil {
		return nil, errors.New("R201").
			WithDetail("Failed to load " + path).
			Wrap(err)
	}
	return snap.Engine(), nil
}

// newLogger builds the slog logger described by the configuration.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", "routerctl")
}
