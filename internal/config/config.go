package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/vango-dev/routerservice/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "routerctl.json"

	// DefaultSnapshot is the default router state snapshot file.
	DefaultSnapshot = "router-state.yaml"

	// DefaultInspectorPort is the default inspector server port.
	DefaultInspectorPort = 7070

	// DefaultInspectorHost is the default inspector server host.
	DefaultInspectorHost = "localhost"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "vango/routerservice"
)

// Environment variables that override file values.
const (
	EnvSnapshot      = "ROUTERCTL_SNAPSHOT"
	EnvLogLevel      = "ROUTERCTL_LOG_LEVEL"
	EnvLogFormat     = "ROUTERCTL_LOG_FORMAT"
	EnvInspectorHost = "ROUTERCTL_INSPECTOR_HOST"
	EnvInspectorPort = "ROUTERCTL_INSPECTOR_PORT"
)

// Config represents the complete routerctl.json configuration.
type Config struct {
	// Snapshot is the path to the router state snapshot (YAML).
	// Relative paths are resolved against the config file's directory.
	Snapshot string `json:"snapshot,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Inspector contains HTTP inspector configuration.
	Inspector InspectorConfig `json:"inspector,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" validate:"oneof=debug info warn error"`

	// Format is text or json.
	Format string `json:"format,omitempty" validate:"oneof=text json"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" validate:"required"`
	Subsystem string `json:"subsystem,omitempty"`
}

// TracingConfig contains OpenTelemetry configuration.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty" validate:"required"`
}

// InspectorConfig contains HTTP inspector configuration.
type InspectorConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty" validate:"gte=0,lte=65535"`

	// Watch reloads the snapshot when the file changes.
	Watch bool `json:"watch,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Snapshot: DefaultSnapshot,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "vango",
			Subsystem: "router_service",
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Inspector: InspectorConfig{
			Host: DefaultInspectorHost,
			Port: DefaultInspectorPort,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for routerctl.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("R100").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("R101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("R101").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromWorkingDir loads routerctl.json from the working directory,
// falling back to defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if !Exists(wd) {
		return New(), nil
	}
	return Load(wd)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// LoadEnv overlays ROUTERCTL_* variables from the dotenv file at path and
// from the process environment. Process variables win. A missing dotenv
// file is not an error.
func (c *Config) LoadEnv(path string) error {
	env := map[string]string{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileEnv, err := godotenv.Read(path)
			if err != nil {
				return errors.New("R103").
					WithDetail("Failed to read " + path).
					Wrap(err)
			}
			env = fileEnv
		}
	}
	for _, key := range []string{EnvSnapshot, EnvLogLevel, EnvLogFormat, EnvInspectorHost, EnvInspectorPort} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return c.ApplyEnv(env)
}

// ApplyEnv overlays the ROUTERCTL_* values found in env. A relative
// snapshot path is resolved against the working directory, not the
// config file's directory.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvSnapshot]; v != "" {
		abs, err := filepath.Abs(v)
		if err != nil {
			return errors.New("R102").
				WithDetail("Cannot resolve " + EnvSnapshot + " " + strconv.Quote(v)).
				Wrap(err)
		}
		c.Snapshot = abs
	}
	if v := env[EnvLogLevel]; v != "" {
		c.Log.Level = v
	}
	if v := env[EnvLogFormat]; v != "" {
		c.Log.Format = v
	}
	if v := env[EnvInspectorHost]; v != "" {
		c.Inspector.Host = v
	}
	if v := env[EnvInspectorPort]; v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("R102").
				WithDetail(EnvInspectorPort + " must be a number, got " + strconv.Quote(v)).
				Wrap(err)
		}
		c.Inspector.Port = port
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	defaults := New()
	if c.Snapshot == "" {
		c.Snapshot = defaults.Snapshot
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = defaults.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = defaults.Tracing.TracerName
	}
	if c.Inspector.Host == "" {
		c.Inspector.Host = defaults.Inspector.Host
	}
}

var validate = validator.New()

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		detail := fe.Namespace() + " failed the " + fe.Tag() + " rule"
		if fe.Param() != "" {
			detail += " (" + fe.Param() + ")"
		}
		return errors.New("R102").WithDetail(detail).Wrap(err)
	}
	return errors.New("R102").Wrap(err)
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// SnapshotPath returns the snapshot path. A relative path from the config
// file is resolved against the config directory.
func (c *Config) SnapshotPath() string {
	if c.Snapshot == "" || filepath.IsAbs(c.Snapshot) || c.Dir() == "" {
		return c.Snapshot
	}
	return filepath.Join(c.Dir(), c.Snapshot)
}

// InspectorAddress returns the listen address of the inspector server.
func (c *Config) InspectorAddress() string {
	return c.Inspector.Host + ":" + strconv.Itoa(c.Inspector.Port)
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
