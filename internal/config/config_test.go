package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/routerservice/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Snapshot != DefaultSnapshot {
		t.Errorf("Snapshot = %q, want %q", cfg.Snapshot, DefaultSnapshot)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
	if cfg.Inspector.Port != DefaultInspectorPort {
		t.Errorf("Inspector.Port = %d, want %d", cfg.Inspector.Port, DefaultInspectorPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"snapshot": "states/app.yaml",
		"log": {"level": "debug", "format": "json"},
		"metrics": {"enabled": false, "namespace": "shop"},
		"inspector": {"port": 9090, "watch": true}
	}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Namespace != "shop" {
		t.Errorf("Metrics.Namespace = %q, want shop", cfg.Metrics.Namespace)
	}
	if !cfg.Inspector.Watch {
		t.Error("Inspector.Watch should be true")
	}
	if cfg.Inspector.Host != DefaultInspectorHost {
		t.Errorf("Inspector.Host = %q, want default %q", cfg.Inspector.Host, DefaultInspectorHost)
	}
	if got, want := cfg.SnapshotPath(), filepath.Join(dir, "states/app.yaml"); got != want {
		t.Errorf("SnapshotPath() = %q, want %q", got, want)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var re *errors.RouterError
	if !stderrors.As(err, &re) || re.Code != "R100" {
		t.Errorf("error = %v, want R100", err)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	var re *errors.RouterError
	if !stderrors.As(err, &re) || re.Code != "R101" {
		t.Errorf("error = %v, want R101", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.Inspector.Port = 70000 }, wantErr: true},
		{name: "negative port", mutate: func(c *Config) { c.Inspector.Port = -1 }, wantErr: true},
		{name: "ephemeral port", mutate: func(c *Config) { c.Inspector.Port = 0 }},
		{name: "missing namespace", mutate: func(c *Config) { c.Metrics.Namespace = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var re *errors.RouterError
				if !stderrors.As(err, &re) || re.Code != "R102" {
					t.Errorf("error = %v, want R102", err)
				}
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	err := cfg.ApplyEnv(map[string]string{
		EnvSnapshot:      "other.yaml",
		EnvLogLevel:      "warn",
		EnvInspectorPort: "8181",
	})
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(wd, "other.yaml"); cfg.Snapshot != want {
		t.Errorf("Snapshot = %q, want %q", cfg.Snapshot, want)
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("SlogLevel() = %v, want WARN", cfg.SlogLevel())
	}
	if cfg.InspectorAddress() != "localhost:8181" {
		t.Errorf("InspectorAddress() = %q", cfg.InspectorAddress())
	}

	if err := cfg.ApplyEnv(map[string]string{EnvInspectorPort: "http"}); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestApplyEnvSnapshotRelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"snapshot": "states/app.yaml"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg.SnapshotPath(), filepath.Join(dir, "states/app.yaml"); got != want {
		t.Errorf("file SnapshotPath() = %q, want %q", got, want)
	}

	if err := cfg.ApplyEnv(map[string]string{EnvSnapshot: "env.yaml"}); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.SnapshotPath(), filepath.Join(wd, "env.yaml"); got != want {
		t.Errorf("env SnapshotPath() = %q, want %q", got, want)
	}

	abs := filepath.Join(dir, "abs.yaml")
	if err := cfg.ApplyEnv(map[string]string{EnvSnapshot: abs}); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if got := cfg.SnapshotPath(); got != abs {
		t.Errorf("absolute SnapshotPath() = %q, want %q", got, abs)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "ROUTERCTL_LOG_LEVEL=debug\nROUTERCTL_INSPECTOR_HOST=0.0.0.0\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvInspectorHost, "127.0.0.1")

	cfg := New()
	if err := cfg.LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug from dotenv", cfg.Log.Level)
	}
	if cfg.Inspector.Host != "127.0.0.1" {
		t.Errorf("Inspector.Host = %q, process env should win", cfg.Inspector.Host)
	}

	// A missing dotenv file is fine.
	if err := New().LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("LoadEnv(missing) error = %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range tests {
		cfg := New()
		cfg.Log.Level = level
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
