package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, envPrefix+"_") {
			name, _, _ := strings.Cut(kv, "=")
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return dir
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if want := filepath.Join(dir, "data", "twodo", "twodo.db"); cfg.DB != want {
		t.Fatalf("expected db %q, got %q", want, cfg.DB)
	}
	if cfg.FrameRate != 60 || cfg.Backups != 10 || cfg.Format != "text" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := isolate(t)
	mustWrite(t, filepath.Join(dir, "config", "twodo", "config.yaml"), "frame_rate: 30\nbackups: 3\nformat: json\n")
	t.Setenv("TWODO_BACKUPS", "5")

	flags := pflag.NewFlagSet("twodo", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("format", "text", "")
	if err := flags.Parse([]string{"--db", "/tmp/x.db"}); err != nil {
		t.Fatalf("parse flags failed: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FrameRate != 30 {
		t.Fatalf("expected frame_rate from file, got %d", cfg.FrameRate)
	}
	if cfg.Backups != 5 {
		t.Fatalf("expected backups from env, got %d", cfg.Backups)
	}
	if cfg.DB != "/tmp/x.db" {
		t.Fatalf("expected db from flag, got %q", cfg.DB)
	}
	if cfg.Format != "json" {
		t.Fatalf("expected unset flag not to override file, got %q", cfg.Format)
	}
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")

	for _, content := range []string{
		"frame_rate: 0\n",
		"format: xml\n",
		"backups: -1\n",
		"log_level: loud\n",
	} {
		mustWrite(t, path, content)
		if _, err := Load(path, nil); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%q: expected ErrInvalid, got %v", content, err)
		}
	}
}

func TestExpandHome(t *testing.T) {
	dir := isolate(t)
	if got := expandHome("~/notes/todo.db"); got != filepath.Join(dir, "notes", "todo.db") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("expected absolute path untouched, got %q", got)
	}
}

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.LogFile = filepath.Join(dir, "logs", "twodo.log")
	cfg.LogLevel = "debug"

	log, closeLog, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	log.Debug("hello", "n", 1)
	if err := closeLog(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("expected JSON log line, got %s", data)
	}
}
