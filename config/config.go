package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "TWODO"

var ErrInvalid = errors.New("invalid config")

// Config is the merged result of defaults, the config file, TWODO_* env
// vars and command-line flags, in increasing precedence.
type Config struct {
	DB        string `mapstructure:"db"`
	FrameRate int    `mapstructure:"frame_rate"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	Backups   int    `mapstructure:"backups"`
	Format    string `mapstructure:"format"`
}

func Default() Config {
	return Config{
		DB:        DefaultDBPath(),
		FrameRate: 60,
		LogLevel:  "info",
		Backups:   10,
		Format:    "text",
	}
}

// DefaultDBPath is ~/.local/share/twodo/twodo.db, honoring XDG_DATA_HOME.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "twodo", "twodo.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "twodo.db"
	}
	return filepath.Join(home, ".local", "share", "twodo", "twodo.db")
}

// DefaultPath is the config file read when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "twodo", "config.yaml")
}

// Load builds the configuration. An explicit path must exist; the default
// path is optional. Flags that were not set on the command line do not
// override lower layers.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("db", def.DB)
	v.SetDefault("frame_rate", def.FrameRate)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("backups", def.Backups)
	v.SetDefault("format", def.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path == "" {
		if p := DefaultPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for _, name := range []string{"db", "format"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DB = expandHome(cfg.DB)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DB) == "" {
		return fmt.Errorf("%w: db must not be empty", ErrInvalid)
	}
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		return fmt.Errorf("%w: frame_rate must be between 1 and 240, got %d", ErrInvalid, c.FrameRate)
	}
	if c.Backups < 0 {
		return fmt.Errorf("%w: backups must not be negative, got %d", ErrInvalid, c.Backups)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: format must be text or json, got %q", ErrInvalid, c.Format)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewLogger returns a JSON logger writing to the configured log file, or a
// logger that discards everything when no file is set. The terminal belongs
// to the UI. The returned close func is never nil.
func NewLogger(c Config) (*slog.Logger, func() error, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if c.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
	}
	return level, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
