package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-cardrender/pkg/workflow"
)

// EnvPrefix marks environment overrides, e.g. CARDRENDER_WORKFLOW_BASE_URL.
const EnvPrefix = "CARDRENDER_"

// Designer store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the application configuration.
type Config struct {
	Server   Server          `toml:"server" mapstructure:"server"`
	Workflow workflow.Config `toml:"workflow" mapstructure:"workflow"`
	Designer Designer        `toml:"designer" mapstructure:"designer"`
	Log      Log             `toml:"log" mapstructure:"log"`
}

type Server struct {
	Addr         string        `toml:"addr" mapstructure:"addr"`
	MaxBodyBytes int64         `toml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Metrics      bool          `toml:"metrics" mapstructure:"metrics"`
	Stylesheet   string        `toml:"stylesheet" mapstructure:"stylesheet"`
	SessionTTL   time.Duration `toml:"session_ttl" mapstructure:"session_ttl"`
	MaxSessions  int           `toml:"max_sessions" mapstructure:"max_sessions"`
}

type Designer struct {
	Store       string        `toml:"store" mapstructure:"store"`
	RedisAddr   string        `toml:"redis_addr" mapstructure:"redis_addr"`
	RedisPrefix string        `toml:"redis_prefix" mapstructure:"redis_prefix"`
	RedisTTL    time.Duration `toml:"redis_ttl" mapstructure:"redis_ttl"`
	SQLitePath  string        `toml:"sqlite_path" mapstructure:"sqlite_path"`
}

type Log struct {
	Level string `toml:"level" mapstructure:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:   Server{Addr: ":8080", MaxBodyBytes: 1 << 20, Metrics: true, SessionTTL: 30 * time.Minute, MaxSessions: 1000},
		Workflow: workflow.Config{Timeout: 30 * time.Second},
		Designer: Designer{Store: StoreMemory, RedisAddr: "localhost:6379", RedisPrefix: "cardrender:"},
		Log:      Log{Level: "info"},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or the default path.
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(GetXDGConfigHome(), "cardrender", "config.toml")
}

// Load reads path over Default and applies environment overrides. An empty
// path reads DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	return load(path, os.Environ())
}

func load(path string, environ []string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, environ); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays CARDRENDER_<SECTION>_<KEY> variables. Values are
// weakly typed, so "true", "8080" and "5s" decode into their fields.
func applyEnv(cfg *Config, environ []string) error {
	overlay := map[string]map[string]any{}
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		section, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
		if !ok || key == "" {
			continue
		}
		if overlay[section] == nil {
			overlay[section] = map[string]any{}
		}
		overlay[section][key] = value
	}
	if len(overlay) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("config: env decoder: %w", err)
	}
	if err := decoder.Decode(overlay); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.Designer.Store {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown designer store %q", c.Designer.Store)
	}
	if c.Designer.Store == StoreSQLite && c.Designer.SQLitePath == "" {
		return errors.New("config: designer.sqlite_path is required for the sqlite store")
	}
	return nil
}
