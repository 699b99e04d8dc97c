package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ercot-lmp-viewer/internal/model"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSynthetic = "synthetic"
	SourceFile      = "file"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server    ServerConfig  `yaml:"server"`
	Market    MarketConfig  `yaml:"market"`
	Source    SourceConfig  `yaml:"source"`
	Metrics   MetricsConfig `yaml:"metrics"`
	NodesFile string        `yaml:"nodes_file"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"` // "development" or "production"
	CORSOrigins []string `yaml:"cors_origins"`
	StaticDir   string   `yaml:"static_dir"`
}

type MarketConfig struct {
	// UTCOffsetHours fixes the offset hour axes are built in. ERCOT standard
	// time (-6) is the default.
	UTCOffsetHours int    `yaml:"utc_offset_hours"`
	DefaultNode    string `yaml:"default_node"`
	// MaxRangeDays caps the range the HTTP API accepts (0 = no cap).
	MaxRangeDays int `yaml:"max_range_days"`
}

type SourceConfig struct {
	Type  string   `yaml:"type"`
	Files []string `yaml:"files"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// envOverrides are applied on top of the YAML file. Empty values are ignored.
type envOverrides struct {
	Port           string   `envconfig:"API_PORT"`
	Env            string   `envconfig:"API_ENV"`
	Source         string   `envconfig:"LMP_SOURCE"`
	SourceFiles    []string `envconfig:"LMP_SOURCE_FILES"`
	UTCOffsetHours *int     `envconfig:"LMP_UTC_OFFSET_HOURS"`
	NodesFile      string   `envconfig:"NODES_FILE"`
	CORSOrigins    []string `envconfig:"CORS_ORIGINS"`
	StaticDir      string   `envconfig:"STATIC_DIR"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Env:         "development",
			CORSOrigins: []string{"*"},
			StaticDir:   "./web/dist",
		},
		Market: MarketConfig{
			UTCOffsetHours: model.DefaultUTCOffsetHours,
			DefaultNode:    "HB_HOUSTON",
			MaxRangeDays:   366,
		},
		Source: SourceConfig{Type: SourceSynthetic},
		Metrics: MetricsConfig{
			Namespace: "lmp",
			Subsystem: "viewer",
		},
		NodesFile: "./data/nodes.json",
	}
}

// Load reads the YAML file at path (if any), applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file over Default() without env overrides or
// validation. An empty path returns the defaults.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Relative source files are resolved against the config file directory
	// when they exist there, otherwise against the working directory.
	for i, f := range c.Source.Files {
		if filepath.IsAbs(f) {
			continue
		}
		cand := filepath.Join(filepath.Dir(path), f)
		if _, err := os.Stat(cand); err == nil {
			c.Source.Files[i] = cand
		}
	}
	return c, nil
}

// ApplyEnv overlays environment variables onto c.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.Port != "" {
		c.Server.Port = env.Port
	}
	if env.Env != "" {
		c.Server.Env = env.Env
	}
	if env.Source != "" {
		c.Source.Type = env.Source
	}
	if len(env.SourceFiles) > 0 {
		c.Source.Files = env.SourceFiles
	}
	if env.UTCOffsetHours != nil {
		c.Market.UTCOffsetHours = *env.UTCOffsetHours
	}
	if env.NodesFile != "" {
		c.NodesFile = env.NodesFile
	}
	if len(env.CORSOrigins) > 0 {
		c.Server.CORSOrigins = env.CORSOrigins
	}
	if env.StaticDir != "" {
		c.Server.StaticDir = env.StaticDir
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if c.Market.UTCOffsetHours < -12 || c.Market.UTCOffsetHours > 14 {
		return fmt.Errorf("market.utc_offset_hours must be in [-12, 14], got %d", c.Market.UTCOffsetHours)
	}
	if c.Market.MaxRangeDays < 0 {
		return errors.New("market.max_range_days must be >= 0")
	}
	switch c.Source.Type {
	case "", SourceSynthetic:
	case SourceFile:
		if len(c.Source.Files) == 0 {
			return errors.New("source.files is required when source.type is \"file\"")
		}
	default:
		return fmt.Errorf("unsupported source.type %q", c.Source.Type)
	}
	return nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return c.Server.Env == "production"
}
