package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Version       int               `toml:"version"`
	ProjectRoot   string            `toml:"project_root"`
	SourceDirs    []string          `toml:"source_dirs"`
	Extensions    map[string]string `toml:"extensions"` // extension -> grammar
	Exclude       Exclude           `toml:"exclude"`
	DB            Database          `toml:"db"`
	Watch         Watch             `toml:"watch"`
	Observability Observability     `toml:"observability"`
}

type Exclude struct {
	Dirs    []string `toml:"dirs"`
	Files   []string `toml:"files"`
	Imports []string `toml:"imports"` // import references to ignore for unused checks
}

type Database struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Watch struct {
	Debounce      time.Duration `toml:"debounce"`
	RescansPerSec float64       `toml:"rescans_per_sec"`
	RescanBurst   int           `toml:"rescan_burst"`
}

type Observability struct {
	Addr         string `toml:"addr"`          // promhttp + health listen address
	OTLPEndpoint string `toml:"otlp_endpoint"` // empty disables trace export
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	ApplyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a usable configuration for a project rooted at root,
// without requiring a config file on disk.
func Default(root string) *Config {
	cfg := &Config{ProjectRoot: root}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.ProjectRoot) == "" {
		cfg.ProjectRoot = "."
	}
	if len(cfg.SourceDirs) == 0 {
		cfg.SourceDirs = []string{"."}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = map[string]string{
			".java":   "java",
			".groovy": "java",
			".gvy":    "java",
		}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"**/build", "**/target", "**/.git"}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.RescansPerSec == 0 {
		cfg.Watch.RescansPerSec = 4
	}
	if cfg.Watch.RescanBurst == 0 {
		cfg.Watch.RescanBurst = 8
	}
	if cfg.DB.Enabled && strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = "symbols.db"
	}
	if cfg.DB.Enabled && strings.TrimSpace(cfg.DB.ProjectKey) == "" {
		cfg.DB.ProjectKey = "default"
	}
}

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", cfg.Version)
	}
	if info, err := os.Stat(cfg.ProjectRoot); err != nil {
		return fmt.Errorf("project_root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("project_root is not a directory: %s", cfg.ProjectRoot)
	}
	for ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions keys must start with a dot: %q", ext)
		}
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.RescansPerSec < 0 {
		return fmt.Errorf("watch.rescans_per_sec must not be negative")
	}
	return nil
}
