package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DownloadDir         string `koanf:"download_dir"`          // where downloads are saved (default: ~/Downloads)
	Volume              int    `koanf:"volume"`                // initial volume percent, 0-100 (default: 70)
	FetchTimeoutSeconds int    `koanf:"fetch_timeout_seconds"` // remote track fetch timeout (default: 30)

	Visualizer VisualizerConfig `koanf:"visualizer"`
	Desktop    DesktopConfig    `koanf:"desktop"`
	Log        LogConfig        `koanf:"log"`
}

// VisualizerConfig holds equalizer animation settings.
type VisualizerConfig struct {
	BarsDesktop int `koanf:"bars_desktop"` // bars in the desktop layout (default: 16)
	BarsMobile  int `koanf:"bars_mobile"`  // bars in the mobile layout (default: 8)
	IntervalMS  int `koanf:"interval_ms"`  // frame interval (default: 200)
}

// DesktopConfig toggles the desktop integrations (Linux only).
type DesktopConfig struct {
	Notifications bool `koanf:"notifications"` // "now playing" and download bubbles (default: true)
	MPRIS         bool `koanf:"mpris"`         // media keys and widgets over D-Bus (default: true)
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`       // "debug", "info", "warn", "error" (default: "info")
	File       string `koanf:"file"`        // empty means the XDG state directory
	MaxSizeMB  int    `koanf:"max_size_mb"` // rotate after this size (default: 10)
	MaxBackups int    `koanf:"max_backups"` // rotated files kept (default: 3)
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		DownloadDir:         "~/Downloads",
		Volume:              70,
		FetchTimeoutSeconds: 30,
		Visualizer: VisualizerConfig{
			BarsDesktop: 16,
			BarsMobile:  8,
			IntervalMS:  200,
		},
		Desktop: DesktopConfig{
			Notifications: true,
			MPRIS:         true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the default config locations. A non-empty explicit path is
// loaded last and must exist.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, err
		}
		paths = append(paths, explicit)
	}
	return LoadFrom(paths...)
}

// LoadFrom merges the given files in order (last wins). Missing files are
// skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	c.DownloadDir = expandPath(c.DownloadDir)
	if c.DownloadDir == "" {
		c.DownloadDir = "."
	}
	c.Log.File = expandPath(c.Log.File)

	c.Volume = min(max(c.Volume, 0), 100)
	if c.FetchTimeoutSeconds < 0 {
		c.FetchTimeoutSeconds = 0
	}
	if c.Visualizer.BarsDesktop <= 0 {
		c.Visualizer.BarsDesktop = 16
	}
	if c.Visualizer.BarsMobile <= 0 {
		c.Visualizer.BarsMobile = 8
	}
	if c.Visualizer.IntervalMS <= 0 {
		c.Visualizer.IntervalMS = 200
	}
}

// FetchTimeout returns the remote fetch timeout; zero means no timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// VisualizerInterval returns the frame interval.
func (c *Config) VisualizerInterval() time.Duration {
	return time.Duration(c.Visualizer.IntervalMS) * time.Millisecond
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/lofi/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "lofi", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
