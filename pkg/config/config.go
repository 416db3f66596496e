// Package config handles loading and saving trendradar configuration.
//
// The config file lives at $XDG_CONFIG_HOME/trendradar/config.yaml
// (~/.config/trendradar/config.yaml when unset). Environment variables
// override the file, optionally read from a .env file first:
//
//	TR_DATA    dataset path
//	TR_VIEW    radar | matrix
//	TR_METHOD  authored | technology | business | impact | timeline
//	TR_ADDR    HTTP listen address
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

const appName = "trendradar"

// Chart size bounds for exports and the HTTP chart endpoint.
const (
	MinChartSize = 200
	MaxChartSize = 2400
)

// UIConfig holds TUI preferences.
type UIConfig struct {
	DefaultView   string  `yaml:"default_view,omitempty"`   // radar, matrix
	DefaultMethod string  `yaml:"default_method,omitempty"` // authored, technology, business, impact, timeline
	ChartSize     float64 `yaml:"chart_size,omitempty"`     // nominal chart side the terminal canvas maps onto
	MarkdownStyle string  `yaml:"markdown_style,omitempty"` // glamour style: dark, light, notty
	SidebarWidth  int     `yaml:"sidebar_width,omitempty"`
}

// DataConfig selects the dataset.
type DataConfig struct {
	Path  string `yaml:"path,omitempty"` // empty means the embedded dataset
	Watch bool   `yaml:"watch,omitempty"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr,omitempty"`
	CORSOrigins  []string      `yaml:"cors_origins,omitempty"`
	ReadTimeout  time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write_timeout,omitempty"`
}

// ExportConfig configures file exports.
type ExportConfig struct {
	Size float64 `yaml:"size,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	UI     UIConfig     `yaml:"ui,omitempty"`
	Data   DataConfig   `yaml:"data,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			DefaultView:   "radar",
			DefaultMethod: "technology",
			ChartSize:     600,
			MarkdownStyle: "dark",
			SidebarWidth:  30,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			CORSOrigins:  []string{"*"},
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Export: ExportConfig{Size: 600},
	}
}

// View returns the configured default view.
func (c Config) View() model.ViewMode {
	v, _ := model.ParseViewMode(c.UI.DefaultView)
	return v
}

// Method returns the configured default distribution method.
func (c Config) Method() model.Method {
	return model.ParseMethod(c.UI.DefaultMethod)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, ok := model.ParseViewMode(c.UI.DefaultView); !ok {
		errs = append(errs, fmt.Errorf("ui.default_view: unknown view %q", c.UI.DefaultView))
	}
	if _, ok := model.LookupMethod(c.UI.DefaultMethod); !ok {
		errs = append(errs, fmt.Errorf("ui.default_method: unknown method %q", c.UI.DefaultMethod))
	}
	for name, size := range map[string]float64{"ui.chart_size": c.UI.ChartSize, "export.size": c.Export.Size} {
		if !(size >= MinChartSize && size <= MaxChartSize) {
			errs = append(errs, fmt.Errorf("%s: %v out of range %d..%d", name, size, MinChartSize, MaxChartSize))
		}
	}
	if c.UI.SidebarWidth < 0 {
		errs = append(errs, fmt.Errorf("ui.sidebar_width: must not be negative"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server: timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the XDG config directory.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Missing keys keep their
// defaults; a missing file yields DefaultConfig.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	cfg.Data.Path = expandHome(cfg.Data.Path)
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadEnv reads KEY=value pairs from the given .env files (default ".env")
// into the process environment. Variables already set win, and missing
// files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ApplyEnv returns cfg with the TR_* overrides from getenv applied.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if v := getenv("TR_DATA"); v != "" {
		c.Data.Path = expandHome(v)
	}
	if v := getenv("TR_VIEW"); v != "" {
		c.UI.DefaultView = v
	}
	if v := getenv("TR_METHOD"); v != "" {
		c.UI.DefaultMethod = v
	}
	if v := getenv("TR_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return c
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
