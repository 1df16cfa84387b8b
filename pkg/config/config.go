// Package config handles loading and saving podgraph configuration.
//
// The config file lives at $XDG_CONFIG_HOME/podgraph/config.yaml
// (~/.config/podgraph/config.yaml when unset).
//
// Environment variables prefixed PODGRAPH_ override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/podgraph/pkg/explorer"
	"github.com/vanderheijden86/podgraph/pkg/layout"
	"github.com/vanderheijden86/podgraph/pkg/model"
	"github.com/vanderheijden86/podgraph/pkg/popup"
	"github.com/vanderheijden86/podgraph/pkg/viewport"
)

const appName = "podgraph"

// LayoutConfig is the logical canvas and ring geometry.
type LayoutConfig struct {
	Width      float64 `yaml:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty"`
	BaseRadius float64 `yaml:"base_radius,omitempty"`
	Spread     float64 `yaml:"spread,omitempty"`
}

// ViewportConfig holds zoom limits and steps.
type ViewportConfig struct {
	ZoomMin    float64 `yaml:"zoom_min,omitempty"`
	ZoomMax    float64 `yaml:"zoom_max,omitempty"`
	WheelStep  float64 `yaml:"wheel_step,omitempty"`
	ButtonStep float64 `yaml:"button_step,omitempty"`
}

// PopupConfig is the details popup geometry.
type PopupConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Offset float64 `yaml:"offset,omitempty"`
	Margin float64 `yaml:"margin,omitempty"`
}

// UIConfig holds TUI preferences.
type UIConfig struct {
	ShowSuggestions bool `yaml:"show_suggestions"`
	Mouse           bool `yaml:"mouse"`
	Fullscreen      bool `yaml:"fullscreen,omitempty"` // Start without chrome
}

// ExportConfig holds snapshot defaults.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Format string `yaml:"format,omitempty"` // svg, png, db
}

// Config is the top-level configuration for podgraph.
type Config struct {
	Data        string            `yaml:"data,omitempty"` // Result set file (.jsonl, .json, .db)
	Layout      LayoutConfig      `yaml:"layout"`
	Viewport    ViewportConfig    `yaml:"viewport"`
	Popup       PopupConfig       `yaml:"popup"`
	Suggestions model.Suggestions `yaml:"suggestions"`
	UI          UIConfig          `yaml:"ui"`
	Export      ExportConfig      `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	l := layout.DefaultConfig()
	v := viewport.DefaultConfig()
	return Config{
		Layout: LayoutConfig{
			Width:      l.Width,
			Height:     l.Height,
			BaseRadius: l.BaseRadius,
			Spread:     l.Spread,
		},
		Viewport: ViewportConfig{
			ZoomMin:    v.ZoomMin,
			ZoomMax:    v.ZoomMax,
			WheelStep:  v.WheelStep,
			ButtonStep: v.ButtonStep,
		},
		Popup: PopupConfig{
			Width:  popup.DefaultWidth,
			Height: popup.DefaultHeight,
			Offset: popup.DefaultOffset,
			Margin: popup.DefaultMargin,
		},
		Suggestions: model.Suggestions{
			Top:    []string{"artificial intelligence", "innovation", "future trends"},
			Bottom: []string{"startup ecosystem", "digital transformation", "remote collaboration"},
			Left:   []string{"creative technology", "ethical AI", "sustainable business"},
			Right:  []string{"workplace culture", "productivity tools", "technology adoption"},
		},
		UI: UIConfig{
			ShowSuggestions: true,
			Mouse:           true,
		},
		Export: ExportConfig{
			Format: "svg",
		},
	}
}

// ConfigDir returns the XDG config directory for podgraph.
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

// ConfigPath returns the full path to config.yaml. PODGRAPH_CONFIG wins
// over the XDG location.
func ConfigPath() string {
	if p := os.Getenv("PODGRAPH_CONFIG"); p != "" {
		return expandHome(p)
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file, applies environment overrides and validates
// the result. Returns DefaultConfig (plus overrides) if the file doesn't
// exist.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if path := ConfigPath(); path != "" {
		var err error
		if cfg, err = LoadFrom(path); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
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
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data = expandHome(cfg.Data)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
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

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects geometry the engine cannot render.
func (c Config) Validate() error {
	var problems []string
	if c.Viewport.ZoomMin <= 0 {
		problems = append(problems, "viewport.zoom_min must be positive")
	}
	if c.Viewport.ZoomMin > c.Viewport.ZoomMax {
		problems = append(problems, "viewport.zoom_min exceeds zoom_max")
	}
	if c.Viewport.WheelStep <= 1 || c.Viewport.WheelStep >= 2 {
		problems = append(problems, "viewport.wheel_step must be in (1, 2)")
	}
	if c.Viewport.ButtonStep <= 1 {
		problems = append(problems, "viewport.button_step must exceed 1")
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		problems = append(problems, "layout width and height must be positive")
	}
	if c.Layout.BaseRadius < 0 || c.Layout.Spread < 0 {
		problems = append(problems, "layout radii must not be negative")
	}
	if c.Popup.Width <= 0 || c.Popup.Height <= 0 {
		problems = append(problems, "popup width and height must be positive")
	}
	if c.Popup.Margin < 0 {
		problems = append(problems, "popup.margin must not be negative")
	}
	switch strings.ToLower(c.Export.Format) {
	case "", "svg", "png", "db":
	default:
		problems = append(problems, fmt.Sprintf("export.format %q not one of svg, png, db", c.Export.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ExplorerConfig converts the file config into engine configuration.
func (c Config) ExplorerConfig() explorer.Config {
	cfg := explorer.Config{
		Layout: layout.Config{
			Width:      c.Layout.Width,
			Height:     c.Layout.Height,
			BaseRadius: c.Layout.BaseRadius,
			Spread:     c.Layout.Spread,
		},
		Viewport: viewport.Config{
			ZoomMin:    c.Viewport.ZoomMin,
			ZoomMax:    c.Viewport.ZoomMax,
			WheelStep:  c.Viewport.WheelStep,
			ButtonStep: c.Viewport.ButtonStep,
		},
		PopupSize:    model.Size{W: c.Popup.Width, H: c.Popup.Height},
		PopupOptions: popup.Options{Offset: c.Popup.Offset, Margin: c.Popup.Margin},
		Screen:       model.Size{W: c.Layout.Width, H: c.Layout.Height},
	}
	if c.UI.ShowSuggestions {
		cfg.Suggestions = c.Suggestions
	}
	return cfg
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

// Env lists the PODGRAPH_ environment overrides. Unset pointer fields leave
// the file value alone.
type Env struct {
	Data            string   `split_words:"true"`
	ZoomMin         *float64 `split_words:"true"`
	ZoomMax         *float64 `split_words:"true"`
	PopupWidth      *float64 `split_words:"true"`
	PopupHeight     *float64 `split_words:"true"`
	ShowSuggestions *bool    `split_words:"true"`
	Mouse           *bool    `split_words:"true"`
	ExportDir       string   `split_words:"true"`
	ExportFormat    string   `split_words:"true"`
}

// ApplyEnv processes PODGRAPH_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var env Env
	if err := envconfig.Process(appName, &env); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}
	if env.Data != "" {
		cfg.Data = expandHome(env.Data)
	}
	if env.ZoomMin != nil {
		cfg.Viewport.ZoomMin = *env.ZoomMin
	}
	if env.ZoomMax != nil {
		cfg.Viewport.ZoomMax = *env.ZoomMax
	}
	if env.PopupWidth != nil {
		cfg.Popup.Width = *env.PopupWidth
	}
	if env.PopupHeight != nil {
		cfg.Popup.Height = *env.PopupHeight
	}
	if env.ShowSuggestions != nil {
		cfg.UI.ShowSuggestions = *env.ShowSuggestions
	}
	if env.Mouse != nil {
		cfg.UI.Mouse = *env.Mouse
	}
	if env.ExportDir != "" {
		cfg.Export.Dir = expandHome(env.ExportDir)
	}
	if env.ExportFormat != "" {
		cfg.Export.Format = strings.ToLower(env.ExportFormat)
	}
	return nil
}
