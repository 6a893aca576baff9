package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hubastard/hazel/engine/colors"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("core: invalid config")

// Config describes the window and surface an Application starts with.
type Config struct {
	Title   string `toml:"title" yaml:"title"`
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height" yaml:"height"`
	Visible bool   `toml:"visible" yaml:"visible"`
	VSync   bool   `toml:"vsync" yaml:"vsync"`

	ClearColor colors.Color `toml:"clear_color" yaml:"clear_color"`

	// PowerPreference is "low-power" or "high-performance".
	PowerPreference string `toml:"power_preference" yaml:"power_preference"`

	// UISettingsPath is handed to UI layers to persist their state. Empty
	// disables persistence.
	UISettingsPath string `toml:"ui_settings" yaml:"ui_settings"`

	LogLevel string `toml:"log_level" yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Title:           "Hazel",
		Width:           1280,
		Height:          720,
		Visible:         true,
		VSync:           true,
		ClearColor:      colors.Background,
		PowerPreference: "high-performance",
		LogLevel:        "debug",
	}
}

// Validate reports the first invalid field, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case !validLogLevel(c.LogLevel):
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if _, err := c.PowerPreferenceValue(); err != nil {
		return err
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear colour channel %d is %v", ErrInvalidConfig, i, v)
		}
	}
	return nil
}

// PowerPreferenceValue maps PowerPreference to the adapter hint.
func (c Config) PowerPreferenceValue() (gputypes.PowerPreference, error) {
	switch strings.ToLower(c.PowerPreference) {
	case "", "high-performance":
		return gputypes.PowerPreferenceHighPerformance, nil
	case "low-power":
		return gputypes.PowerPreferenceLowPower, nil
	}
	return 0, fmt.Errorf("%w: power preference %q", ErrInvalidConfig, c.PowerPreference)
}

func validLogLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// LoadConfig reads a TOML or YAML file, chosen by extension, over
// DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("core: read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return cfg, fmt.Errorf("core: config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("core: decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
