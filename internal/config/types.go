// Package config loads quill's user configuration from YAML.
package config

import (
	"time"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/theme"
)

// Config is the root of config.yaml.
type Config struct {
	Theme    ThemeConfig    `yaml:"theme"`
	Log      LogConfig      `yaml:"log"`
	Waitlist WaitlistConfig `yaml:"waitlist"`
}

// ThemeConfig controls theme resolution and where it is mirrored.
type ThemeConfig struct {
	Default      string        `yaml:"default" validate:"theme_selection"`
	StorageKey   string        `yaml:"storage_key" validate:"required,storage_key"`
	TrackSystem  bool          `yaml:"track_system"`
	Fallback     string        `yaml:"fallback" validate:"appearance"`
	Surface      string        `yaml:"surface" validate:"oneof=class attribute"`
	Attribute    string        `yaml:"attribute" validate:"required_if=Surface attribute"`
	PollInterval time.Duration `yaml:"poll_interval" validate:"gte=0"`
}

// LogConfig selects the log level and encoder.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// WaitlistConfig points the splash call-to-action at a signup endpoint. An
// empty endpoint disables submission.
type WaitlistConfig struct {
	Endpoint string        `yaml:"endpoint" validate:"omitempty,http_url"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	opts := theme.DefaultOptions()
	return Config{
		Theme: ThemeConfig{
			Default:      string(opts.Default),
			StorageKey:   opts.StorageKey,
			TrackSystem:  opts.TrackSystem,
			Fallback:     string(opts.Fallback),
			Surface:      "class",
			Attribute:    "data-theme",
			PollInterval: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Waitlist: WaitlistConfig{
			Timeout: 10 * time.Second,
		},
	}
}

// Options converts the theme section into engine options. Call it on a
// validated config.
func (c ThemeConfig) Options() theme.Options {
	return theme.Options{
		Default:     appearance.Selection(c.Default),
		StorageKey:  c.StorageKey,
		TrackSystem: c.TrackSystem,
		Fallback:    appearance.Preference(c.Fallback),
	}
}

// Overrides carries command-line flags that take precedence over the file.
// Empty fields leave the loaded value alone.
type Overrides struct {
	LogLevel     string
	LogFormat    string
	StorageKey   string
	DefaultTheme string
}

// Apply merges o into c and re-validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
	if o.StorageKey != "" {
		c.Theme.StorageKey = o.StorageKey
	}
	if o.DefaultTheme != "" {
		c.Theme.Default = o.DefaultTheme
	}
	return Validate(c)
}
