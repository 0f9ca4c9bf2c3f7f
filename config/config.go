// Package config loads the runtime configuration and keymap YAML files
// spec §6 leaves as "implementer's choice" for keymap encoding.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level runtime configuration, decoded once at
// startup (spec's "no hot-reload" ambient-stack choice).
type Config struct {
	// TickIntervalMs is the target main-loop period in milliseconds.
	// Spec §4.1 only assumes "a steady ~1-5ms period"; this is not
	// enforced, only aimed for.
	TickIntervalMs int `yaml:"tick_interval_ms"`

	SerialDevice string `yaml:"serial_device"`
	SerialBaud   int    `yaml:"serial_baud"`

	KeyboardDevice string `yaml:"keyboard_device"`
	ConsumerDevice string `yaml:"consumer_device"`
	MouseDevice    string `yaml:"mouse_device"`

	// DiagnosticsIntervalTicks is how often diagnostics.Logger emits
	// its periodic summary line (spec §6).
	DiagnosticsIntervalTicks int `yaml:"diagnostics_interval_ticks"`

	KeymapPath string `yaml:"keymap_path"`
}

// TickInterval is TickIntervalMs as a time.Duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Load reads and decodes a Config from a YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if c.TickIntervalMs <= 0 {
		c.TickIntervalMs = 2
	}
	if c.SerialBaud <= 0 {
		c.SerialBaud = 115200
	}
	if c.DiagnosticsIntervalTicks <= 0 {
		c.DiagnosticsIntervalTicks = 5000
	}
	return &c, nil
}
