package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
serial_device: /dev/ttyUSB0
keyboard_device: /dev/hidg0
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TickInterval() != 2*time.Millisecond {
		t.Fatalf("TickInterval = %v, want 2ms default", c.TickInterval())
	}
	if c.SerialBaud != 115200 {
		t.Fatalf("SerialBaud = %d, want 115200 default", c.SerialBaud)
	}
	if c.DiagnosticsIntervalTicks != 5000 {
		t.Fatalf("DiagnosticsIntervalTicks = %d, want 5000 default", c.DiagnosticsIntervalTicks)
	}
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := writeTempConfig(t, `
tick_interval_ms: 3
serial_device: /dev/ttyUSB0
serial_baud: 57600
keyboard_device: /dev/hidg0
consumer_device: /dev/hidg1
mouse_device: /dev/hidg2
diagnostics_interval_ticks: 1000
keymap_path: keymap.yaml
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TickInterval() != 3*time.Millisecond {
		t.Fatalf("TickInterval = %v, want 3ms", c.TickInterval())
	}
	if c.SerialBaud != 57600 {
		t.Fatalf("SerialBaud = %d, want 57600", c.SerialBaud)
	}
	if c.DiagnosticsIntervalTicks != 1000 {
		t.Fatalf("DiagnosticsIntervalTicks = %d, want 1000", c.DiagnosticsIntervalTicks)
	}
	if c.KeymapPath != "keymap.yaml" {
		t.Fatalf("KeymapPath = %q, want keymap.yaml", c.KeymapPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
