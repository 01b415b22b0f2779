package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Chart", cfg.Chart, ""},
		{"Output", cfg.Output, ""},
		{"Workers", cfg.Workers, 1},
		{"Scale", cfg.Scale, 2.0},
		{"Verbose", cfg.Verbose, false},
		{"Debounce", cfg.Watch.Debounce, 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if !slices.Equal(cfg.Formats, []string{"svg"}) {
		t.Errorf("Formats = %v, want [svg]", cfg.Formats)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "chart",
			envKey: "STACKRADAR_CHART",
			envVal: "/etc/radar.toml",
			field:  func(c Config) any { return c.Chart },
			want:   "/etc/radar.toml",
		},
		{
			name:   "workers",
			envKey: "STACKRADAR_WORKERS",
			envVal: "8",
			field:  func(c Config) any { return c.Workers },
			want:   8,
		},
		{
			name:   "scale",
			envKey: "STACKRADAR_SCALE",
			envVal: "1.5",
			field:  func(c Config) any { return c.Scale },
			want:   1.5,
		},
		{
			name:   "verbose",
			envKey: "STACKRADAR_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.SetEnvPrefix(EnvPrefix)
			viper.AutomaticEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestInit_ConfigFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "chart: radar.toml\nformats: [svg, json]\nworkers: 4\nwatch:\n  debounce: 1s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chart != "radar.toml" || cfg.Workers != 4 || cfg.Watch.Debounce != time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if Used() != path {
		t.Errorf("Used() = %q, want %q", Used(), path)
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper(t)
	if err := Init(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Init() with a missing explicit file should fail")
	}
}

func TestInit_NoDefaultFile(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	if err := Init(""); err != nil {
		t.Errorf("Init(\"\") without a config file: %v", err)
	}
}
