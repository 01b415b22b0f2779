// Package config loads stackradar's runtime settings.
//
// Settings come from .stackradar.yaml (working directory, then home), then
// STACKRADAR_* environment variables, then command-line flags bound by the
// CLI. The chart itself (quadrants, rings, tuning) lives in a separate TOML
// file named by the chart key.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. STACKRADAR_WORKERS.
const EnvPrefix = "STACKRADAR"

// WatchConfig holds settings for render --watch.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config holds all runtime configuration for one invocation.
type Config struct {
	Chart   string      `mapstructure:"chart"` // path to a chart TOML file; empty means the stock chart
	Formats []string    `mapstructure:"formats"`
	Output  string      `mapstructure:"output"` // output directory; empty means next to the input
	Workers int         `mapstructure:"workers"`
	Scale   float64     `mapstructure:"scale"`
	Verbose bool        `mapstructure:"verbose"`
	Watch   WatchConfig `mapstructure:"watch"`
}

// Init points viper at the config file and the environment. An explicit
// path must exist; the default .stackradar.yaml is optional.
func Init(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(".stackradar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("chart", "")
	viper.SetDefault("formats", []string{"svg"})
	viper.SetDefault("output", "")
	viper.SetDefault("workers", 1)
	viper.SetDefault("scale", 2.0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch.debounce", 200*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Used reports the config file viper read, if any.
func Used() string {
	return viper.ConfigFileUsed()
}
