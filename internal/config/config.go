// Package config loads the opsweep configuration from file, environment,
// and defaults.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Default restart timing, mirroring the restarter's compiled-in policy.
const (
	DefaultStopPollSeconds = 1
	DefaultStopPollMax     = 30
	DefaultSettleSeconds   = 5
)

// DefaultServices is the compiled-in fallback restart list.
var DefaultServices = []string{"winrm", "spooler", "dhcpd"}

type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type Restart struct {
	// Services to restart, in order
	Services []string `yaml:"services" mapstructure:"services"`

	// StopPollSeconds is the interval between stop polls
	StopPollSeconds int `yaml:"stop_poll_seconds" mapstructure:"stop_poll_seconds"`

	// StopPollMax is the stop poll attempt ceiling
	StopPollMax int `yaml:"stop_poll_max" mapstructure:"stop_poll_max"`

	// SettleSeconds is the unconditional post-start settle delay
	SettleSeconds int `yaml:"settle_seconds" mapstructure:"settle_seconds"`
}

type Cleanup struct {
	// Profile selects the provider credential context
	Profile string `yaml:"profile" mapstructure:"profile"`

	// Region the cleanup runs against
	Region string `yaml:"region" mapstructure:"region"`

	// DryRun makes cleanup report-only unless overridden on the command line
	DryRun bool `yaml:"dry_run" mapstructure:"dry_run"`

	// SnapshotMaxAgeDays is the snapshot age threshold
	SnapshotMaxAgeDays int `yaml:"snapshot_max_age_days" mapstructure:"snapshot_max_age_days"`
}

type Config struct {
	Log     Log     `yaml:"log" mapstructure:"log"`
	Restart Restart `yaml:"restart" mapstructure:"restart"`
	Cleanup Cleanup `yaml:"cleanup" mapstructure:"cleanup"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: Log{Level: "info", Format: "text"},
		Restart: Restart{
			Services:        DefaultServices,
			StopPollSeconds: DefaultStopPollSeconds,
			StopPollMax:     DefaultStopPollMax,
			SettleSeconds:   DefaultSettleSeconds,
		},
		Cleanup: Cleanup{
			Profile:            "automation",
			Region:             "us-east-1",
			SnapshotMaxAgeDays: 7,
		},
	}
}

// StopPollInterval returns the stop poll interval as a duration.
func (r Restart) StopPollInterval() time.Duration {
	return time.Duration(r.StopPollSeconds) * time.Second
}

// Settle returns the settle delay as a duration.
func (r Restart) Settle() time.Duration {
	return time.Duration(r.SettleSeconds) * time.Second
}

// SnapshotMaxAge returns the snapshot age threshold as a duration.
func (c Cleanup) SnapshotMaxAge() time.Duration {
	return time.Duration(c.SnapshotMaxAgeDays) * 24 * time.Hour
}

// Load reads the configuration from the given path, or from the standard
// search paths when path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("opsweep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")             // Local development override
		v.AddConfigPath("$HOME/.opsweep")
		v.AddConfigPath("/etc/opsweep/") // System-wide production config
	}

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		// A missing file means defaults; anything else is a real problem.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
		return cfg, nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
