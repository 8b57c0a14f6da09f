// Package config loads project configuration from a planline.yaml
// file, with environment-variable overrides for values that differ
// between machines.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "planline.yaml"

// Config holds scheduling configuration for a project.
type Config struct {
	// Source is the path to the project task file.
	Source string `yaml:"source"`

	// StartDate is the project start, YYYY-MM-DD.
	StartDate string `yaml:"start_date"`

	// Epoch is the week-numbering epoch, YYYY-MM-DD. Defaults to the
	// start date when empty.
	Epoch string `yaml:"epoch"`

	// HoursPerDay is the effort-to-days divisor. 0 means the scheduler
	// default.
	HoursPerDay float64 `yaml:"hours_per_day"`

	// AutoSchedule selects dependency-driven scheduling; false selects
	// the sequential manual mode.
	AutoSchedule *bool `yaml:"auto_schedule"`

	// ShowCriticalPath controls only whether the critical path is
	// rendered. It never changes what gets computed.
	ShowCriticalPath *bool `yaml:"show_critical_path"`
}

// Load reads the config at path. A missing file is not an error; the
// zero config with env overrides applied is returned so the CLI can
// run from flags alone.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	var cfg Config
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PLANLINE_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv("PLANLINE_START_DATE"); v != "" {
		cfg.StartDate = v
	}
	if v := os.Getenv("PLANLINE_EPOCH"); v != "" {
		cfg.Epoch = v
	}
	if v := os.Getenv("PLANLINE_HOURS_PER_DAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HoursPerDay = f
		}
	}
}

// Start parses the configured start date. When unset, today (UTC,
// midnight) is used so a fresh project schedules from now.
func (c *Config) Start() (time.Time, error) {
	if c.StartDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start_date: %w", err)
	}
	return t, nil
}

// WeekEpoch parses the configured epoch, falling back to the start date.
func (c *Config) WeekEpoch() (time.Time, error) {
	if c.Epoch == "" {
		return c.Start()
	}
	t, err := time.Parse("2006-01-02", c.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse epoch: %w", err)
	}
	return t, nil
}

// Auto reports whether automatic scheduling is selected. Defaults true.
func (c *Config) Auto() bool {
	return c.AutoSchedule == nil || *c.AutoSchedule
}

// CriticalPathVisible reports the display flag. Defaults true.
func (c *Config) CriticalPathVisible() bool {
	return c.ShowCriticalPath == nil || *c.ShowCriticalPath
}
