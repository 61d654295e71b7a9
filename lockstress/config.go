//go:build !solution

package lockstress

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config describes a stress workload against one lock.
type Config struct {
	Readers  int
	Writers  int
	Duration time.Duration
	// HoldTime is how long a worker keeps a hold.
	HoldTime time.Duration
	// Timeout bounds TryRLockFor/TryLockFor calls.
	Timeout time.Duration
	// ReentrantDepth is the number of nested write holds a writer takes.
	ReentrantDepth int
	// DowngradeEvery makes every n-th write downgrade to a read hold. 0 disables.
	DowngradeEvery int
	// CancelEvery makes every n-th acquisition use a context that is canceled
	// almost immediately. 0 disables.
	CancelEvery int
	// CheckInterval is the period of invariant checks on the lock state.
	CheckInterval time.Duration
}

// DefaultConfig returns a small workload that finishes in a second.
func DefaultConfig() Config {
	return Config{
		Readers:        8,
		Writers:        4,
		Duration:       time.Second,
		HoldTime:       100 * time.Microsecond,
		Timeout:        5 * time.Millisecond,
		ReentrantDepth: 2,
		DowngradeEvery: 5,
		CancelEvery:    7,
		CheckInterval:  time.Millisecond,
	}
}

// configYAML: представление Config в файле, длительности задаются строками ("1s").
type configYAML struct {
	Readers        *int    `yaml:"readers"`
	Writers        *int    `yaml:"writers"`
	Duration       *string `yaml:"duration"`
	HoldTime       *string `yaml:"hold_time"`
	Timeout        *string `yaml:"timeout"`
	ReentrantDepth *int    `yaml:"reentrant_depth"`
	DowngradeEvery *int    `yaml:"downgrade_every"`
	CancelEvery    *int    `yaml:"cancel_every"`
	CheckInterval  *string `yaml:"check_interval"`
}

// UnmarshalYAML overrides only the fields present in the document.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw configYAML
	if err := unmarshal(&raw); err != nil {
		return err
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&c.Readers, raw.Readers)
	setInt(&c.Writers, raw.Writers)
	setInt(&c.ReentrantDepth, raw.ReentrantDepth)
	setInt(&c.DowngradeEvery, raw.DowngradeEvery)
	setInt(&c.CancelEvery, raw.CancelEvery)

	for _, d := range []struct {
		name string
		dst  *time.Duration
		src  *string
	}{
		{"duration", &c.Duration, raw.Duration},
		{"hold_time", &c.HoldTime, raw.HoldTime},
		{"timeout", &c.Timeout, raw.Timeout},
		{"check_interval", &c.CheckInterval, raw.CheckInterval},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

// MarshalYAML writes durations as strings.
func (c Config) MarshalYAML() (interface{}, error) {
	duration := c.Duration.String()
	hold := c.HoldTime.String()
	timeout := c.Timeout.String()
	check := c.CheckInterval.String()
	return configYAML{
		Readers:        &c.Readers,
		Writers:        &c.Writers,
		Duration:       &duration,
		HoldTime:       &hold,
		Timeout:        &timeout,
		ReentrantDepth: &c.ReentrantDepth,
		DowngradeEvery: &c.DowngradeEvery,
		CancelEvery:    &c.CancelEvery,
		CheckInterval:  &check,
	}, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.Readers < 0 || c.Writers < 0:
		return errors.New("worker counts must not be negative")
	case c.Readers+c.Writers == 0:
		return errors.New("at least one worker is required")
	case c.Duration <= 0:
		return errors.New("duration must be positive")
	case c.HoldTime < 0:
		return errors.New("hold_time must not be negative")
	case c.Timeout <= 0:
		return errors.New("timeout must be positive")
	case c.ReentrantDepth < 1:
		return errors.New("reentrant_depth must be at least 1")
	case c.DowngradeEvery < 0 || c.CancelEvery < 0:
		return errors.New("downgrade_every and cancel_every must not be negative")
	case c.CheckInterval <= 0:
		return errors.New("check_interval must be positive")
	}
	return nil
}

// LoadConfig reads a YAML workload on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	// пустой файл: конфигурация по умолчанию
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
