package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/pawsense/internal/domain/profile"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if PAWSENSE_CONFIG is set
//  3. env (prefix PAWSENSE_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PAWSENSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PAWSENSE_ADDR, PAWSENSE_QUEUE_SIZE, ...
	// Map env keys like PAWSENSE_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PAWSENSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "pawsense_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot start with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.FeedbackQueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.DedupeSize <= 0:
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	case c.ShardCount <= 0:
		return fmt.Errorf("%w: shard_count must be positive", ErrInvalidConfig)
	case c.HistoryCap <= 0:
		return fmt.Errorf("%w: history_cap must be positive", ErrInvalidConfig)
	case c.EvalIntervalMS <= 0:
		return fmt.Errorf("%w: eval_interval_ms must be positive", ErrInvalidConfig)
	case c.PhaseInitialSec < 0 || c.PhaseDeepeningSec < 0:
		return fmt.Errorf("%w: phase durations must not be negative", ErrInvalidConfig)
	}
	for _, p := range c.Profiles {
		if _, err := p.Profile(); err != nil {
			return err
		}
	}
	return nil
}

// DomainProfiles converts all configured profiles to domain records. Load
// has already validated them, so errors only occur on hand-built configs.
func (c *Config) DomainProfiles() ([]profile.BreedProfile, error) {
	if len(c.Profiles) == 0 {
		return nil, nil
	}
	out := make([]profile.BreedProfile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		dp, err := p.Profile()
		if err != nil {
			return nil, err
		}
		out = append(out, dp)
	}
	return out, nil
}
