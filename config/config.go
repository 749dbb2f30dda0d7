// Package config loads runtime configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Vec is a 2D config value.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Size is a width/height config value.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Systems toggles optional pipeline stages. Movement intent and collision
// rule dispatch are always present and have no toggle.
type Systems struct {
	AI        bool `yaml:"ai" env:"EMBERLINE_SYSTEM_AI"`
	Camera    bool `yaml:"camera" env:"EMBERLINE_SYSTEM_CAMERA"`
	Particles bool `yaml:"particles" env:"EMBERLINE_SYSTEM_PARTICLES"`
	Animation bool `yaml:"animation" env:"EMBERLINE_SYSTEM_ANIMATION"`
}

// Config is the runtime configuration, resolved once at startup.
type Config struct {
	WorldCapacity    int     `yaml:"worldCapacity" env:"EMBERLINE_WORLD_CAPACITY"`
	ParticleCapacity int     `yaml:"particleCapacity" env:"EMBERLINE_PARTICLE_CAPACITY"`
	Gravity          Vec     `yaml:"gravity"`
	WorldBounds      Size    `yaml:"worldBounds"`
	Systems          Systems `yaml:"systems"`
	RandomSeed       int64   `yaml:"randomSeed" env:"EMBERLINE_RANDOM_SEED"`
}

// Default returns the configuration used when no file or environment
// overrides are present: every subsystem on, 4096 entities, 1000 particles,
// platformer-style downward gravity.
func Default() Config {
	return Config{
		WorldCapacity:    4096,
		ParticleCapacity: 1000,
		Gravity:          Vec{X: 0, Y: 900},
		WorldBounds:      Size{Width: 800, Height: 600},
		Systems: Systems{
			AI:        true,
			Camera:    true,
			Particles: true,
			Animation: true,
		},
	}
}

// Load resolves configuration: defaults, then the YAML file at path (skipped
// when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WorldCapacity <= 1 {
		return fmt.Errorf("config: worldCapacity %d too small", c.WorldCapacity)
	}
	if c.ParticleCapacity <= 0 {
		return fmt.Errorf("config: particleCapacity %d must be positive", c.ParticleCapacity)
	}
	return nil
}
