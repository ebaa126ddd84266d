// Package config loads tunable settings from YAML over coded defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mini-pet/internal/pet"
)

// Config is the full tunable surface of the system.
type Config struct {
	Sim    SimConfig    `yaml:"sim"`
	RL     RLConfig     `yaml:"rl"`
	Server ServerConfig `yaml:"server"`
}

// SimConfig tunes episode generation.
type SimConfig struct {
	StepMinutes int            `yaml:"step_minutes"` // sim time per step
	MaxSteps    int            `yaml:"max_steps"`    // step cap per episode
	Episodes    int            `yaml:"episodes"`     // episodes per run
	Decay       pet.DecayRates `yaml:"decay"`
}

// RLConfig tunes offline training.
type RLConfig struct {
	Alpha           float64 `yaml:"alpha"`
	Gamma           float64 `yaml:"gamma"`
	Epsilon         float64 `yaml:"epsilon"`
	EpsilonMin      float64 `yaml:"epsilon_min"`
	EpsilonDecay    float64 `yaml:"epsilon_decay"`
	Epochs          int     `yaml:"epochs"`
	CheckpointEvery int     `yaml:"checkpoint_every"`
}

// ServerConfig tunes the HTTP service.
type ServerConfig struct {
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sim: SimConfig{
			StepMinutes: 15,
			MaxSteps:    500,
			Episodes:    10,
			Decay:       pet.DefaultDecayRates(),
		},
		RL: RLConfig{
			Alpha:           0.1,
			Gamma:           0.99,
			Epsilon:         1.0,
			EpsilonMin:      0.01,
			EpsilonDecay:    0.001,
			Epochs:          100,
			CheckpointEvery: 10,
		},
		Server: ServerConfig{
			Port:   8080,
			DBPath: "data/minipet.db",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that would wedge or corrupt a run.
func (c Config) Validate() error {
	if c.Sim.StepMinutes <= 0 {
		return fmt.Errorf("sim.step_minutes must be positive, got %d", c.Sim.StepMinutes)
	}
	if c.Sim.MaxSteps <= 0 {
		return fmt.Errorf("sim.max_steps must be positive, got %d", c.Sim.MaxSteps)
	}
	if c.Sim.Episodes <= 0 {
		return fmt.Errorf("sim.episodes must be positive, got %d", c.Sim.Episodes)
	}
	if c.RL.Alpha <= 0 || c.RL.Alpha > 1 {
		return fmt.Errorf("rl.alpha must be in (0,1], got %g", c.RL.Alpha)
	}
	if c.RL.Gamma < 0 || c.RL.Gamma > 1 {
		return fmt.Errorf("rl.gamma must be in [0,1], got %g", c.RL.Gamma)
	}
	if c.RL.Epsilon < 0 || c.RL.Epsilon > 1 {
		return fmt.Errorf("rl.epsilon must be in [0,1], got %g", c.RL.Epsilon)
	}
	if c.RL.EpsilonMin < 0 || c.RL.EpsilonMin > c.RL.Epsilon {
		return fmt.Errorf("rl.epsilon_min must be in [0, epsilon], got %g", c.RL.EpsilonMin)
	}
	if c.RL.Epochs <= 0 {
		return fmt.Errorf("rl.epochs must be positive, got %d", c.RL.Epochs)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
