package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want built-in defaults", cfg)
	}
}

func TestLoadOverlaysFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
sim:
  max_steps: 250
  decay:
    hunger_per_hour: 20
rl:
  epochs: 5
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Sim.MaxSteps != 250 {
		t.Errorf("sim.max_steps = %d, want 250", cfg.Sim.MaxSteps)
	}
	if cfg.Sim.Decay.HungerPerHour != 20 {
		t.Errorf("decay.hunger_per_hour = %g, want 20", cfg.Sim.Decay.HungerPerHour)
	}
	if cfg.RL.Epochs != 5 {
		t.Errorf("rl.epochs = %d, want 5", cfg.RL.Epochs)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Sim.StepMinutes != 15 {
		t.Errorf("sim.step_minutes = %d, want default 15", cfg.Sim.StepMinutes)
	}
	if cfg.RL.Gamma != 0.99 {
		t.Errorf("rl.gamma = %g, want default 0.99", cfg.RL.Gamma)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rl:\n  alpha: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "rl.alpha") {
		t.Fatalf("got %v, want rl.alpha validation error", err)
	}
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero step minutes", func(c *Config) { c.Sim.StepMinutes = 0 }, "sim.step_minutes"},
		{"negative max steps", func(c *Config) { c.Sim.MaxSteps = -1 }, "sim.max_steps"},
		{"zero episodes", func(c *Config) { c.Sim.Episodes = 0 }, "sim.episodes"},
		{"gamma above one", func(c *Config) { c.RL.Gamma = 1.2 }, "rl.gamma"},
		{"epsilon negative", func(c *Config) { c.RL.Epsilon = -0.1 }, "rl.epsilon"},
		{"epsilon min above epsilon", func(c *Config) { c.RL.Epsilon = 0.5; c.RL.EpsilonMin = 0.6 }, "rl.epsilon_min"},
		{"zero epochs", func(c *Config) { c.RL.Epochs = 0 }, "rl.epochs"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error mentioning %q", err, tc.want)
			}
		})
	}
}
