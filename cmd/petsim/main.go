// Command petsim generates synthetic caretaking episodes and writes the
// transition log consumed by the offline trainer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mini-pet/internal/config"
	"github.com/talgya/mini-pet/internal/sim"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "optional YAML config path")
		agentName = flag.String("agent", "nurturing", "scripted agent: nurturing or random")
		episodes  = flag.Int("episodes", 0, "episodes to simulate (0 = config default)")
		maxSteps  = flag.Int("max-steps", 0, "step cap per episode (0 = config default)")
		seed      = flag.Int64("seed", 42, "base seed for agent randomness")
		out       = flag.String("out", "", "output JSONL path (default data/raw/sim_<agent>_<ts>.jsonl)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if *episodes <= 0 {
		*episodes = cfg.Sim.Episodes
	}
	if *maxSteps <= 0 {
		*maxSteps = cfg.Sim.MaxSteps
	}

	path := *out
	if path == "" {
		path = filepath.Join("data", "raw",
			fmt.Sprintf("sim_%s_%s.jsonl", *agentName, time.Now().UTC().Format("20060102150405")))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("create output dir failed", "error", err)
		os.Exit(1)
	}

	simulator := sim.NewSimulator()
	simulator.Rates = cfg.Sim.Decay
	simulator.StepInterval = time.Duration(cfg.Sim.StepMinutes) * time.Minute

	f, err := os.Create(path)
	if err != nil {
		slog.Error("create output failed", "path", path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	slog.Info("simulation starting",
		"agent", *agentName,
		"episodes", *episodes,
		"max_steps", *maxSteps,
		"step_minutes", cfg.Sim.StepMinutes,
		"out", path,
	)

	totalRecords := 0
	survived := 0

	for i := 0; i < *episodes; i++ {
		var agent sim.Agent
		switch *agentName {
		case "nurturing":
			agent = sim.NewNurturing(*seed + int64(i))
		case "random":
			agent = sim.NewRandom(*seed + int64(i))
		default:
			slog.Error("unknown agent type", "agent", *agentName)
			os.Exit(1)
		}

		records := simulator.RunEpisode(agent, fmt.Sprintf("SimPet_%d", i+1), *maxSteps)
		if err := sim.WriteTransitions(f, records); err != nil {
			slog.Error("write episode failed", "episode", i+1, "error", err)
			os.Exit(1)
		}

		totalRecords += len(records)
		if len(records) > 0 && !records[len(records)-1].Done {
			survived++
		}
		slog.Info("episode finished", "episode", i+1, "steps", len(records),
			"survived", len(records) > 0 && !records[len(records)-1].Done)
	}

	slog.Info("simulation complete",
		"records", humanize.Comma(int64(totalRecords)),
		"episodes", *episodes,
		"survival_rate", fmt.Sprintf("%.0f%%", 100*float64(survived)/float64(*episodes)),
		"out", path,
	)
}
