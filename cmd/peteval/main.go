// Command peteval runs a trained Q-table against fresh simulated
// episodes in pure-exploitation mode and reports aggregate statistics.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/talgya/mini-pet/internal/config"
	"github.com/talgya/mini-pet/internal/rl"
	"github.com/talgya/mini-pet/internal/sim"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "optional YAML config path")
		qtable   = flag.String("qtable", "models/q_table.gob", "trained checkpoint to evaluate")
		episodes = flag.Int("episodes", 20, "evaluation episodes")
		maxSteps = flag.Int("max-steps", 0, "step cap per episode (0 = config default)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if *maxSteps <= 0 {
		*maxSteps = cfg.Sim.MaxSteps
	}

	// Exploitation only: exploration never fires during evaluation, and
	// the tie-break seed is fixed so runs are comparable.
	hp := rl.DefaultHyperparameters()
	hp.Epsilon = 0
	hp.EpsilonMin = 0
	agent := rl.NewQAgent(rl.NumStates(), sim.NumActions(), hp, 1)
	if !agent.Load(*qtable) {
		slog.Error("no usable checkpoint; train one with pettrain first", "path", *qtable)
		os.Exit(1)
	}

	simulator := sim.NewSimulator()
	simulator.Rates = cfg.Sim.Decay
	simulator.StepInterval = time.Duration(cfg.Sim.StepMinutes) * time.Minute

	slog.Info("evaluation starting", "episodes", *episodes, "max_steps", *maxSteps, "qtable", *qtable)
	res := rl.Evaluate(agent, simulator, *episodes, *maxSteps)

	slog.Info("evaluation summary",
		"episodes", res.Episodes,
		"mean_steps", fmt.Sprintf("%.1f", res.MeanSteps),
		"mean_reward", fmt.Sprintf("%.2f", res.MeanReward),
		"survival_rate", fmt.Sprintf("%.0f%%", 100*res.SurvivalRate),
	)

	// Action distribution, most frequent first.
	names := make([]string, 0, len(res.ActionCounts))
	for name := range res.ActionCounts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if res.ActionCounts[names[i]] != res.ActionCounts[names[j]] {
			return res.ActionCounts[names[i]] > res.ActionCounts[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		slog.Info("action frequency", "action", name, "count", res.ActionCounts[name])
	}
}
