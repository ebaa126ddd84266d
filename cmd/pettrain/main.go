// Command pettrain trains the tabular Q-learning policy offline from a
// logged transition file and checkpoints the table.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mini-pet/internal/config"
	"github.com/talgya/mini-pet/internal/rl"
	"github.com/talgya/mini-pet/internal/sim"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "optional YAML config path")
		data    = flag.String("data", "", "transition log (JSONL) to train on")
		qtable  = flag.String("qtable", "models/q_table.gob", "checkpoint path (loaded if present)")
		resume  = flag.Bool("resume", true, "resume from an existing checkpoint")
		epochs  = flag.Int("epochs", 0, "training epochs (0 = config default)")
		seed    = flag.Int64("seed", 42, "seed for exploration tie-breaking")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *data == "" {
		slog.Error("-data is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if *epochs <= 0 {
		*epochs = cfg.RL.Epochs
	}

	f, err := os.Open(*data)
	if err != nil {
		slog.Error("open training data failed", "path", *data, "error", err)
		os.Exit(1)
	}
	records, err := sim.ReadTransitions(f)
	f.Close()
	if err != nil {
		slog.Error("read training data failed", "path", *data, "error", err)
		os.Exit(1)
	}
	slog.Info("training data loaded", "path", *data, "records", humanize.Comma(int64(len(records))))

	agent := rl.NewQAgent(rl.NumStates(), sim.NumActions(), rl.Hyperparameters{
		Alpha:        cfg.RL.Alpha,
		Gamma:        cfg.RL.Gamma,
		Epsilon:      cfg.RL.Epsilon,
		EpsilonMin:   cfg.RL.EpsilonMin,
		EpsilonDecay: cfg.RL.EpsilonDecay,
	}, *seed)

	if *resume {
		agent.Load(*qtable)
	}

	stats, err := rl.Train(agent, records, rl.TrainConfig{
		Epochs:          *epochs,
		CheckpointEvery: cfg.RL.CheckpointEvery,
		CheckpointPath:  *qtable,
	})
	if err != nil {
		slog.Error("training failed", "error", err)
		os.Exit(1)
	}

	slog.Info("training complete",
		"epochs", stats.Epochs,
		"episodes", stats.Episodes,
		"updates", humanize.Comma(int64(stats.Updates)),
		"skipped", stats.Skipped,
		"remapped", humanize.Comma(int64(stats.Remapped)),
		"mean_reward", fmt.Sprintf("%.3f", stats.MeanReward),
		"final_epsilon", fmt.Sprintf("%.3f", stats.FinalEpsilon),
		"qtable", *qtable,
	)
}
