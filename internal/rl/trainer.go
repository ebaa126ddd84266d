package rl

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/talgya/mini-pet/internal/sim"
)

// TrainConfig controls an offline training run.
type TrainConfig struct {
	Epochs          int    // full passes over the grouped episodes
	CheckpointEvery int    // epochs between checkpoints; 0 disables periodic saves
	CheckpointPath  string // where to write the table; empty disables saving
}

// TrainStats summarizes a training run.
type TrainStats struct {
	Epochs       int
	Episodes     int
	Updates      int     // Bellman updates applied
	Skipped      int     // transitions dropped for invalid state data
	Remapped     int     // out-of-catalog actions remapped to do_nothing
	FinalEpsilon float64
	MeanReward   float64 // mean reward per update over the final epoch
}

// Train replays a flat transition log through the agent's Q-table.
// Records are grouped by episode (in first-seen log order) and sorted by
// step, then every episode is replayed in temporal order once per epoch.
// The resulting update order is deterministic, so training is
// reproducible for a given log and hyperparameters.
func Train(agent *QAgent, records []sim.Transition, cfg TrainConfig) (TrainStats, error) {
	stats := TrainStats{Epochs: cfg.Epochs, FinalEpsilon: agent.Epsilon}
	if len(records) == 0 {
		return stats, fmt.Errorf("no transitions to train on")
	}

	// Group by episode, keeping the order episodes first appear in the
	// log so replay order is stable across runs.
	byEpisode := make(map[string][]sim.Transition)
	var order []string
	for _, rec := range records {
		if _, seen := byEpisode[rec.EpisodeID]; !seen {
			order = append(order, rec.EpisodeID)
		}
		byEpisode[rec.EpisodeID] = append(byEpisode[rec.EpisodeID], rec)
	}
	for _, id := range order {
		eps := byEpisode[id]
		sort.SliceStable(eps, func(i, j int) bool { return eps[i].Step < eps[j].Step })
	}
	stats.Episodes = len(order)
	slog.Info("training data grouped", "transitions", len(records), "episodes", len(order))

	doNothing, _ := sim.ActionIndex(sim.DoNothing)

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		epochReward := 0.0
		epochUpdates := 0

		for _, id := range order {
			for _, rec := range byEpisode[id] {
				state, err := StateIndex(rec.State.Needs)
				if err != nil {
					slog.Warn("skipping transition: bad pre-state", "episode", id, "step", rec.Step, "error", err)
					stats.Skipped++
					continue
				}
				next, err := StateIndex(rec.NextState.Needs)
				if err != nil {
					slog.Warn("skipping transition: bad post-state", "episode", id, "step", rec.Step, "error", err)
					stats.Skipped++
					continue
				}

				action := doNothing
				if rec.Action != nil {
					if idx, ok := sim.ActionIndex(*rec.Action); ok {
						action = idx
					} else {
						// Scripted agents log free-form interaction
						// names; fold those into the explicit no-op.
						slog.Debug("remapping out-of-catalog action", "action", *rec.Action, "step", rec.Step)
						stats.Remapped++
					}
				}

				agent.Update(state, action, rec.Reward, next, rec.Done)
				epochReward += rec.Reward
				epochUpdates++
			}
		}

		agent.DecayEpsilon()
		stats.Updates += epochUpdates

		if epochUpdates > 0 {
			stats.MeanReward = epochReward / float64(epochUpdates)
		}
		slog.Info("epoch complete",
			"epoch", epoch,
			"of", cfg.Epochs,
			"updates", epochUpdates,
			"mean_reward", fmt.Sprintf("%.3f", stats.MeanReward),
			"epsilon", fmt.Sprintf("%.3f", agent.Epsilon),
		)

		if cfg.CheckpointPath != "" && cfg.CheckpointEvery > 0 && epoch%cfg.CheckpointEvery == 0 {
			if err := agent.Save(cfg.CheckpointPath); err != nil {
				return stats, fmt.Errorf("checkpoint epoch %d: %w", epoch, err)
			}
		}
	}

	stats.FinalEpsilon = agent.Epsilon

	if cfg.CheckpointPath != "" {
		if err := agent.Save(cfg.CheckpointPath); err != nil {
			return stats, fmt.Errorf("final checkpoint: %w", err)
		}
	}
	return stats, nil
}
