package rl

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/talgya/mini-pet/internal/pet"
	"github.com/talgya/mini-pet/internal/sim"
)

// Policy adapts a trained QAgent to the simulator's Agent interface in
// pure-exploitation mode: no exploration draw ever happens, so the
// effective ε is zero.
type Policy struct {
	Agent *QAgent
}

// ChooseAction implements sim.Agent. The catalog's explicit do_nothing
// is returned as a non-nil no-op so evaluation logs record the choice.
func (p *Policy) ChooseAction(st *pet.State) *pet.Action {
	if !st.Alive {
		return nil
	}
	state, err := StateIndex(st.Needs)
	if err != nil {
		slog.Warn("evaluation state not discretizable", "error", err)
		return nil
	}
	a := sim.Catalog[p.Agent.ChooseAction(state, false)].Action
	return &a
}

// EvalResult aggregates policy performance over fresh episodes.
type EvalResult struct {
	Episodes     int
	MeanSteps    float64
	MeanReward   float64 // mean total episode reward
	SurvivalRate float64 // fraction surviving to the step cap
	ActionCounts map[string]int
}

// Evaluate runs the trained policy against fresh simulated episodes and
// aggregates survival and reward statistics. Zero-step episodes count
// as non-survival with zero reward.
func Evaluate(agent *QAgent, s *sim.Simulator, episodes, maxSteps int) EvalResult {
	res := EvalResult{
		Episodes:     episodes,
		ActionCounts: make(map[string]int),
	}

	policy := &Policy{Agent: agent}
	steps := make([]float64, 0, episodes)
	rewards := make([]float64, 0, episodes)
	survived := 0

	for i := 0; i < episodes; i++ {
		records := s.RunEpisode(policy, fmt.Sprintf("eval-%d", i+1), maxSteps)

		total := 0.0
		for _, rec := range records {
			total += rec.Reward
			if rec.Action != nil {
				res.ActionCounts[*rec.Action]++
			}
		}
		steps = append(steps, float64(len(records)))
		rewards = append(rewards, total)

		if len(records) > 0 && !records[len(records)-1].Done {
			survived++
		}
	}

	if episodes > 0 {
		res.MeanSteps = stat.Mean(steps, nil)
		res.MeanReward = stat.Mean(rewards, nil)
		res.SurvivalRate = float64(survived) / float64(episodes)
	}
	return res
}
