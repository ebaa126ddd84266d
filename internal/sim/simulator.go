package sim

import (
	"log/slog"
	"time"

	"github.com/talgya/mini-pet/internal/pet"
)

// DefaultStepInterval is the simulated time that passes per step.
// Fifteen sim-minutes makes decay bite within a few hundred steps
// without making a single unattended step lethal.
const DefaultStepInterval = 15 * time.Minute

// Simulator runs creature episodes on a stepped simulated clock. All
// randomness comes from the agent; given a deterministic agent the need
// trajectory is fully reproducible.
type Simulator struct {
	Rates        pet.DecayRates
	StepInterval time.Duration
	Start        time.Time // base sim time for every episode
}

// NewSimulator returns a simulator with default rates and step size.
func NewSimulator() *Simulator {
	return &Simulator{
		Rates:        pet.DefaultDecayRates(),
		StepInterval: DefaultStepInterval,
		Start:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// simClock is a manually stepped clock shared with the episode's pet.
type simClock struct {
	now time.Time
}

func (c *simClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// RunEpisode drives one fresh creature with the agent for up to maxSteps
// steps, returning the ordered transition records. The episode ends
// early when the creature dies.
func (s *Simulator) RunEpisode(agent Agent, name string, maxSteps int) []Transition {
	clock := &simClock{now: s.Start}
	p := pet.NewWithClock(name, s.Rates, func() time.Time { return clock.now })
	episodeID := p.State.ID.String()

	records := make([]Transition, 0, maxSteps)

	for step := 0; step < maxSteps; step++ {
		if !p.State.Alive {
			break
		}

		before := p.Snapshot()
		action := agent.ChooseAction(&before)

		// Time passes whether or not the agent acted.
		clock.advance(s.StepInterval)
		if action != nil {
			p.Apply(*action)
		} else {
			p.Tick()
		}

		after := p.Snapshot()
		reward := Reward(before.Needs, after.Needs, action, after.Alive, before.Alive)
		done := !after.Alive

		rec := Transition{
			Step:      step,
			State:     before,
			Reward:    reward,
			NextState: after,
			Done:      done,
			EpisodeID: episodeID,
			Timestamp: clock.now,
		}
		if action != nil {
			n := ActionName(*action)
			rec.Action = &n
			if action.Kind != pet.ActionNone {
				rec.Params = &ActionParams{Amount: action.Amount}
			}
		}
		records = append(records, rec)

		if done {
			slog.Debug("creature reached terminal state", "name", name, "step", step)
			break
		}
	}

	return records
}
