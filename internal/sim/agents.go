// Scripted caretaker agents used to generate training episodes.
package sim

import (
	"math/rand"

	"github.com/talgya/mini-pet/internal/pet"
)

// Agent chooses an interaction for the current creature state. A nil
// return means no action this step; agents must return nil for a dead
// creature.
type Agent interface {
	ChooseAction(st *pet.State) *pet.Action
}

// Nurturing thresholds. Critical rules fire unconditionally in priority
// order; proactive rules fire probabilistically when a need is only
// moderately depleted.
const (
	criticalHunger      = 80
	criticalEnergy      = 20
	criticalHappiness   = 30
	criticalCleanliness = 30

	proactiveFeedProb  = 0.7
	proactivePlayProb  = 0.6
	proactiveCleanProb = 0.5
	proactiveRestProb  = 0.4
)

// Nurturing is a rule-based caretaker: fix whatever is critical first,
// otherwise sometimes tend to needs before they get bad.
type Nurturing struct {
	rng *rand.Rand
}

// NewNurturing creates a nurturing agent with its own seeded source.
func NewNurturing(seed int64) *Nurturing {
	return &Nurturing{rng: rand.New(rand.NewSource(seed))}
}

// ChooseAction implements Agent.
func (a *Nurturing) ChooseAction(st *pet.State) *pet.Action {
	if !st.Alive {
		return nil
	}
	n := st.Needs

	// Critical needs first, in priority order.
	if n.Hunger > criticalHunger {
		return &pet.Action{Kind: pet.ActionFeed, Amount: 30}
	}
	if n.Energy < criticalEnergy {
		return &pet.Action{Kind: pet.ActionRest, Amount: 60}
	}
	if n.Happiness < criticalHappiness {
		return &pet.Action{Kind: pet.ActionPlay, Amount: 25}
	}
	if n.Cleanliness < criticalCleanliness {
		return &pet.Action{Kind: pet.ActionClean, Amount: 50}
	}

	// Proactive care.
	if n.Hunger > 50 && a.rng.Float64() < proactiveFeedProb {
		return &pet.Action{Kind: pet.ActionFeed, Amount: 20}
	}
	if n.Happiness < 60 && a.rng.Float64() < proactivePlayProb {
		return &pet.Action{Kind: pet.ActionPlay, Amount: 15}
	}
	if n.Cleanliness < 70 && a.rng.Float64() < proactiveCleanProb {
		return &pet.Action{Kind: pet.ActionClean, Amount: 30}
	}
	// Only rest proactively when the creature is happy enough to spare
	// the idle time.
	if n.Energy < 50 && n.Happiness > 70 && a.rng.Float64() < proactiveRestProb {
		return &pet.Action{Kind: pet.ActionRest, Amount: 40}
	}

	return nil
}

// Random is a careless caretaker: does nothing 30% of the time,
// otherwise picks a uniform interaction with a randomized magnitude.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent with its own seeded source.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// ChooseAction implements Agent.
func (a *Random) ChooseAction(st *pet.State) *pet.Action {
	if !st.Alive || a.rng.Float64() < 0.3 {
		return nil
	}

	switch a.rng.Intn(4) {
	case 0:
		return &pet.Action{Kind: pet.ActionFeed, Amount: a.between(10, 30)}
	case 1:
		return &pet.Action{Kind: pet.ActionPlay, Amount: a.between(10, 25)}
	case 2:
		return &pet.Action{Kind: pet.ActionRest, Amount: a.between(30, 70)}
	default:
		return &pet.Action{Kind: pet.ActionClean, Amount: a.between(20, 50)}
	}
}

// between returns a uniform int in [lo, hi].
func (a *Random) between(lo, hi int) int {
	return lo + a.rng.Intn(hi-lo+1)
}
