package sim

import (
	"math"

	"github.com/talgya/mini-pet/internal/pet"
)

// Reward shaping weights. Improvement bonuses are scaled by the size of
// the improvement; worsening penalties only apply once a need is already
// in its danger band.
const (
	hungerGain  = 0.2
	hungerLoss  = 0.3
	happyGain   = 0.3
	happyLoss   = 0.4
	energyGain  = 0.15
	energyLoss  = 0.2
	cleanGain   = 0.1
	cleanLoss   = 0.15
	deathReward = -200.0
)

// Reward scores one transition from prev to next needs. Pure function:
// no state, no side effects. The action is part of the transition but
// currently carries no shaping weight of its own.
func Reward(prev, next pet.Needs, action *pet.Action, aliveNow, wasAlive bool) float64 {
	if !aliveNow && wasAlive {
		return deathReward
	}
	if !aliveNow {
		return 0
	}

	r := 0.0

	// Hunger: lower is better.
	if next.Hunger < prev.Hunger {
		r += float64(prev.Hunger-next.Hunger) * hungerGain
	} else if next.Hunger > 85 && next.Hunger > prev.Hunger {
		r -= float64(next.Hunger-prev.Hunger) * hungerLoss
	}

	// Happiness: higher is better.
	if next.Happiness > prev.Happiness {
		r += float64(next.Happiness-prev.Happiness) * happyGain
	} else if next.Happiness < 15 && next.Happiness < prev.Happiness {
		r -= float64(prev.Happiness-next.Happiness) * happyLoss
	}

	// Energy: higher is better.
	if next.Energy > prev.Energy {
		r += float64(next.Energy-prev.Energy) * energyGain
	} else if next.Energy < 15 && next.Energy < prev.Energy {
		r -= float64(prev.Energy-next.Energy) * energyLoss
	}

	// Cleanliness: higher is better.
	if next.Cleanliness > prev.Cleanliness {
		r += float64(next.Cleanliness-prev.Cleanliness) * cleanGain
	} else if next.Cleanliness < 15 && next.Cleanliness < prev.Cleanliness {
		r -= float64(prev.Cleanliness-next.Cleanliness) * cleanLoss
	}

	// Standing penalties for sitting in a bad band, whichever way the
	// needs moved this step.
	if next.Hunger > 80 {
		r -= 0.5
	}
	if next.Happiness < 20 {
		r -= 1.0
	}
	if next.Energy < 20 {
		r -= 0.5
	}
	if next.Cleanliness < 20 {
		r -= 0.3
	}

	// Bonus for keeping everything in the healthy band at once.
	if next.Hunger < 50 && next.Happiness > 50 && next.Energy > 50 && next.Cleanliness > 50 {
		r += 1.0
	}

	return math.Round(r*100) / 100
}
