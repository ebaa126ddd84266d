// Package rl holds the tabular Q-learning stack: need-vector
// discretization, the value table with its ε-greedy policy, the offline
// trainer over logged episodes, and the policy evaluator.
package rl

import (
	"fmt"

	"github.com/talgya/mini-pet/internal/pet"
)

// Bin boundaries for each need. The combined state index is a mixed-radix
// encoding over these, so changing any boundary invalidates every
// previously trained Q-table.
var (
	HungerBins      = []int{0, 25, 50, 75, 100}
	HappinessBins   = []int{0, 25, 50, 75, 100}
	EnergyBins      = []int{0, 25, 50, 75, 100}
	CleanlinessBins = []int{0, 33, 66, 100}
)

// Per-need bin counts and the total discrete state count.
var (
	numHungerBins      = len(HungerBins) - 1
	numHappinessBins   = len(HappinessBins) - 1
	numEnergyBins      = len(EnergyBins) - 1
	numCleanlinessBins = len(CleanlinessBins) - 1
)

// NumStates is the size of the discrete state space.
func NumStates() int {
	return numHungerBins * numHappinessBins * numEnergyBins * numCleanlinessBins
}

// Discretize maps a value to the zero-based bin index i such that
// bounds[i] <= v < bounds[i+1]. Values past either end clamp to the
// nearest bin; callers that care about range violations check before
// calling. Never panics.
func Discretize(v int, bounds []int) int {
	if v < bounds[0] {
		return 0
	}
	for i := 0; i < len(bounds)-1; i++ {
		if v < bounds[i+1] {
			return i
		}
	}
	return len(bounds) - 2
}

// StateIndex encodes a need vector as a single discrete state index,
// row-major over (hunger, happiness, energy, cleanliness). A need
// outside [0,100] means the decay engine's clamp invariant was broken
// upstream; that is reported as an error rather than silently clamped,
// so corrupted logs surface instead of training on garbage.
func StateIndex(n pet.Needs) (int, error) {
	for _, v := range [...]int{n.Hunger, n.Happiness, n.Energy, n.Cleanliness} {
		if v < 0 || v > 100 {
			return 0, fmt.Errorf("need value %d outside [0,100]: %+v", v, n)
		}
	}

	h := Discretize(n.Hunger, HungerBins)
	p := Discretize(n.Happiness, HappinessBins)
	e := Discretize(n.Energy, EnergyBins)
	c := Discretize(n.Cleanliness, CleanlinessBins)

	idx := ((h*numHappinessBins+p)*numEnergyBins+e)*numCleanlinessBins + c
	return idx, nil
}
