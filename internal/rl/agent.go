package rl

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Hyperparameters configures a QAgent.
type Hyperparameters struct {
	Alpha        float64 // learning rate
	Gamma        float64 // discount factor
	Epsilon      float64 // starting exploration rate
	EpsilonMin   float64 // floor for decayed epsilon
	EpsilonDecay float64 // subtracted from epsilon once per epoch
}

// DefaultHyperparameters returns the tuned offline-training defaults.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Alpha:        0.1,
		Gamma:        0.99,
		Epsilon:      1.0,
		EpsilonMin:   0.01,
		EpsilonDecay: 0.001,
	}
}

// QAgent holds a dense state×action value table and an ε-greedy policy
// over it. Not safe for concurrent use; training applies updates in a
// single deterministic order.
type QAgent struct {
	states  int
	actions int
	table   []float64 // row-major, len == states*actions

	Alpha        float64
	Gamma        float64
	Epsilon      float64
	EpsilonMin   float64
	EpsilonDecay float64

	rng *rand.Rand
}

// NewQAgent creates a zero-initialized agent for the given state and
// action counts.
func NewQAgent(states, actions int, hp Hyperparameters, seed int64) *QAgent {
	return &QAgent{
		states:       states,
		actions:      actions,
		table:        make([]float64, states*actions),
		Alpha:        hp.Alpha,
		Gamma:        hp.Gamma,
		Epsilon:      hp.Epsilon,
		EpsilonMin:   hp.EpsilonMin,
		EpsilonDecay: hp.EpsilonDecay,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// States returns the state-space size the table was built for.
func (q *QAgent) States() int { return q.states }

// Actions returns the action-space cardinality.
func (q *QAgent) Actions() int { return q.actions }

// Q returns the value estimate for a state-action pair.
func (q *QAgent) Q(state, action int) float64 {
	return q.table[state*q.actions+action]
}

// row returns the action-value slice for one state.
func (q *QAgent) row(state int) []float64 {
	off := state * q.actions
	return q.table[off : off+q.actions]
}

// ChooseAction picks an action for the state. With explore set, a draw
// below ε returns a uniform random action; otherwise the maximum-value
// action wins, with ties broken uniformly among the tied maxima.
func (q *QAgent) ChooseAction(state int, explore bool) int {
	if explore && q.rng.Float64() < q.Epsilon {
		return q.rng.Intn(q.actions)
	}

	row := q.row(state)
	best := floats.Max(row)
	ties := make([]int, 0, q.actions)
	for a, v := range row {
		if v == best {
			ties = append(ties, a)
		}
	}
	return ties[q.rng.Intn(len(ties))]
}

// Update applies one Bellman step:
//
//	Q[s,a] += α·(r + γ·max_a' Q[s',a'] − Q[s,a])
//
// When done, the bootstrapped future term is zero regardless of the
// table's values at the terminal state.
func (q *QAgent) Update(state, action int, reward float64, next int, done bool) {
	futureMax := 0.0
	if !done {
		futureMax = floats.Max(q.row(next))
	}
	cur := q.Q(state, action)
	q.table[state*q.actions+action] = cur + q.Alpha*(reward+q.Gamma*futureMax-cur)
}

// DecayEpsilon lowers ε by one decay step, floored at the minimum.
// Called once per training epoch, not per transition.
func (q *QAgent) DecayEpsilon() {
	q.Epsilon -= q.EpsilonDecay
	if q.Epsilon < q.EpsilonMin {
		q.Epsilon = q.EpsilonMin
	}
}
