// Package pet implements the need-decay engine: a creature whose needs
// drift over time and respond to discrete interactions.
package pet

import (
	"time"

	"github.com/google/uuid"
)

// Needs tracks the four bounded need levels. All values stay in [0,100]
// after every mutation. Hunger rises over time; the rest fall.
type Needs struct {
	Hunger      int `json:"hunger" db:"hunger"`
	Happiness   int `json:"happiness" db:"happiness"`
	Energy      int `json:"energy" db:"energy"`
	Cleanliness int `json:"cleanliness" db:"cleanliness"`
}

// DefaultNeeds returns the starting need levels for a new creature.
func DefaultNeeds() Needs {
	return Needs{Hunger: 50, Happiness: 50, Energy: 100, Cleanliness: 70}
}

// State is the externally visible creature record. Snapshots handed out
// of the engine are independent copies; Needs has no reference fields,
// so a value copy is a deep copy.
type State struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"last_updated_at"`
	Needs     Needs     `json:"needs"`
	Alive     bool      `json:"is_alive"`
	AgeDays   int       `json:"age_days"`
}

// DecayRates are the per-hour drift rates applied by Tick.
type DecayRates struct {
	HungerPerHour      float64 `yaml:"hunger_per_hour"`
	HappinessPerHour   float64 `yaml:"happiness_per_hour"`
	EnergyPerHour      float64 `yaml:"energy_per_hour"`
	CleanlinessPerHour float64 `yaml:"cleanliness_per_hour"`
}

// DefaultDecayRates returns the tuned baseline rates.
func DefaultDecayRates() DecayRates {
	return DecayRates{
		HungerPerHour:      10,
		HappinessPerHour:   5,
		EnergyPerHour:      8,
		CleanlinessPerHour: 3,
	}
}

// Clock supplies the current time. Injected so simulations and tests can
// freeze or step time deterministically.
type Clock func() time.Time

// decay-carry slots, one per need.
const (
	carryHunger = iota
	carryHappiness
	carryEnergy
	carryCleanliness
	numCarries
)

// Pet owns a State and advances it through time. A Pet is not safe for
// concurrent use; each episode or request handler drives exactly one.
type Pet struct {
	State State

	rates    DecayRates
	now      Clock
	lastTick time.Time

	// Fractional decay accumulated since the last integer step was
	// applied. Carrying remainders means short ticks never lose drift.
	carry    [numCarries]float64
	ageCarry float64 // fractional days toward the next age increment
}

// New creates a living creature with default needs on the wall clock.
func New(name string) *Pet {
	return NewWithClock(name, DefaultDecayRates(), time.Now)
}

// NewWithClock creates a creature with explicit decay rates and clock.
func NewWithClock(name string, rates DecayRates, now Clock) *Pet {
	t := now()
	return &Pet{
		State: State{
			ID:        uuid.New(),
			Name:      name,
			CreatedAt: t,
			UpdatedAt: t,
			Needs:     DefaultNeeds(),
			Alive:     true,
		},
		rates:    rates,
		now:      now,
		lastTick: t,
	}
}

// Restore rebuilds a Pet around a persisted State. The decay baseline is
// the stored UpdatedAt, so time elapsed while the record sat in storage
// is applied on the next Tick.
func Restore(st State, rates DecayRates, now Clock) *Pet {
	return &Pet{
		State:    st,
		rates:    rates,
		now:      now,
		lastTick: st.UpdatedAt,
	}
}

// Snapshot returns an independent copy of the current state.
func (p *Pet) Snapshot() State {
	return p.State
}

// Tick advances needs by the time elapsed since the last tick. A tick on
// a dead creature is a no-op; death, once set, is permanent.
func (p *Pet) Tick() {
	if !p.State.Alive {
		return
	}

	now := p.now()
	hours := now.Sub(p.lastTick).Hours()
	if hours < 0 {
		hours = 0 // clock moved backwards; treat as no elapsed time
	}

	n := &p.State.Needs
	n.Hunger = clamp(n.Hunger + p.drift(carryHunger, p.rates.HungerPerHour*hours))
	n.Happiness = clamp(n.Happiness - p.drift(carryHappiness, p.rates.HappinessPerHour*hours))
	n.Energy = clamp(n.Energy - p.drift(carryEnergy, p.rates.EnergyPerHour*hours))
	n.Cleanliness = clamp(n.Cleanliness - p.drift(carryCleanliness, p.rates.CleanlinessPerHour*hours))

	p.ageCarry += hours / 24
	for p.ageCarry >= 1 {
		p.State.AgeDays++
		p.ageCarry--
	}

	if n.Hunger >= 100 || n.Energy <= 0 || n.Happiness <= 0 || n.Cleanliness <= 0 {
		p.State.Alive = false
	}

	p.lastTick = now
	p.State.UpdatedAt = now
}

// drift converts a fractional amount of decay into an integer delta,
// carrying the remainder to the next tick.
func (p *Pet) drift(slot int, amount float64) int {
	raw := amount + p.carry[slot]
	d := int(raw)
	p.carry[slot] = raw - float64(d)
	return d
}

// Feed lowers hunger and lifts happiness a little, then ticks.
func (p *Pet) Feed(amount int) {
	if !p.State.Alive {
		return
	}
	p.State.Needs.Hunger = clamp(p.State.Needs.Hunger - amount)
	p.State.Needs.Happiness = clamp(p.State.Needs.Happiness + amount/5)
	p.Tick()
}

// Play lifts happiness at the cost of energy, then ticks.
func (p *Pet) Play(minutes int) {
	if !p.State.Alive {
		return
	}
	p.State.Needs.Happiness = clamp(p.State.Needs.Happiness + minutes)
	p.State.Needs.Energy = clamp(p.State.Needs.Energy - minutes/2)
	p.Tick()
}

// Rest restores energy and builds a little appetite, then ticks.
func (p *Pet) Rest(duration int) {
	if !p.State.Alive {
		return
	}
	p.State.Needs.Energy = clamp(p.State.Needs.Energy + duration)
	p.State.Needs.Hunger = clamp(p.State.Needs.Hunger + duration/10)
	p.Tick()
}

// Clean restores cleanliness, then ticks.
func (p *Pet) Clean(amount int) {
	if !p.State.Alive {
		return
	}
	p.State.Needs.Cleanliness = clamp(p.State.Needs.Cleanliness + amount)
	p.Tick()
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
