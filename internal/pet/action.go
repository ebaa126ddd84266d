// Tagged interaction variants. Agents hand the engine an Action value
// and Apply routes it through a single switch, so there is no lookup of
// interaction methods by name anywhere in the system.
package pet

// ActionKind enumerates the interaction variants the engine accepts.
type ActionKind uint8

const (
	ActionNone ActionKind = iota // let time pass
	ActionFeed
	ActionPlay
	ActionRest
	ActionClean
)

// Action is one interaction with its magnitude. Amount is ignored for
// ActionNone.
type Action struct {
	Kind   ActionKind
	Amount int
}

// Apply dispatches an action to the matching interaction. ActionNone
// still ticks: choosing to do nothing does not stop time.
func (p *Pet) Apply(a Action) {
	switch a.Kind {
	case ActionFeed:
		p.Feed(a.Amount)
	case ActionPlay:
		p.Play(a.Amount)
	case ActionRest:
		p.Rest(a.Amount)
	case ActionClean:
		p.Clean(a.Amount)
	default:
		p.Tick()
	}
}

// Method returns the engine-level interaction name for the kind.
func (k ActionKind) Method() string {
	switch k {
	case ActionFeed:
		return "feed"
	case ActionPlay:
		return "play"
	case ActionRest:
		return "rest"
	case ActionClean:
		return "clean"
	default:
		return "do_nothing"
	}
}
