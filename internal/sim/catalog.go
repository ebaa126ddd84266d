// Package sim drives creature episodes: the fixed action catalog,
// scripted caretaker agents, the step loop, and the reward signal.
package sim

import (
	"github.com/talgya/mini-pet/internal/pet"
)

// CatalogEntry names one abstract action and the interaction it implies.
type CatalogEntry struct {
	Name   string
	Action pet.Action
}

// Catalog is the fixed action menu shared by training and evaluation.
// Order matters: the position of an entry is its action index in the
// Q-table, so any change here invalidates previously trained tables.
var Catalog = []CatalogEntry{
	{"feed_small", pet.Action{Kind: pet.ActionFeed, Amount: 15}},
	{"feed_medium", pet.Action{Kind: pet.ActionFeed, Amount: 30}},
	{"play_short", pet.Action{Kind: pet.ActionPlay, Amount: 15}},
	{"play_long", pet.Action{Kind: pet.ActionPlay, Amount: 30}},
	{"rest_long", pet.Action{Kind: pet.ActionRest, Amount: 50}},
	{"clean_up", pet.Action{Kind: pet.ActionClean, Amount: 40}},
	{DoNothing, pet.Action{Kind: pet.ActionNone}},
}

// DoNothing is the explicit no-effect catalog action. Time still passes.
const DoNothing = "do_nothing"

// NumActions is the action-space cardinality.
func NumActions() int { return len(Catalog) }

var actionIndex = func() map[string]int {
	m := make(map[string]int, len(Catalog))
	for i, e := range Catalog {
		m[e.Name] = i
	}
	return m
}()

// ActionIndex resolves a catalog name to its action index.
func ActionIndex(name string) (int, bool) {
	i, ok := actionIndex[name]
	return i, ok
}

// ActionName returns the record name for an applied action: the catalog
// name when the action matches an entry exactly, otherwise the engine's
// interaction name. Scripted agents pick free-form magnitudes, so their
// choices usually fall back to the interaction name.
func ActionName(a pet.Action) string {
	for _, e := range Catalog {
		if e.Action == a {
			return e.Name
		}
	}
	return a.Kind.Method()
}
