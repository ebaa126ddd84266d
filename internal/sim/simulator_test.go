package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/talgya/mini-pet/internal/pet"
)

func testSimulator() *Simulator {
	s := NewSimulator()
	s.StepInterval = 15 * time.Minute
	return s
}

// sameTrajectory compares two episode runs field by field, ignoring the
// per-run creature identity baked into the snapshots.
func sameTrajectory(t *testing.T, a, b []Transition) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("episode lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Step != y.Step || x.Done != y.Done || x.Reward != y.Reward {
			t.Fatalf("step %d: records differ: %+v vs %+v", i, x, y)
		}
		if (x.Action == nil) != (y.Action == nil) {
			t.Fatalf("step %d: action presence differs", i)
		}
		if x.Action != nil && *x.Action != *y.Action {
			t.Fatalf("step %d: action %q vs %q", i, *x.Action, *y.Action)
		}
		if (x.Params == nil) != (y.Params == nil) {
			t.Fatalf("step %d: params presence differs", i)
		}
		if x.Params != nil && *x.Params != *y.Params {
			t.Fatalf("step %d: params %+v vs %+v", i, x.Params, y.Params)
		}
		if x.State.Needs != y.State.Needs || x.NextState.Needs != y.NextState.Needs {
			t.Fatalf("step %d: need trajectories diverge", i)
		}
		if !x.Timestamp.Equal(y.Timestamp) {
			t.Fatalf("step %d: timestamps %v vs %v", i, x.Timestamp, y.Timestamp)
		}
	}
}

func TestRandomAgentEpisodeIsDeterministicGivenSeed(t *testing.T) {
	s := testSimulator()

	a := s.RunEpisode(NewRandom(99), "det", 200)
	b := s.RunEpisode(NewRandom(99), "det", 200)

	sameTrajectory(t, a, b)
}

func TestNurturingAgentKeepsCreatureAlive(t *testing.T) {
	s := testSimulator()

	const (
		seeds    = 10
		maxSteps = 500
	)
	survived := 0
	for seed := int64(0); seed < seeds; seed++ {
		records := s.RunEpisode(NewNurturing(seed), "guarded", maxSteps)
		if len(records) == maxSteps && !records[len(records)-1].Done {
			survived++
		}
	}

	if survived < 9 {
		t.Fatalf("nurturing agent survived %d/%d episodes, want >= 9", survived, seeds)
	}
}

func TestEpisodeStopsAtDeathOrCap(t *testing.T) {
	s := testSimulator()

	records := s.RunEpisode(NewRandom(7), "capped", 300)
	if len(records) == 0 {
		t.Fatal("expected at least one transition")
	}
	if len(records) > 300 {
		t.Fatalf("episode ran %d steps past the cap", len(records))
	}

	last := records[len(records)-1]
	if len(records) < 300 && !last.Done {
		t.Fatal("episode ended early without a terminal transition")
	}
	// No transitions may follow a terminal one.
	for i, rec := range records[:len(records)-1] {
		if rec.Done {
			t.Fatalf("terminal transition at step %d is not last", i)
		}
	}
}

func TestEpisodeStepsAreOrderedAndTagged(t *testing.T) {
	s := testSimulator()

	records := s.RunEpisode(NewNurturing(3), "tagged", 50)
	for i, rec := range records {
		if rec.Step != i {
			t.Fatalf("record %d has step %d", i, rec.Step)
		}
		if rec.EpisodeID == "" || rec.EpisodeID != records[0].EpisodeID {
			t.Fatalf("record %d has episode id %q", i, rec.EpisodeID)
		}
	}
}

func TestTransitionLogRoundTrip(t *testing.T) {
	s := testSimulator()
	records := s.RunEpisode(NewRandom(11), "logged", 100)

	var buf bytes.Buffer
	if err := WriteTransitions(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadTransitions(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("round trip lost records: %d -> %d", len(records), len(got))
	}
	for i := range got {
		if got[i].Step != records[i].Step || got[i].Reward != records[i].Reward ||
			got[i].Done != records[i].Done || got[i].EpisodeID != records[i].EpisodeID {
			t.Fatalf("record %d mismatch after round trip", i)
		}
		if got[i].State.Needs != records[i].State.Needs {
			t.Fatalf("record %d state needs mismatch after round trip", i)
		}
	}
}

func TestReadTransitionsSkipsMalformedLines(t *testing.T) {
	s := testSimulator()
	records := s.RunEpisode(NewRandom(5), "corrupt", 20)

	var buf bytes.Buffer
	if err := WriteTransitions(&buf, records[:1]); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf.WriteString("{not json\n")
	if err := WriteTransitions(&buf, records[1:2]); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadTransitions(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2 valid ones", len(got))
	}
}

func TestCatalogNames(t *testing.T) {
	if n := NumActions(); n != 7 {
		t.Fatalf("catalog has %d actions, want 7", n)
	}

	idx, ok := ActionIndex(DoNothing)
	if !ok {
		t.Fatal("do_nothing missing from catalog")
	}
	if Catalog[idx].Name != DoNothing {
		t.Fatalf("do_nothing index resolves to %q", Catalog[idx].Name)
	}

	if _, ok := ActionIndex("feed"); ok {
		t.Fatal("bare interaction names must not be catalog entries")
	}
}

func TestActionNamePrefersCatalogMatch(t *testing.T) {
	// The nurturing agent's critical feed coincides with feed_medium.
	if got := ActionName(Catalog[1].Action); got != "feed_medium" {
		t.Fatalf("ActionName(feed 30) = %q, want feed_medium", got)
	}
	// Free-form magnitudes fall back to the interaction name.
	if got := ActionName(pet.Action{Kind: pet.ActionFeed, Amount: 20}); got != "feed" {
		t.Fatalf("ActionName(feed 20) = %q, want feed", got)
	}
	if got := ActionName(pet.Action{Kind: pet.ActionNone}); got != DoNothing {
		t.Fatalf("ActionName(none) = %q, want %q", got, DoNothing)
	}
}
