package rl

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// checkpoint is the on-disk Q-table artifact: the flat value array plus
// the shape it was trained under.
type checkpoint struct {
	States  int
	Actions int
	Values  []float64
}

// Save writes the Q-table to path, creating parent directories as
// needed.
func (q *QAgent) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	defer f.Close()

	ck := checkpoint{States: q.states, Actions: q.actions, Values: q.table}
	if err := gob.NewEncoder(f).Encode(&ck); err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	return nil
}

// Load replaces the table with a saved checkpoint. A missing file,
// unreadable artifact, or shape mismatch is non-fatal: the table is
// reset to zeros and training proceeds fresh. Returns true when the
// checkpoint was actually restored.
func (q *QAgent) Load(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("q-table checkpoint unreadable, starting fresh", "path", path, "error", err)
		}
		q.zero()
		return false
	}
	defer f.Close()

	var ck checkpoint
	if err := gob.NewDecoder(f).Decode(&ck); err != nil {
		slog.Warn("q-table checkpoint corrupt, starting fresh", "path", path, "error", err)
		q.zero()
		return false
	}

	if ck.States != q.states || ck.Actions != q.actions || len(ck.Values) != q.states*q.actions {
		slog.Warn("q-table shape mismatch, starting fresh",
			"path", path,
			"loaded_states", ck.States,
			"loaded_actions", ck.Actions,
			"want_states", q.states,
			"want_actions", q.actions,
		)
		q.zero()
		return false
	}

	q.table = ck.Values
	slog.Info("q-table checkpoint restored", "path", path, "states", ck.States, "actions", ck.Actions)
	return true
}

func (q *QAgent) zero() {
	q.table = make([]float64, q.states*q.actions)
}
