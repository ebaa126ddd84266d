package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/talgya/mini-pet/internal/pet"
)

// ActionParams records the magnitude the applied action carried.
type ActionParams struct {
	Amount int `json:"amount"`
}

// Transition is one logged simulation step. Records are append-only:
// written once by the simulator, never mutated.
type Transition struct {
	Step      int           `json:"step"`
	State     pet.State     `json:"state"`
	Action    *string       `json:"action"`
	Params    *ActionParams `json:"action_params"`
	Reward    float64       `json:"reward"`
	NextState pet.State     `json:"next_state"`
	Done      bool          `json:"is_done"`
	EpisodeID string        `json:"episode_id"`
	Timestamp time.Time     `json:"timestamp"`
}

// WriteTransitions appends records to w as newline-delimited JSON.
func WriteTransitions(w io.Writer, records []Transition) error {
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("encode transition %d: %w", i, err)
		}
	}
	return nil
}

// ReadTransitions parses a newline-delimited transition log. Lines that
// fail to decode are skipped with a warning rather than aborting the
// whole load; a partially corrupt log is still usable training data.
func ReadTransitions(r io.Reader) ([]Transition, error) {
	var records []Transition

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var t Transition
		if err := json.Unmarshal(sc.Bytes(), &t); err != nil {
			slog.Warn("skipping malformed transition record", "line", line, "error", err)
			continue
		}
		records = append(records, t)
	}
	if err := sc.Err(); err != nil {
		return records, fmt.Errorf("read transition log: %w", err)
	}
	return records, nil
}
