// Package event defines economic events - parameter shocks the player
// does not choose - and their per-turn trigger evaluation.
//
// DETERMINISM:
// Events are evaluated once per turn, in declaration order of the
// loaded definition set. Probability-gated events consume exactly one
// roll from the game RNG per evaluation, whether or not they fire and
// whether or not the per-turn cap was already reached, so the RNG
// stream - and therefore the whole run - depends only on the seed.
// When more events are eligible than the cap allows, the earliest
// declared win; the rest are dropped for this turn.
package event

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/roach88/statecraft/internal/deck"
	"github.com/roach88/statecraft/internal/econ"
)

// DefaultMaxPerTurn caps how many events can activate in one turn.
const DefaultMaxPerTurn = 2

// Trigger is a condition over the latest snapshot: Var Op Threshold.
type Trigger struct {
	Var       string  `json:"var"`
	Op        string  `json:"op"` // one of ">=", "<=", ">", "<"
	Threshold float64 `json:"threshold"`
}

// Eval checks the trigger against a snapshot.
func (t Trigger) Eval(s *econ.Snapshot) (bool, error) {
	v, err := s.Get(t.Var)
	if err != nil {
		return false, fmt.Errorf("event trigger: %w", err)
	}
	switch t.Op {
	case ">=":
		return v >= t.Threshold, nil
	case "<=":
		return v <= t.Threshold, nil
	case ">":
		return v > t.Threshold, nil
	case "<":
		return v < t.Threshold, nil
	}
	return false, fmt.Errorf("event trigger: unknown operator %q", t.Op)
}

// Event is a parameter shock with the same effect shape as a card,
// triggered by the model state or by chance rather than by the player.
type Event struct {
	Name     string        `json:"name"`
	Category string        `json:"category"` // external, domestic, labor, political, natural
	Effects  []deck.Effect `json:"effects"`
	Desc     string        `json:"desc"`

	// Trigger, when set, must hold on the latest snapshot for the
	// event to be eligible.
	Trigger *Trigger `json:"trigger,omitempty"`

	// Probability, when positive, gates eligibility on a seeded dice
	// roll (roll < Probability fires). Combined with Trigger, both
	// must pass.
	Probability float64 `json:"probability,omitempty"`

	// Duration is how many turns the effect stays active once fired.
	// Zero means permanent for the rest of the game.
	Duration int `json:"duration,omitempty"`
}

// Pool is the fixed set of event definitions for a game, in
// declaration order.
type Pool struct {
	events     []Event
	maxPerTurn int
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithMaxPerTurn overrides the per-turn activation cap.
func WithMaxPerTurn(n int) PoolOption {
	return func(p *Pool) { p.maxPerTurn = n }
}

// NewPool builds a pool. The event slice is copied; declaration order
// never changes after construction.
func NewPool(events []Event, opts ...PoolOption) *Pool {
	p := &Pool{
		events:     make([]Event, len(events)),
		maxPerTurn: DefaultMaxPerTurn,
	}
	copy(p.events, events)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Events returns the definitions in declaration order.
func (p *Pool) Events() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Evaluate rolls and checks every event against the latest snapshot
// and returns the ones that activate this turn, capped and in
// declaration order.
func (p *Pool) Evaluate(latest *econ.Snapshot, rng *rand.Rand) ([]Event, error) {
	var fired []Event
	for _, ev := range p.events {
		eligible := true

		if ev.Probability > 0 {
			// Always consume the roll to keep the RNG stream aligned
			// across replays, even when the cap is already reached.
			roll := rng.Float64()
			eligible = roll < ev.Probability
		}

		if eligible && ev.Trigger != nil {
			ok, err := ev.Trigger.Eval(latest)
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", ev.Name, err)
			}
			eligible = ok
		}

		if ev.Probability == 0 && ev.Trigger == nil {
			// No gate at all would mean firing every turn. Validation
			// rejects such definitions; skip them here as well.
			eligible = false
		}

		if eligible && len(fired) < p.maxPerTurn {
			slog.Debug("event fired", "event", ev.Name, "period", latest.Period)
			fired = append(fired, ev)
		}
	}
	return fired, nil
}
