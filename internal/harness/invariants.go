package harness

import (
	"fmt"

	"github.com/roach88/statecraft/internal/game"
)

// CheckInvariants verifies the structural guarantees every finished
// game must uphold, regardless of what the scenario asserts:
//
//   - the history is contiguous from period 0 and its length equals
//     the final period plus one
//   - solved snapshots carry solve metadata, the initial one does not
//   - the deck conserves cards: pile, hand, and discard together
//     always hold exactly the composition
//   - one turn record exists per solved period, in order
//
// Failures are reported as messages, one per violation, so a broken
// engine shows every symptom at once.
func CheckInvariants(session *game.Session) []string {
	var errs []string

	history := session.History()
	for i, snap := range history {
		if snap.Period != i {
			errs = append(errs, fmt.Sprintf("invariant: history[%d] has period %d", i, snap.Period))
		}
	}
	if got, want := len(history), session.Period()+1; got != want {
		errs = append(errs, fmt.Sprintf("invariant: history length %d, want period+1 = %d", got, want))
	}
	if len(history) > 0 && history[0].Iterations != 0 {
		errs = append(errs, "invariant: initial snapshot carries solve metadata")
	}

	counts := session.DeckCounts()
	composition := session.DeckComposition()
	for name, want := range composition {
		if counts[name] != want {
			errs = append(errs, fmt.Sprintf("invariant: deck holds %d copies of %q, composition has %d", counts[name], name, want))
		}
	}
	for name := range counts {
		if _, ok := composition[name]; !ok {
			errs = append(errs, fmt.Sprintf("invariant: deck holds %q which is not in the composition", name))
		}
	}

	turns := session.Turns()
	for i, turn := range turns {
		if turn.Period != i+1 {
			errs = append(errs, fmt.Sprintf("invariant: turns[%d] has period %d, want %d", i, turn.Period, i+1))
		}
	}
	if got, want := len(turns), session.Period(); got != want {
		errs = append(errs, fmt.Sprintf("invariant: %d turn records for %d solved periods", got, want))
	}

	return errs
}
