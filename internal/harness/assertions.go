package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/statecraft/internal/game"
)

// AssertionError is returned when an assertion fails.
// Expected and Actual carry enough context to debug the failure from
// the message alone.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the finished
// session and returns the failure messages. All assertions evaluate
// even after one fails, so a broken scenario reports everything at
// once.
func EvaluateAssertions(session *game.Session, historyHash string, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluateAssertion(session, historyHash, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluateAssertion(session *game.Session, historyHash string, a Assertion) error {
	switch a.Type {
	case AssertSnapshotValue:
		return assertSnapshotValue(session, a)
	case AssertHistoryLength:
		return assertHistoryLength(session, a)
	case AssertDeckCount:
		return assertDeckCount(session, a)
	case AssertTurnCards:
		return assertTurnCards(session, a)
	case AssertPhase:
		return assertPhase(session, a)
	case AssertHistoryHash:
		return assertHistoryHash(historyHash, a)
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: "a known assertion type",
		Actual:   fmt.Sprintf("unknown type %q", a.Type),
	}
}

func assertSnapshotValue(session *game.Session, a Assertion) error {
	snap, err := session.History().At(a.Period)
	if err != nil {
		return &AssertionError{
			Type:     AssertSnapshotValue,
			Expected: fmt.Sprintf("snapshot for period %d", a.Period),
			Actual:   err.Error(),
		}
	}
	v, err := snap.Get(a.Var)
	if err != nil {
		return &AssertionError{
			Type:     AssertSnapshotValue,
			Expected: fmt.Sprintf("variable %q in period %d", a.Var, a.Period),
			Actual:   err.Error(),
		}
	}
	if math.Abs(v-a.Value) > a.Tolerance {
		return &AssertionError{
			Type:     AssertSnapshotValue,
			Expected: fmt.Sprintf("%s = %g at period %d (tolerance %g)", a.Var, a.Value, a.Period, a.Tolerance),
			Actual:   fmt.Sprintf("%s = %g", a.Var, v),
		}
	}
	return nil
}

func assertHistoryLength(session *game.Session, a Assertion) error {
	got := len(session.History())
	if got != a.Count {
		return &AssertionError{
			Type:     AssertHistoryLength,
			Expected: fmt.Sprintf("%d snapshots", a.Count),
			Actual:   fmt.Sprintf("%d snapshots", got),
		}
	}
	return nil
}

func assertDeckCount(session *game.Session, a Assertion) error {
	got := session.DeckComposition()[a.Card]
	if got != a.Count {
		return &AssertionError{
			Type:     AssertDeckCount,
			Expected: fmt.Sprintf("%d copies of %q in the composition", a.Count, a.Card),
			Actual:   fmt.Sprintf("%d copies", got),
		}
	}
	return nil
}

func assertTurnCards(session *game.Session, a Assertion) error {
	for _, turn := range session.Turns() {
		if turn.Period != a.Period {
			continue
		}
		if len(turn.Cards) != len(a.Cards) {
			return turnCardsError(a, turn.Cards)
		}
		for i := range turn.Cards {
			if turn.Cards[i] != a.Cards[i] {
				return turnCardsError(a, turn.Cards)
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     AssertTurnCards,
		Expected: fmt.Sprintf("a turn record for period %d", a.Period),
		Actual:   "no such turn",
	}
}

func turnCardsError(a Assertion, got []string) error {
	return &AssertionError{
		Type:     AssertTurnCards,
		Expected: fmt.Sprintf("period %d played %v", a.Period, a.Cards),
		Actual:   fmt.Sprintf("played %v", got),
	}
}

func assertPhase(session *game.Session, a Assertion) error {
	if string(session.Phase()) != a.Phase {
		return &AssertionError{
			Type:     AssertPhase,
			Expected: a.Phase,
			Actual:   string(session.Phase()),
		}
	}
	return nil
}

func assertHistoryHash(historyHash string, a Assertion) error {
	if historyHash != a.Hash {
		return &AssertionError{
			Type:     AssertHistoryHash,
			Expected: a.Hash,
			Actual:   historyHash,
		}
	}
	return nil
}
