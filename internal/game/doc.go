// Package game implements the turn controller: the state machine
// that owns the deck, the hand, the history, and the period counter
// for one play-through, and sequences character selection, per-turn
// card choices, event triggering, and exactly one equation solve per
// advanced year.
//
// ARCHITECTURE:
//
// Strictly Synchronous Single Owner:
// A Session is used from one goroutine. Every operation runs to
// completion before the next is issued; there is no background
// computation and no locking. The solve is a blocking call with a
// bounded iteration cap, so each turn has bounded latency.
//
// Turn Flow:
//  1. ConfirmTurn validates the card selection (cap, duplicates,
//     held-in-hand) - violations reject the confirm with no state
//     change
//  2. Events for the upcoming period are evaluated (once per period,
//     cached across retries so a failed solve can be retried without
//     skewing the dice)
//  3. The parameter composer folds active events then selected cards
//     into the baseline
//  4. SolvePeriod runs against the latest snapshot - exactly once per
//     advance
//  5. On success: snapshot appended, period +1, hand discarded and
//     redrawn, event durations ticked. On convergence failure:
//     nothing changes and the error is returned
//
// CRITICAL PATTERNS:
//
// History as the sole source of truth:
// Lagged state for the next solve always comes from the latest
// history entry. There is no hidden mutable model object.
//
// Seeded determinism:
// All randomness (shuffles, event dice) derives from the per-game
// seed. Given the seed and the sequence of player choices - including
// rejected and failed attempts - the entire run replays identically.
package game
