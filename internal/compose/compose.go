// Package compose merges the baseline parameter vector with the
// turn's active event effects and selected card effects into the
// final parameter vector for one solve.
//
// ORDERING:
// Effects fold in a fixed deterministic order - events first, in
// activation order, then cards, in hand-selection order. The composer
// never mutates the baseline; it returns a fresh vector, so the same
// inputs always compose to the same output.
package compose

import (
	"log/slog"

	"github.com/roach88/statecraft/internal/deck"
	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/event"
)

// Compose builds the parameter vector for the next solve.
//
// Event effects apply unscaled. Card deltas are multiplied by the
// character's bonus multiplier when the card matches the bonus
// criteria; character may be nil (no bonus at all).
//
// A delta naming a parameter absent from the baseline is a
// ConfigError: validation catches it before any game starts, and the
// composer refuses it rather than silently creating the entry.
func Compose(baseline econ.Vector, active []event.Event, selected []deck.Card, ch *deck.Character) (econ.Vector, error) {
	params := baseline.Clone()

	for _, ev := range active {
		for _, eff := range ev.Effects {
			if !params.Has(eff.Param) {
				return nil, &econ.ConfigError{Source: "event", Name: ev.Name, Ref: eff.Param}
			}
			params[eff.Param] += eff.Delta
			slog.Debug("event effect applied",
				"event", ev.Name, "param", eff.Param, "delta", eff.Delta)
		}
	}

	for _, card := range selected {
		scale := 1.0
		if ch != nil && ch.Bonus.Applies(card) {
			scale = ch.Bonus.Multiplier
		}
		for _, eff := range card.Effects {
			if !params.Has(eff.Param) {
				return nil, &econ.ConfigError{Source: "card", Name: card.Name, Ref: eff.Param}
			}
			params[eff.Param] += eff.Delta * scale
			slog.Debug("card effect applied",
				"card", card.Name, "param", eff.Param, "delta", eff.Delta*scale, "bonus", scale != 1.0)
		}
	}

	return params, nil
}
