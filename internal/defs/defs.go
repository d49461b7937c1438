package defs

import (
	"fmt"

	"github.com/roach88/statecraft/internal/deck"
	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/event"
)

// Rules are the table settings of a game.
type Rules struct {
	// HandSize is the number of cards drawn for the opening hand.
	HandSize int `json:"hand_size"`

	// DrawPerTurn is the number of cards drawn after each solved year.
	DrawPerTurn int `json:"draw_per_turn"`

	// MaxPlaysPerTurn caps how many cards one confirm may select.
	MaxPlaysPerTurn int `json:"max_plays_per_turn"`

	// MaxEventsPerTurn caps how many events may activate in one turn.
	MaxEventsPerTurn int `json:"max_events_per_turn"`

	// FinalPeriod is the year the game ends after solving.
	FinalPeriod int `json:"final_period"`

	// Tolerance and MaxIterations bound the solve; they are model
	// calibration, not engine constants.
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

// Definitions is one complete, validated definition set.
type Definitions struct {
	Rules      Rules            `json:"rules"`
	Baseline   econ.Vector      `json:"baseline"`
	Initial    econ.Vector      `json:"initial"`
	Cards      []deck.Card      `json:"cards"`
	Events     []event.Event    `json:"events"`
	Characters []deck.Character `json:"characters"`
	Dilemmas   []deck.Dilemma   `json:"dilemmas"`
}

// Catalog builds the card catalog from the definition set.
func (d *Definitions) Catalog() (*deck.Catalog, error) {
	return deck.NewCatalog(d.Cards)
}

// Character returns the character with the given id.
func (d *Definitions) Character(id string) (*deck.Character, error) {
	for i := range d.Characters {
		if d.Characters[i].ID == id {
			return &d.Characters[i], nil
		}
	}
	return nil, fmt.Errorf("defs: no character %q", id)
}

// Dilemma returns the dilemma with the given id.
func (d *Definitions) Dilemma(id string) (*deck.Dilemma, error) {
	for i := range d.Dilemmas {
		if d.Dilemmas[i].ID == id {
			return &d.Dilemmas[i], nil
		}
	}
	return nil, fmt.Errorf("defs: no dilemma %q", id)
}

// Validate cross-checks the definition set and collects every
// problem rather than stopping at the first, so a broken set reports
// all of its faults in one run.
func (d *Definitions) Validate() []error {
	var errs []error

	if len(d.Baseline) == 0 {
		errs = append(errs, fmt.Errorf("defs: baseline parameter vector is empty"))
	}
	if len(d.Initial) == 0 {
		errs = append(errs, fmt.Errorf("defs: initial state is empty"))
	}
	errs = append(errs, d.validateRules()...)

	cardNames := make(map[string]bool, len(d.Cards))
	for _, c := range d.Cards {
		if cardNames[c.Name] {
			errs = append(errs, fmt.Errorf("defs: duplicate card name %q", c.Name))
		}
		cardNames[c.Name] = true
		if len(c.Effects) == 0 {
			errs = append(errs, fmt.Errorf("defs: card %q has no effects", c.Name))
		}
		for _, eff := range c.Effects {
			if !d.Baseline.Has(eff.Param) {
				errs = append(errs, &econ.ConfigError{Source: "card", Name: c.Name, Ref: eff.Param})
			}
		}
	}

	eventNames := make(map[string]bool, len(d.Events))
	for _, ev := range d.Events {
		if eventNames[ev.Name] {
			errs = append(errs, fmt.Errorf("defs: duplicate event name %q", ev.Name))
		}
		eventNames[ev.Name] = true
		for _, eff := range ev.Effects {
			if !d.Baseline.Has(eff.Param) {
				errs = append(errs, &econ.ConfigError{Source: "event", Name: ev.Name, Ref: eff.Param})
			}
		}
		if ev.Trigger == nil && ev.Probability == 0 {
			errs = append(errs, fmt.Errorf("defs: event %q has neither trigger nor probability", ev.Name))
		}
		if ev.Probability < 0 || ev.Probability > 1 {
			errs = append(errs, fmt.Errorf("defs: event %q probability %g outside [0,1]", ev.Name, ev.Probability))
		}
		if ev.Trigger != nil && !d.Initial.Has(ev.Trigger.Var) {
			errs = append(errs, &econ.ConfigError{Source: "event", Name: ev.Name, Ref: ev.Trigger.Var})
		}
		if ev.Duration < 0 {
			errs = append(errs, fmt.Errorf("defs: event %q has negative duration", ev.Name))
		}
	}

	for _, ch := range d.Characters {
		if len(ch.StartingDeck) == 0 {
			errs = append(errs, fmt.Errorf("defs: character %q has an empty starting deck", ch.ID))
		}
		for _, name := range ch.StartingDeck {
			if !cardNames[name] {
				errs = append(errs, &econ.ConfigError{Source: "character", Name: ch.ID, Ref: name})
			}
		}
		if ch.Bonus.Multiplier <= 0 {
			errs = append(errs, fmt.Errorf("defs: character %q bonus multiplier must be positive", ch.ID))
		}
		for _, o := range ch.Objectives {
			if !d.Initial.Has(o.Var) {
				errs = append(errs, &econ.ConfigError{Source: "character", Name: ch.ID, Ref: o.Var})
			}
		}
	}

	for _, dl := range d.Dilemmas {
		for _, opt := range []deck.DilemmaOption{dl.OptionA, dl.OptionB} {
			for _, name := range append(append([]string(nil), opt.AddCards...), opt.RemoveCards...) {
				if !cardNames[name] {
					errs = append(errs, &econ.ConfigError{Source: "dilemma", Name: dl.ID, Ref: name})
				}
			}
		}
	}

	return errs
}

func (d *Definitions) validateRules() []error {
	var errs []error
	r := d.Rules
	if r.HandSize <= 0 {
		errs = append(errs, fmt.Errorf("defs: rules.hand_size must be positive"))
	}
	if r.DrawPerTurn <= 0 {
		errs = append(errs, fmt.Errorf("defs: rules.draw_per_turn must be positive"))
	}
	if r.MaxPlaysPerTurn <= 0 {
		errs = append(errs, fmt.Errorf("defs: rules.max_plays_per_turn must be positive"))
	}
	if r.MaxEventsPerTurn < 0 {
		errs = append(errs, fmt.Errorf("defs: rules.max_events_per_turn must not be negative"))
	}
	if r.FinalPeriod <= 0 {
		errs = append(errs, fmt.Errorf("defs: rules.final_period must be positive"))
	}
	if r.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("defs: rules.tolerance must be positive"))
	}
	if r.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("defs: rules.max_iterations must be positive"))
	}
	return errs
}
