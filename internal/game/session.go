package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/roach88/statecraft/internal/compose"
	"github.com/roach88/statecraft/internal/deck"
	"github.com/roach88/statecraft/internal/defs"
	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/event"
	"github.com/roach88/statecraft/internal/solver"
)

// Phase identifies where the session's state machine stands.
type Phase string

const (
	// PhaseCharacterSelect precedes everything: no deck, no history.
	PhaseCharacterSelect Phase = "CHARACTER_SELECT"

	// PhaseSetup holds period 0: snapshot 0 built from configuration,
	// initial values adjustable, first hand drawn, no solve yet.
	PhaseSetup Phase = "SETUP"

	// PhaseAdvancing is the transient state while a solve runs.
	PhaseAdvancing Phase = "ADVANCING"

	// PhaseReview exposes the latest solved snapshot and the new hand.
	PhaseReview Phase = "REVIEW"

	// PhaseTerminal ends the game; only reached by the configured
	// final period or an explicit End, never by a failed solve.
	PhaseTerminal Phase = "TERMINAL"
)

// TurnRecord is what one successful advance committed: the period it
// produced, the cards played, and the events that fired.
type TurnRecord struct {
	Period int      `json:"period"`
	Cards  []string `json:"cards"`
	Events []string `json:"events"`
}

// Config assembles a session.
type Config struct {
	// Defs is the validated definition set. Required.
	Defs *defs.Definitions

	// System solves one period. When nil, the bundled growth model is
	// used with the tolerance and iteration cap from Defs.Rules.
	System solver.System

	// Seed drives every shuffle and event roll of the game.
	Seed int64
}

// activeEvent is an event currently affecting the parameter vector.
// remaining < 0 means permanent.
type activeEvent struct {
	ev        event.Event
	remaining int
}

// Session is one play-through. Not safe for concurrent use; the
// engine is strictly synchronous by design.
//
// INVARIANTS:
//   - len(history) == period+1 whenever a solve is not in flight
//   - exactly one SolvePeriod call per successful or failed advance
//   - a failed advance changes nothing observable
type Session struct {
	id     string
	cfg    Config
	phase  Phase
	rng    *rand.Rand
	system solver.System
	pool   *event.Pool

	baseline  econ.Vector
	character *deck.Character
	deck      *deck.Deck
	history   econ.History
	turns     []TurnRecord

	active           []activeEvent
	pendingFired     []event.Event
	pendingForPeriod int // period the pending evaluation targets; 0 = none

	resolvedDilemmas map[string]bool
}

// NewSession validates the definition set and creates a session in
// CHARACTER_SELECT. Validation failures are fatal here - a game must
// never start with a broken definition set.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Defs == nil {
		return nil, fmt.Errorf("game: config requires a definition set")
	}
	if errs := cfg.Defs.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("game: definition set invalid: %w", errors.Join(errs...))
	}

	system := cfg.System
	if system == nil {
		system = solver.GrowthSystem(
			solver.WithTolerance(cfg.Defs.Rules.Tolerance),
			solver.WithMaxIterations(cfg.Defs.Rules.MaxIterations),
		)
	}

	s := &Session{
		id:               uuid.Must(uuid.NewV7()).String(),
		cfg:              cfg,
		phase:            PhaseCharacterSelect,
		rng:              rand.New(rand.NewSource(cfg.Seed)),
		system:           system,
		pool:             event.NewPool(cfg.Defs.Events, event.WithMaxPerTurn(cfg.Defs.Rules.MaxEventsPerTurn)),
		baseline:         cfg.Defs.Baseline.Clone(),
		resolvedDilemmas: make(map[string]bool),
	}
	slog.Info("session created", "id", s.id, "seed", cfg.Seed)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 { return s.cfg.Seed }

// Phase returns the current state-machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Period returns the latest solved period number (0 before any solve).
func (s *Session) Period() int { return len(s.history) - 1 }

// Character returns the selected character, nil before selection.
func (s *Session) Character() *deck.Character { return s.character }

// History returns the snapshot history. The slice is a copy; the
// snapshots themselves are shared and immutable.
func (s *Session) History() econ.History {
	return append(econ.History(nil), s.history...)
}

// Latest returns the most recent snapshot, nil before setup.
func (s *Session) Latest() *econ.Snapshot { return s.history.Latest() }

// Turns returns the committed turn records in order.
func (s *Session) Turns() []TurnRecord {
	return append([]TurnRecord(nil), s.turns...)
}

// SelectCharacter fires the CHARACTER_SELECT -> SETUP transition:
// builds the starting deck, the baseline vector, and snapshot 0
// directly from configuration, and draws the opening hand.
func (s *Session) SelectCharacter(id string) error {
	if s.phase != PhaseCharacterSelect {
		return &PhaseError{Op: "SelectCharacter", Phase: s.phase}
	}
	ch, err := s.cfg.Defs.Character(id)
	if err != nil {
		return err
	}
	catalog, err := s.cfg.Defs.Catalog()
	if err != nil {
		return err
	}
	d, err := deck.New(catalog, ch.StartingDeck, s.rng)
	if err != nil {
		return err
	}
	if err := d.Draw(s.cfg.Defs.Rules.HandSize); err != nil {
		return err
	}

	s.character = ch
	s.deck = d
	s.history = econ.History{econ.NewInitial(s.cfg.Defs.Initial)}
	s.phase = PhaseSetup
	slog.Info("character selected", "id", s.id, "character", ch.ID)
	return nil
}

// AdjustInitial applies a one-time pre-game adjustment to a baseline
// parameter or a period-0 variable. Only available during SETUP,
// before the first solve; names outside both vectors are refused.
func (s *Session) AdjustInitial(name string, value float64) error {
	if s.phase != PhaseSetup {
		return &PhaseError{Op: "AdjustInitial", Phase: s.phase}
	}
	adjusted := false
	if s.baseline.Has(name) {
		s.baseline[name] = value
		adjusted = true
	}
	if s.history[0].Vars.Has(name) {
		vars := s.history[0].Vars.Clone()
		vars[name] = value
		s.history[0] = econ.NewInitial(vars)
		adjusted = true
	}
	if !adjusted {
		return &econ.ConfigError{Source: "adjustment", Name: name, Ref: name}
	}
	slog.Debug("initial value adjusted", "id", s.id, "name", name, "value", value)
	return nil
}

// Hand returns the cards currently held.
func (s *Session) Hand() ([]deck.Card, error) {
	if s.deck == nil {
		return nil, &PhaseError{Op: "Hand", Phase: s.phase}
	}
	return s.deck.Hand()
}

// DeckCounts returns the per-name card counts across pile, hand, and
// discard. Nil before character selection.
func (s *Session) DeckCounts() map[string]int {
	if s.deck == nil {
		return nil
	}
	return s.deck.Counts()
}

// DeckComposition returns the per-name counts of the full deck
// composition. Nil before character selection.
func (s *Session) DeckComposition() map[string]int {
	if s.deck == nil {
		return nil
	}
	return s.deck.CompositionCounts()
}

// ResolveDilemma applies one option of a dilemma to the deck. Each
// dilemma resolves at most once per game and the mutation is
// irreversible; it takes effect before the next draw.
func (s *Session) ResolveDilemma(id, option string) error {
	if s.phase != PhaseSetup && s.phase != PhaseReview {
		return &PhaseError{Op: "ResolveDilemma", Phase: s.phase}
	}
	if s.resolvedDilemmas[id] {
		return fmt.Errorf("game: dilemma %q already resolved", id)
	}
	dl, err := s.cfg.Defs.Dilemma(id)
	if err != nil {
		return err
	}
	opt, err := dl.Option(option)
	if err != nil {
		return err
	}
	if err := s.deck.ApplyOption(opt); err != nil {
		return err
	}
	s.resolvedDilemmas[id] = true
	slog.Info("dilemma resolved", "id", s.id, "dilemma", id, "option", option)
	return nil
}

// ActiveEvents returns the events affecting the upcoming solve:
// effects still running from earlier turns plus the ones newly
// triggered for this turn. Triggering is evaluated once per period;
// repeated calls (and failed solve retries) see the same result.
func (s *Session) ActiveEvents() ([]event.Event, error) {
	if s.phase != PhaseSetup && s.phase != PhaseReview {
		return nil, &PhaseError{Op: "ActiveEvents", Phase: s.phase}
	}
	if err := s.ensurePending(); err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(s.active)+len(s.pendingFired))
	for _, ae := range s.active {
		out = append(out, ae.ev)
	}
	out = append(out, s.pendingFired...)
	return out, nil
}

// ensurePending evaluates event triggers for the upcoming period
// exactly once, caching the outcome so retries of a failed solve do
// not consume additional dice rolls.
func (s *Session) ensurePending() error {
	target := len(s.history) // period the next solve would produce
	if s.pendingForPeriod == target {
		return nil
	}
	fired, err := s.pool.Evaluate(s.history.Latest(), s.rng)
	if err != nil {
		return err
	}
	s.pendingFired = fired
	s.pendingForPeriod = target
	return nil
}

// ConfirmTurn advances the game by exactly one year. selected names
// between 0 and MaxPlaysPerTurn cards from the hand, no duplicates.
//
// On success the new snapshot is returned, history grows by one, the
// hand is discarded and redrawn. On a convergence failure nothing
// changes and the ConvergenceError is returned; the player may retry
// with different choices. A rejected selection returns a PlayError
// before any evaluation happens.
func (s *Session) ConfirmTurn(selected []string) (*econ.Snapshot, error) {
	if s.phase != PhaseSetup && s.phase != PhaseReview {
		return nil, &PhaseError{Op: "ConfirmTurn", Phase: s.phase}
	}
	cards, err := s.validateSelection(selected)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePending(); err != nil {
		return nil, err
	}

	prevPhase := s.phase
	s.phase = PhaseAdvancing

	activeEvents := make([]event.Event, 0, len(s.active)+len(s.pendingFired))
	for _, ae := range s.active {
		activeEvents = append(activeEvents, ae.ev)
	}
	activeEvents = append(activeEvents, s.pendingFired...)

	params, err := compose.Compose(s.baseline, activeEvents, cards, s.character)
	if err != nil {
		s.phase = prevPhase
		return nil, err
	}

	prior := s.history.Latest()
	snap, err := s.system.SolvePeriod(prior, params)
	if err != nil {
		// The advance aborts: history, hand, deck, and the cached
		// event evaluation all stay as they were.
		s.phase = prevPhase
		slog.Warn("advance failed", "id", s.id, "period", prior.Period+1, "err", err)
		return nil, err
	}

	s.commit(snap, selected)
	return snap, nil
}

// commit applies the successful solve: append, tick event durations,
// redraw, and move the machine forward.
func (s *Session) commit(snap *econ.Snapshot, selected []string) {
	s.history = append(s.history, snap)
	s.turns = append(s.turns, TurnRecord{
		Period: snap.Period,
		Cards:  append([]string(nil), selected...),
		Events: eventNames(s.pendingFired),
	})

	// Carry forward running effects, drop expired ones, then admit the
	// newly fired events with their own durations.
	var next []activeEvent
	for _, ae := range s.active {
		if ae.remaining < 0 {
			next = append(next, ae)
			continue
		}
		if ae.remaining-1 > 0 {
			next = append(next, activeEvent{ev: ae.ev, remaining: ae.remaining - 1})
		}
	}
	for _, ev := range s.pendingFired {
		switch {
		case ev.Duration == 0:
			next = append(next, activeEvent{ev: ev, remaining: -1})
		case ev.Duration > 1:
			next = append(next, activeEvent{ev: ev, remaining: ev.Duration - 1})
		}
	}
	s.active = next
	s.pendingFired = nil
	s.pendingForPeriod = 0

	s.deck.DiscardHand()
	// Drawing cannot fail for a non-negative count; the deck
	// reshuffles itself from the full composition when short.
	_ = s.deck.Draw(s.cfg.Defs.Rules.DrawPerTurn)

	if snap.Period >= s.cfg.Defs.Rules.FinalPeriod {
		s.phase = PhaseTerminal
	} else {
		s.phase = PhaseReview
	}
	slog.Info("turn committed", "id", s.id, "period", snap.Period,
		"cards", len(selected), "events", len(s.turns[len(s.turns)-1].Events), "phase", s.phase)
}

// validateSelection enforces the per-turn play constraints and
// resolves names to card definitions in hand-selection order.
func (s *Session) validateSelection(selected []string) ([]deck.Card, error) {
	maxPlays := s.cfg.Defs.Rules.MaxPlaysPerTurn
	if len(selected) > maxPlays {
		return nil, &PlayError{
			Code:    ErrCodeTooManyCards,
			Message: fmt.Sprintf("selected %d cards, at most %d may be played per turn", len(selected), maxPlays),
		}
	}
	seen := make(map[string]bool, len(selected))
	for _, name := range selected {
		if seen[name] {
			return nil, &PlayError{
				Code:    ErrCodeDuplicateCard,
				Message: "the same card cannot be played twice in one turn",
				Card:    name,
			}
		}
		seen[name] = true
		if !s.deck.Holds(name) {
			return nil, &PlayError{
				Code:    ErrCodeNotInHand,
				Message: "card is not in the current hand",
				Card:    name,
			}
		}
	}

	cards := make([]deck.Card, 0, len(selected))
	hand, err := s.deck.Hand()
	if err != nil {
		return nil, err
	}
	for _, name := range selected {
		for _, c := range hand {
			if c.Name == name {
				cards = append(cards, c)
				break
			}
		}
	}
	return cards, nil
}

// End moves the session to TERMINAL regardless of period. Explicit
// game-end is the only other way to terminate; solve failures never
// do.
func (s *Session) End() {
	s.phase = PhaseTerminal
	slog.Info("session ended", "id", s.id, "period", s.Period())
}

// ObjectiveResult is one end-of-game objective evaluated against the
// final snapshot.
type ObjectiveResult struct {
	Objective deck.Objective `json:"objective"`
	Value     float64        `json:"value"`
	Met       bool           `json:"met"`
}

// Objectives evaluates the character's objectives against the latest
// snapshot.
func (s *Session) Objectives() ([]ObjectiveResult, error) {
	if s.character == nil {
		return nil, &PhaseError{Op: "Objectives", Phase: s.phase}
	}
	latest := s.history.Latest()
	out := make([]ObjectiveResult, 0, len(s.character.Objectives))
	for _, o := range s.character.Objectives {
		v, err := latest.Get(o.Var)
		if err != nil {
			return nil, err
		}
		out = append(out, ObjectiveResult{Objective: o, Value: v, Met: o.Met(v)})
	}
	return out, nil
}

func eventNames(events []event.Event) []string {
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	return names
}
