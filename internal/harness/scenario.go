package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/statecraft/internal/game"
)

// Scenario defines a conformance test scenario.
// A scenario is a complete scripted game plus assertions on the
// resulting history, deck, and session state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// DefsDir is an optional directory of CUE definition files to
	// load instead of the bundled defaults. Relative paths resolve
	// against the scenario file location.
	DefsDir string `yaml:"defs_dir,omitempty"`

	// System selects the equation system: "growth" (default) runs
	// the full model, "passthrough" echoes parameters into the
	// snapshot so expected values can be computed by hand.
	System string `yaml:"system,omitempty"`

	// Seed drives every shuffle and event roll of the game.
	Seed int64 `yaml:"seed"`

	// Character is the archetype id to play.
	Character string `yaml:"character"`

	// Adjustments are applied during setup, before the first solve.
	Adjustments []game.Adjustment `yaml:"adjustments,omitempty"`

	// Turns scripts every year of the game in order.
	Turns []game.ScriptTurn `yaml:"turns"`

	// Assertions validate the finished session.
	// Supported types: snapshot_value, history_length, deck_count,
	// turn_cards, phase, history_hash.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a finished session.
type Assertion struct {
	// Type specifies the assertion type:
	// - "snapshot_value": a variable at a given period equals Value
	// - "history_length": the history holds exactly Count snapshots
	// - "deck_count": the deck composition holds Count copies of Card
	// - "turn_cards": the turn that produced Period played Cards
	// - "phase": the session ended in Phase
	// - "history_hash": the canonical history hash equals Hash
	Type string `yaml:"type"`

	// Period selects a snapshot or turn record (snapshot_value,
	// turn_cards).
	Period int `yaml:"period,omitempty"`

	// Var is the variable name (snapshot_value).
	Var string `yaml:"var,omitempty"`

	// Value is the expected value (snapshot_value).
	Value float64 `yaml:"value,omitempty"`

	// Tolerance widens the value comparison; zero means exact
	// (snapshot_value).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Count is the expected number (history_length, deck_count).
	Count int `yaml:"count,omitempty"`

	// Card is the card name (deck_count).
	Card string `yaml:"card,omitempty"`

	// Cards is the expected play list in order (turn_cards).
	Cards []string `yaml:"cards,omitempty"`

	// Phase is the expected final phase (phase).
	Phase string `yaml:"phase,omitempty"`

	// Hash is the expected canonical history hash (history_hash).
	Hash string `yaml:"hash,omitempty"`
}

// Assertion type constants.
const (
	AssertSnapshotValue = "snapshot_value"
	AssertHistoryLength = "history_length"
	AssertDeckCount     = "deck_count"
	AssertTurnCards     = "turn_cards"
	AssertPhase         = "phase"
	AssertHistoryHash   = "history_hash"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// DefsDir, when relative, resolves against the scenario file's
// directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.DefsDir != "" && !filepath.IsAbs(scenario.DefsDir) {
		scenario.DefsDir = filepath.Join(filepath.Dir(path), scenario.DefsDir)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Character == "" {
		return fmt.Errorf("character is required")
	}

	switch s.System {
	case "", "growth", "passthrough":
	default:
		return fmt.Errorf("unknown system %q", s.System)
	}

	if s.DefsDir != "" {
		if _, err := os.Stat(s.DefsDir); os.IsNotExist(err) {
			return fmt.Errorf("defs dir not found: %s", s.DefsDir)
		}
	}

	if len(s.Turns) == 0 {
		return fmt.Errorf("turns list is required and must be non-empty")
	}

	for i, turn := range s.Turns {
		if (turn.Dilemma == "") != (turn.Option == "") {
			return fmt.Errorf("turns[%d]: dilemma and option must be set together", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSnapshotValue:
		if a.Var == "" {
			return fmt.Errorf("assertions[%d]: var is required for snapshot_value", index)
		}
		if a.Period < 0 {
			return fmt.Errorf("assertions[%d]: period must be non-negative for snapshot_value", index)
		}
	case AssertHistoryLength:
		if a.Count <= 0 {
			return fmt.Errorf("assertions[%d]: count must be positive for history_length", index)
		}
	case AssertDeckCount:
		if a.Card == "" {
			return fmt.Errorf("assertions[%d]: card is required for deck_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for deck_count", index)
		}
	case AssertTurnCards:
		if a.Period <= 0 {
			return fmt.Errorf("assertions[%d]: period must be positive for turn_cards", index)
		}
	case AssertPhase:
		if a.Phase == "" {
			return fmt.Errorf("assertions[%d]: phase is required for phase", index)
		}
	case AssertHistoryHash:
		if a.Hash == "" {
			return fmt.Errorf("assertions[%d]: hash is required for history_hash", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
