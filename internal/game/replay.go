package game

import "fmt"

// Adjustment is one pre-game change to a baseline parameter or a
// period-0 variable.
type Adjustment struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// ScriptTurn is one year of scripted play. An optional dilemma
// resolves before the confirm.
type ScriptTurn struct {
	Dilemma string   `json:"dilemma,omitempty" yaml:"dilemma,omitempty"`
	Option  string   `json:"option,omitempty" yaml:"option,omitempty"`
	Cards   []string `json:"cards" yaml:"cards"`
}

// Script is a full game expressed as data: the character, the seed,
// the pre-game adjustments, and every turn's choices. Running the
// same script against the same definition set always produces the
// same history, which is what makes stored games verifiable.
type Script struct {
	Seed        int64        `json:"seed" yaml:"seed"`
	Character   string       `json:"character" yaml:"character"`
	Adjustments []Adjustment `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
	Turns       []ScriptTurn `json:"turns" yaml:"turns"`
}

// Run plays a script from start to finish and returns the finished
// session. cfg.Seed is overridden by the script's seed so the script
// is self-contained. Any rejected step aborts with the turn number in
// the error.
func Run(cfg Config, script Script) (*Session, error) {
	cfg.Seed = script.Seed
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.SelectCharacter(script.Character); err != nil {
		return nil, err
	}
	for _, adj := range script.Adjustments {
		if err := s.AdjustInitial(adj.Name, adj.Value); err != nil {
			return nil, err
		}
	}
	for i, turn := range script.Turns {
		if turn.Dilemma != "" {
			if err := s.ResolveDilemma(turn.Dilemma, turn.Option); err != nil {
				return nil, fmt.Errorf("turn %d: %w", i+1, err)
			}
		}
		if _, err := s.ConfirmTurn(turn.Cards); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
	}
	return s, nil
}

// Verify replays a script and checks the resulting history hash
// against an expected value. A mismatch means the definitions, the
// engine, or the stored record diverged since the game was played.
func Verify(cfg Config, script Script, wantHash string) error {
	s, err := Run(cfg, script)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	got, err := s.History().Hash()
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if got != wantHash {
		return fmt.Errorf("replay: history hash mismatch: got %s, want %s", got, wantHash)
	}
	return nil
}
