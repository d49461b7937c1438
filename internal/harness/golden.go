package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/game"
)

// GameSnapshot captures the complete outcome of a scenario for
// golden comparison: the full history and every turn record, in
// canonical JSON so the bytes are stable across runs and platforms.
type GameSnapshot struct {
	ScenarioName string
	HistoryHash  string
	History      econ.History
	Turns        []game.TurnRecord
}

// toCanonicalMap flattens a GameSnapshot for canonical JSON
// serialization. econ.MarshalCanonical handles snapshots natively;
// turn records are flattened by hand.
func (s *GameSnapshot) toCanonicalMap() map[string]any {
	historyList := make([]any, len(s.History))
	for i, snap := range s.History {
		historyList[i] = snap
	}

	turnList := make([]any, len(s.Turns))
	for i, turn := range s.Turns {
		turnList[i] = map[string]any{
			"period": turn.Period,
			"cards":  toAnyList(turn.Cards),
			"events": toAnyList(turn.Events),
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"history_hash":  s.HistoryHash,
		"history":       historyList,
		"turns":         turnList,
	}
}

func toAnyList(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

// RunWithGolden executes a scenario and compares the outcome against
// a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden comparison only makes sense for scenarios whose outcome
// does not depend on solver internals that may be recalibrated; use
// the passthrough system or pin the defs dir.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := GameSnapshot{
		ScenarioName: scenario.Name,
		HistoryHash:  result.HistoryHash,
		History:      result.Session.History(),
		Turns:        result.Session.Turns(),
	}

	data, err := econ.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
