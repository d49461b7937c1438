package harness

import (
	"fmt"

	"github.com/roach88/statecraft/internal/defs"
	"github.com/roach88/statecraft/internal/game"
	"github.com/roach88/statecraft/internal/solver"
	"github.com/roach88/statecraft/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load the definition set (bundled defaults or the scenario's
//     own CUE directory)
//  2. Play the scripted game start to finish
//  3. Check the engine invariants that every game must uphold
//  4. Evaluate the scenario's assertions
//
// A script that fails to execute (rejected play, failed solve) is a
// scenario error, not an assertion failure: Run returns the error
// and no result.
func Run(scenario *Scenario) (*Result, error) {
	d, err := loadDefs(scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	script := game.Script{
		Seed:        scenario.Seed,
		Character:   scenario.Character,
		Adjustments: scenario.Adjustments,
		Turns:       scenario.Turns,
	}
	session, err := game.Run(game.Config{Defs: d, System: systemFor(scenario)}, script)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Session = session

	hash, err := session.History().Hash()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	result.HistoryHash = hash

	for _, msg := range CheckInvariants(session) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(session, hash, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// RunFile loads a scenario from a YAML file and executes it.
func RunFile(path string) (*Result, error) {
	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return Run(scenario)
}

func loadDefs(scenario *Scenario) (*defs.Definitions, error) {
	if scenario.DefsDir == "" {
		return defs.Default()
	}
	return defs.LoadDir(scenario.DefsDir)
}

func systemFor(scenario *Scenario) solver.System {
	if scenario.System == "passthrough" {
		return testutil.NewPassthroughSystem()
	}
	return nil // game.NewSession falls back to the growth model
}
