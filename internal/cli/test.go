package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/statecraft/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
}

// ScenarioResult holds the outcome of one scenario file.
type ScenarioResult struct {
	File   string   `json:"file"`
	Name   string   `json:"name,omitempty"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test run outcome.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	AllPassed bool             `json:"all_passed"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario.yaml>...",
		Short: "Run conformance scenarios",
		Long: `Run one or more scenario files through the conformance harness.

Each scenario plays a complete scripted game and checks the engine's
structural invariants plus the scenario's own assertions.

Exit codes:
  0 - All scenarios passed
  1 - At least one scenario failed
  2 - Command error (scenario file missing or malformed)

Examples:
  statecraft test scenarios/baseline.yaml
  statecraft test scenarios/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args, cmd)
		},
	}

	return cmd
}

func runTest(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := TestResult{
		Scenarios: []ScenarioResult{},
		AllPassed: true,
	}
	for _, path := range paths {
		formatter.VerboseLog("Running scenario %s", path)

		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load scenario %s", path), err)
		}

		run, err := harness.Run(scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s failed to execute", path), err)
		}

		sr := ScenarioResult{
			File:   path,
			Name:   scenario.Name,
			Pass:   run.Pass,
			Errors: run.Errors,
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.AllPassed = false
		}
	}
	result.Total = len(result.Scenarios)

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if err := formatter.Success(formatTestText(result)); err != nil {
			return err
		}
	}

	if !result.AllPassed {
		return NewExitError(ExitFailure, "scenario failures")
	}
	return nil
}

func formatTestText(r TestResult) string {
	var b strings.Builder
	for _, sr := range r.Scenarios {
		if sr.Pass {
			fmt.Fprintf(&b, "PASS %s (%s)\n", sr.Name, sr.File)
			continue
		}
		fmt.Fprintf(&b, "FAIL %s (%s)\n", sr.Name, sr.File)
		for _, msg := range sr.Errors {
			for _, line := range strings.Split(msg, "\n") {
				fmt.Fprintf(&b, "     %s\n", line)
			}
		}
	}
	fmt.Fprintf(&b, "%d/%d scenarios passed", r.Passed, r.Total)
	return b.String()
}
