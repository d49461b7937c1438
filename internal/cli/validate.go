package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Source string   `json:"source"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [defs-dir]",
		Short: "Validate a definition set",
		Long: `Validate a CUE definition set without playing a game.

Checks the schema, the cross-references (card effects against baseline
parameters, starting decks against the card catalog, triggers against
model variables), and the table rules. With no argument, validates the
bundled default set.

Exit codes:
  0 - Definition set is valid
  1 - Definition set missing, malformed, or invalid`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(rootOpts, dir, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	source := dir
	if source == "" {
		source = "(bundled defaults)"
	}
	formatter.VerboseLog("Validating definition set from %s", source)

	d, err := loadDefinitions(dir)
	if err != nil {
		result := ValidationResult{
			Valid:  false,
			Source: source,
			Errors: splitErrorLines(err),
		}
		if opts.Format == "json" {
			if outErr := formatter.Success(result); outErr != nil {
				return outErr
			}
		} else {
			if outErr := formatter.Error(ErrCodeDefs, "definition set invalid", nil); outErr != nil {
				return outErr
			}
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", msg)
			}
		}
		return NewExitError(ExitFailure, "definition set invalid")
	}

	result := ValidationResult{Valid: true, Source: source}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf(
		"Definition set valid: %s (%d cards, %d events, %d characters, %d dilemmas)",
		source, len(d.Cards), len(d.Events), len(d.Characters), len(d.Dilemmas)))
}

// splitErrorLines flattens a joined validation error into one
// message per line for structured output.
func splitErrorLines(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
