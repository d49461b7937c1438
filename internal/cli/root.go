package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions carries the global flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
	Format  string // "text" or "json"
}

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// NewRootCommand builds the statecraft command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "statecraft",
		Short: "Statecraft - a stock-flow consistent policy game",
		Long: "A turn-based macroeconomic simulation: play policy cards, weather " +
			"events, and steer a stock-flow consistent model through ten years.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(
		NewValidateCommand(opts),
		NewPlayCommand(opts),
		NewReplayCommand(opts),
		NewGamesCommand(opts),
		NewTraceCommand(opts),
		NewTestCommand(opts),
	)

	return cmd
}
