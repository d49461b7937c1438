package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/statecraft/internal/store"
)

// GamesOptions holds flags for the games command.
type GamesOptions struct {
	*RootOptions
	Database string
}

// NewGamesCommand creates the games command.
func NewGamesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GamesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List archived games",
		Long: `List every game archived in the database, newest first.

Examples:
  statecraft games --db ./games.db
  statecraft games --db ./games.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGames(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runGames(opts *GamesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	summaries, err := st.ListGames(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list games", err)
	}

	if opts.Format == "json" {
		return formatter.Success(summaries)
	}
	return formatter.Success(formatGamesText(summaries))
}

func formatGamesText(summaries []store.GameSummary) string {
	if len(summaries) == 0 {
		return "No archived games"
	}
	var b strings.Builder
	for i, sum := range summaries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %-24s seed=%-12d periods=%-3d %s",
			sum.ID, sum.Character, sum.Seed, sum.Periods, sum.CreatedAt)
	}
	return b.String()
}
