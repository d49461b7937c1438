package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/statecraft/internal/game"
	"github.com/roach88/statecraft/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	DefsDir  string
}

// ReplayGameResult holds the verification result for a single game.
type ReplayGameResult struct {
	GameID   string `json:"game_id"`
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Games       []ReplayGameResult `json:"games"`
	TotalGames  int                `json:"total_games"`
	AllVerified bool               `json:"all_verified"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [game-id]",
		Short: "Replay archived games and verify determinism",
		Long: `Replay archived games against the current definitions and engine.

For each game this checks, in order: that the stored snapshots are
intact (each body still matches its hash), that the stored history
hashes to the recorded value, and that re-running the stored script
reproduces that hash exactly. With a game id only that game is
verified; otherwise every archived game is.

Exit codes:
  0 - All games verified
  1 - Verification failed (archive corrupted, or definitions drifted)
  2 - Command error (database not found, etc.)

Examples:
  statecraft replay --db ./games.db
  statecraft replay --db ./games.db 0190b5e2-...
  statecraft replay --db ./games.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := ""
			if len(args) == 1 {
				gameID = args[0]
			}
			return runReplay(opts, gameID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.DefsDir, "defs", "", "directory of CUE definition files (default: bundled set)")

	return cmd
}

func runReplay(opts *ReplayOptions, gameID string, cmd *cobra.Command) error {
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

	d, err := loadDefinitions(opts.DefsDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load definitions", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var ids []string
	if gameID != "" {
		ids = []string{gameID}
	} else {
		summaries, err := st.ListGames(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list games", err)
		}
		for _, sum := range summaries {
			ids = append(ids, sum.ID)
		}
	}

	result := ReplayResult{
		Games:       []ReplayGameResult{},
		AllVerified: true,
	}
	cfg := game.Config{Defs: d}
	for _, id := range ids {
		formatter.VerboseLog("Verifying game %s", id)
		gameResult := ReplayGameResult{GameID: id, Verified: true}
		if err := st.VerifyReplay(ctx, id, cfg); err != nil {
			gameResult.Verified = false
			gameResult.Error = err.Error()
			result.AllVerified = false
		}
		result.Games = append(result.Games, gameResult)
	}
	result.TotalGames = len(result.Games)

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if err := formatter.Success(formatReplayText(result)); err != nil {
			return err
		}
	}

	if !result.AllVerified {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

func formatReplayText(r ReplayResult) string {
	var b strings.Builder
	if r.TotalGames == 0 {
		return "No archived games to verify"
	}
	for _, g := range r.Games {
		if g.Verified {
			fmt.Fprintf(&b, "OK   %s\n", g.GameID)
		} else {
			fmt.Fprintf(&b, "FAIL %s\n     %s\n", g.GameID, g.Error)
		}
	}
	verified := 0
	for _, g := range r.Games {
		if g.Verified {
			verified++
		}
	}
	fmt.Fprintf(&b, "%d/%d games verified", verified, r.TotalGames)
	return b.String()
}
