package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/statecraft/internal/game"
	"github.com/roach88/statecraft/internal/store"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	DefsDir  string
	Database string
}

// PlayResult is the summary of a finished game.
type PlayResult struct {
	GameID      string                 `json:"game_id"`
	Seed        int64                  `json:"seed"`
	Character   string                 `json:"character"`
	FinalPeriod int                    `json:"final_period"`
	Phase       string                 `json:"phase"`
	HistoryHash string                 `json:"history_hash"`
	Objectives  []game.ObjectiveResult `json:"objectives"`
	Saved       bool                   `json:"saved"`
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play <script.yaml>",
		Short: "Play a scripted game start to finish",
		Long: `Play a complete game from a replay script.

The script names the character, the seed, the pre-game adjustments,
and every turn's card plays and dilemma choices. The game runs
against the full growth model and prints the outcome; with --db the
finished game is archived for later replay verification.

Example:
  statecraft play game.yaml
  statecraft play game.yaml --defs ./defs --db ./games.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DefsDir, "defs", "", "directory of CUE definition files (default: bundled set)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "archive the finished game to this SQLite database")

	return cmd
}

func runPlay(opts *PlayOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	d, err := loadDefinitions(opts.DefsDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load definitions", err)
	}

	script, err := loadScript(scriptPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}

	formatter.VerboseLog("Playing %s as %s with seed %d", scriptPath, script.Character, script.Seed)

	session, err := game.Run(game.Config{Defs: d}, script)
	if err != nil {
		return WrapExitError(ExitFailure, "game failed", err)
	}

	hash, err := session.History().Hash()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to hash history", err)
	}
	objectives, err := session.Objectives()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to evaluate objectives", err)
	}

	result := PlayResult{
		GameID:      session.ID(),
		Seed:        session.Seed(),
		Character:   session.Character().ID,
		FinalPeriod: session.Period(),
		Phase:       string(session.Phase()),
		HistoryHash: hash,
		Objectives:  objectives,
	}

	if opts.Database != "" {
		if err := saveGame(cmd.Context(), opts.Database, session, script, hash); err != nil {
			return WrapExitError(ExitCommandError, "failed to archive game", err)
		}
		result.Saved = true
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(formatPlayText(result))
}

func saveGame(ctx context.Context, path string, session *game.Session, script game.Script, hash string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.SaveGame(ctx, store.GameRecord{
		ID:          session.ID(),
		Seed:        session.Seed(),
		Character:   session.Character().ID,
		Script:      script,
		History:     session.History(),
		Turns:       session.Turns(),
		HistoryHash: hash,
	})
}

func formatPlayText(r PlayResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %s finished\n", r.GameID)
	fmt.Fprintf(&b, "  Character: %s (seed %d)\n", r.Character, r.Seed)
	fmt.Fprintf(&b, "  Final period: %d (%s)\n", r.FinalPeriod, r.Phase)
	fmt.Fprintf(&b, "  History hash: %s\n", r.HistoryHash)
	fmt.Fprintf(&b, "  Objectives:")
	for _, o := range r.Objectives {
		status := "MISSED"
		if o.Met {
			status = "MET"
		}
		fmt.Fprintf(&b, "\n    %-7s %s: %s %s %g (actual %.4g)",
			status, o.Objective.Label, o.Objective.Var, o.Objective.Op, o.Objective.Target, o.Value)
	}
	if r.Saved {
		fmt.Fprintf(&b, "\n  Archived to database")
	}
	return b.String()
}
