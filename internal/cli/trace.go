package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/statecraft/internal/game"
	"github.com/roach88/statecraft/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Vars     []string
}

// TracePeriod is one period of a game trace: the turn that produced
// it and the solved variable values.
type TracePeriod struct {
	Period     int                `json:"period"`
	Cards      []string           `json:"cards,omitempty"`
	Events     []string           `json:"events,omitempty"`
	Vars       map[string]float64 `json:"vars"`
	Iterations int                `json:"iterations,omitempty"`
	Residual   float64            `json:"residual,omitempty"`
}

// TraceResult is the full trace of one archived game.
type TraceResult struct {
	GameID      string        `json:"game_id"`
	Character   string        `json:"character"`
	Seed        int64         `json:"seed"`
	HistoryHash string        `json:"history_hash"`
	Periods     []TracePeriod `json:"periods"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <game-id>",
		Short: "Show the period-by-period trace of an archived game",
		Long: `Show an archived game period by period: the cards played, the
events that fired, and the solved model variables.

With --var the output is restricted to the named variables, which
keeps year-over-year comparisons readable.

Examples:
  statecraft trace --db ./games.db 0190b5e2-...
  statecraft trace --db ./games.db 0190b5e2-... --var Y --var PI
  statecraft trace --db ./games.db 0190b5e2-... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "variable to include (repeatable; default: all)")

	return cmd
}

func runTrace(opts *TraceOptions, gameID string, cmd *cobra.Command) error {
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

	rec, err := st.LoadGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitCommandError, "game not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to load game", err)
	}

	result := buildTrace(rec, opts.Vars)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(formatTraceText(result))
}

func buildTrace(rec *store.GameRecord, vars []string) TraceResult {
	turnsByPeriod := make(map[int]game.TurnRecord, len(rec.Turns))
	for _, turn := range rec.Turns {
		turnsByPeriod[turn.Period] = turn
	}

	result := TraceResult{
		GameID:      rec.ID,
		Character:   rec.Character,
		Seed:        rec.Seed,
		HistoryHash: rec.HistoryHash,
	}
	for _, snap := range rec.History {
		period := TracePeriod{
			Period:     snap.Period,
			Vars:       filterVars(snap.Vars, vars),
			Iterations: snap.Iterations,
			Residual:   snap.Residual,
		}
		if turn, ok := turnsByPeriod[snap.Period]; ok {
			period.Cards = turn.Cards
			period.Events = turn.Events
		}
		result.Periods = append(result.Periods, period)
	}
	return result
}

func filterVars(all map[string]float64, names []string) map[string]float64 {
	if len(names) == 0 {
		return all
	}
	out := make(map[string]float64, len(names))
	for _, name := range names {
		if v, ok := all[name]; ok {
			out[name] = v
		}
	}
	return out
}

func formatTraceText(r TraceResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %s (%s, seed %d)\n", r.GameID, r.Character, r.Seed)
	fmt.Fprintf(&b, "History hash: %s", r.HistoryHash)

	for _, p := range r.Periods {
		fmt.Fprintf(&b, "\n\nYear %d", p.Period)
		if p.Iterations > 0 {
			fmt.Fprintf(&b, " (solved in %d iterations, residual %.2g)", p.Iterations, p.Residual)
		}
		if len(p.Cards) > 0 {
			fmt.Fprintf(&b, "\n  Cards: %s", strings.Join(p.Cards, ", "))
		}
		if len(p.Events) > 0 {
			fmt.Fprintf(&b, "\n  Events: %s", strings.Join(p.Events, ", "))
		}
		names := make([]string, 0, len(p.Vars))
		for name := range p.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "\n  %-8s %.4f", name, p.Vars[name])
		}
	}
	return b.String()
}
