package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/game"
)

// ErrNotFound reports that no game with the requested id exists.
var ErrNotFound = errors.New("store: game not found")

// GameSummary is one row of a game listing.
type GameSummary struct {
	ID          string `json:"id"`
	Seed        int64  `json:"seed"`
	Character   string `json:"character"`
	Periods     int    `json:"periods"` // stored snapshots, including period 0
	HistoryHash string `json:"history_hash"`
	CreatedAt   string `json:"created_at"`
}

// LoadGame reads a complete game record: the game row, every
// snapshot in period order, and every turn record.
func (s *Store) LoadGame(ctx context.Context, gameID string) (*GameRecord, error) {
	rec := &GameRecord{ID: gameID}

	var scriptJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT seed, character, script, history_hash
		FROM games
		WHERE id = ?
	`, gameID).Scan(&rec.Seed, &rec.Character, &scriptJSON, &rec.HistoryHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	rec.Script, err = unmarshalScript(scriptJSON)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	rec.History, err = s.ReadHistory(ctx, gameID)
	if err != nil {
		return nil, err
	}

	rec.Turns, err = s.ReadTurns(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ReadHistory returns the stored snapshots for a game in period
// order. The slice index equals the period number when the stored
// history is contiguous; VerifyReplay checks that it is.
//
// Returns an empty history (not nil) if no snapshots exist.
func (s *Store) ReadHistory(ctx context.Context, gameID string) (econ.History, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT body
		FROM snapshots
		WHERE game_id = ?
		ORDER BY period ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	history := econ.History{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap, err := unmarshalSnapshot(body)
		if err != nil {
			return nil, err
		}
		history = append(history, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	return history, nil
}

// ReadTurns returns the stored turn records for a game in period
// order.
//
// Returns an empty slice (not nil) if no turns exist.
func (s *Store) ReadTurns(ctx context.Context, gameID string) ([]game.TurnRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, cards, events
		FROM turns
		WHERE game_id = ?
		ORDER BY period ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	turns := []game.TurnRecord{}
	for rows.Next() {
		var (
			turn       game.TurnRecord
			cardsJSON  string
			eventsJSON string
		)
		if err := rows.Scan(&turn.Period, &cardsJSON, &eventsJSON); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if turn.Cards, err = unmarshalNames(cardsJSON); err != nil {
			return nil, err
		}
		if turn.Events, err = unmarshalNames(eventsJSON); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}

	return turns, nil
}

// ListGames returns a summary row for every stored game, newest
// first; ties break on id so the order is deterministic.
func (s *Store) ListGames(ctx context.Context) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.seed, g.character, g.history_hash, g.created_at,
		       COUNT(s.period)
		FROM games g
		LEFT JOIN snapshots s ON s.game_id = g.id
		GROUP BY g.id
		ORDER BY g.created_at DESC, g.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	summaries := []GameSummary{}
	for rows.Next() {
		var sum GameSummary
		if err := rows.Scan(&sum.ID, &sum.Seed, &sum.Character, &sum.HistoryHash, &sum.CreatedAt, &sum.Periods); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	return summaries, nil
}
