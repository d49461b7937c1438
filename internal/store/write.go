package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/game"
)

// GameRecord is one complete stored game: identity, the replay
// script that reproduces it, and the results it produced.
type GameRecord struct {
	ID          string
	Seed        int64
	Character   string
	Script      game.Script
	History     econ.History
	Turns       []game.TurnRecord
	HistoryHash string
}

// SaveGame writes a complete game record in a single transaction.
// Every insert uses ON CONFLICT DO NOTHING, so saving the same game
// twice is a no-op: idempotency is structural, not a replay mode.
func (s *Store) SaveGame(ctx context.Context, rec GameRecord) error {
	scriptJSON, err := marshalScript(rec.Script)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save game: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, seed, character, script, history_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Seed,
		rec.Character,
		scriptJSON,
		rec.HistoryHash,
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	for _, snap := range rec.History {
		if err := writeSnapshotTx(ctx, tx, rec.ID, snap); err != nil {
			return fmt.Errorf("save game: %w", err)
		}
	}

	for _, turn := range rec.Turns {
		if err := writeTurnTx(ctx, tx, rec.ID, turn); err != nil {
			return fmt.Errorf("save game: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save game: commit: %w", err)
	}
	return nil
}

// WriteSnapshot inserts one snapshot row for a game.
// Duplicate (game_id, period) pairs are silently ignored; the first
// write wins, which is correct because snapshots are immutable.
func (s *Store) WriteSnapshot(ctx context.Context, gameID string, snap *econ.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := writeSnapshotTx(ctx, tx, gameID, snap); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write snapshot: commit: %w", err)
	}
	return nil
}

// txExecer lets the row writers run inside any transaction.
type txExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func writeSnapshotTx(ctx context.Context, tx txExecer, gameID string, snap *econ.Snapshot) error {
	body, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}
	hash, err := snap.Hash()
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (game_id, period, hash, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id, period) DO NOTHING
	`,
		gameID,
		snap.Period,
		hash,
		body,
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func writeTurnTx(ctx context.Context, tx txExecer, gameID string, turn game.TurnRecord) error {
	cardsJSON, err := marshalNames(turn.Cards)
	if err != nil {
		return err
	}
	eventsJSON, err := marshalNames(turn.Events)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO turns (game_id, period, cards, events)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id, period) DO NOTHING
	`,
		gameID,
		turn.Period,
		cardsJSON,
		eventsJSON,
	)
	if err != nil {
		return fmt.Errorf("write turn: %w", err)
	}
	return nil
}

// DeleteGame removes a game and, via ON DELETE CASCADE, its
// snapshots and turns.
func (s *Store) DeleteGame(ctx context.Context, gameID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}
