package store

import (
	"context"
	"fmt"

	"github.com/roach88/statecraft/internal/game"
)

// VerifyReplay checks a stored game against the engine in three
// stages:
//
//  1. Structure: the stored history is contiguous from period 0 and
//     each snapshot body still matches its stored hash.
//  2. Integrity: the stored history hashes to games.history_hash.
//  3. Reproducibility: running the stored script against the given
//     definition set produces that same hash.
//
// A stage-1 or stage-2 failure means the archive was corrupted or
// edited. A stage-3 failure means the definitions or the engine no
// longer reproduce the stored game - the archive is intact but
// stale.
func (s *Store) VerifyReplay(ctx context.Context, gameID string, cfg game.Config) error {
	rec, err := s.LoadGame(ctx, gameID)
	if err != nil {
		return err
	}

	if len(rec.History) == 0 {
		return fmt.Errorf("verify replay: game %s has no snapshots", gameID)
	}
	for i, snap := range rec.History {
		if snap.Period != i {
			return fmt.Errorf("verify replay: game %s history gap: snapshot %d has period %d", gameID, i, snap.Period)
		}
	}
	if err := s.verifySnapshotHashes(ctx, gameID, rec); err != nil {
		return err
	}

	got, err := rec.History.Hash()
	if err != nil {
		return fmt.Errorf("verify replay: %w", err)
	}
	if got != rec.HistoryHash {
		return fmt.Errorf("verify replay: game %s stored history hashes to %s, recorded as %s", gameID, got, rec.HistoryHash)
	}

	if err := game.Verify(cfg, rec.Script, rec.HistoryHash); err != nil {
		return fmt.Errorf("verify replay: game %s: %w", gameID, err)
	}
	return nil
}

// verifySnapshotHashes recomputes each stored body's hash and
// compares it against the hash column.
func (s *Store) verifySnapshotHashes(ctx context.Context, gameID string, rec *GameRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, hash
		FROM snapshots
		WHERE game_id = ?
		ORDER BY period ASC
	`, gameID)
	if err != nil {
		return fmt.Errorf("query snapshot hashes: %w", err)
	}
	defer rows.Close()

	stored := make(map[int]string, len(rec.History))
	for rows.Next() {
		var (
			period int
			hash   string
		)
		if err := rows.Scan(&period, &hash); err != nil {
			return fmt.Errorf("scan snapshot hash: %w", err)
		}
		stored[period] = hash
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate snapshot hashes: %w", err)
	}

	for _, snap := range rec.History {
		want, err := snap.Hash()
		if err != nil {
			return fmt.Errorf("verify replay: %w", err)
		}
		if got := stored[snap.Period]; got != want {
			return fmt.Errorf("verify replay: game %s snapshot %d body hashes to %s, stored as %s", gameID, snap.Period, want, got)
		}
	}
	return nil
}
