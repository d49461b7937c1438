package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/statecraft/internal/deck"
	"github.com/roach88/statecraft/internal/defs"
	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/game"
	"github.com/roach88/statecraft/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// storeDefs is a minimal definition set for driving real games
// through the store.
func storeDefs() *defs.Definitions {
	return &defs.Definitions{
		Rules: defs.Rules{
			HandSize:         2,
			DrawPerTurn:      2,
			MaxPlaysPerTurn:  1,
			MaxEventsPerTurn: 2,
			FinalPeriod:      2,
			Tolerance:        1e-4,
			MaxIterations:    100,
		},
		Baseline: econ.Vector{"theta": 0.20},
		Initial:  econ.Vector{"Y": 100},
		Cards: []deck.Card{
			{Name: "tax_cut", Category: deck.CategoryFiscal, Stance: deck.StanceExpansionary,
				Effects: []deck.Effect{{Param: "theta", Delta: -0.02}}},
		},
		Characters: []deck.Character{
			{
				ID:           "chancellor",
				Name:         "The Chancellor",
				StartingDeck: []string{"tax_cut", "tax_cut", "tax_cut", "tax_cut"},
				Bonus:        deck.Bonus{Multiplier: 1},
			},
		},
	}
}

func finishedGame(t *testing.T) GameRecord {
	t.Helper()
	script := game.Script{
		Seed:      7,
		Character: "chancellor",
		Turns:     []game.ScriptTurn{{Cards: []string{"tax_cut"}}, {}},
	}
	session, err := game.Run(game.Config{Defs: storeDefs(), System: testutil.NewPassthroughSystem()}, script)
	require.NoError(t, err)

	hash, err := session.History().Hash()
	require.NoError(t, err)

	return GameRecord{
		ID:          session.ID(),
		Seed:        session.Seed(),
		Character:   session.Character().ID,
		Script:      script,
		History:     session.History(),
		Turns:       session.Turns(),
		HistoryHash: hash,
	}
}

func TestOpen_AppliesPragmasAndMigrations(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.verifyPragma("journal_mode", "wal"))
	require.NoError(t, s.verifyPragma("foreign_keys", "1"))

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSaveGame_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)

	require.NoError(t, s.SaveGame(ctx, rec))

	loaded, err := s.LoadGame(ctx, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, loaded.ID)
	assert.Equal(t, rec.Seed, loaded.Seed)
	assert.Equal(t, rec.Character, loaded.Character)
	assert.Equal(t, rec.Script, loaded.Script)
	assert.Equal(t, rec.HistoryHash, loaded.HistoryHash)
	assert.Equal(t, rec.Turns, loaded.Turns)

	// Snapshots survive the canonical round trip hash-identically.
	require.Len(t, loaded.History, len(rec.History))
	for i := range rec.History {
		want, err := rec.History[i].Hash()
		require.NoError(t, err)
		got, err := loaded.History[i].Hash()
		require.NoError(t, err)
		assert.Equal(t, want, got, "snapshot %d", i)
	}
}

func TestSaveGame_IsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)

	require.NoError(t, s.SaveGame(ctx, rec))
	require.NoError(t, s.SaveGame(ctx, rec))

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, len(rec.History), games[0].Periods)
}

func TestLoadGame_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadGame(context.Background(), "no-such-game")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReadHistory_OrderedByPeriod(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)
	require.NoError(t, s.SaveGame(ctx, rec))

	history, err := s.ReadHistory(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, snap := range history {
		assert.Equal(t, i, snap.Period)
	}
}

func TestReadHistory_EmptyForUnknownGame(t *testing.T) {
	s := openTestStore(t)

	history, err := s.ReadHistory(context.Background(), "no-such-game")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestWriteSnapshot_FirstWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)
	require.NoError(t, s.SaveGame(ctx, rec))

	// A conflicting rewrite of period 0 is silently ignored.
	other := econ.NewInitial(econ.Vector{"Y": -1})
	require.NoError(t, s.WriteSnapshot(ctx, rec.ID, other))

	history, err := s.ReadHistory(ctx, rec.ID)
	require.NoError(t, err)
	v, err := history[0].Get("Y")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestDeleteGame_CascadesToChildren(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)
	require.NoError(t, s.SaveGame(ctx, rec))

	require.NoError(t, s.DeleteGame(ctx, rec.ID))

	history, err := s.ReadHistory(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	turns, err := s.ReadTurns(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestVerifyReplay_PassesForIntactGame(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)
	require.NoError(t, s.SaveGame(ctx, rec))

	cfg := game.Config{Defs: storeDefs(), System: testutil.NewPassthroughSystem()}
	require.NoError(t, s.VerifyReplay(ctx, rec.ID, cfg))
}

func TestVerifyReplay_DetectsTamperedSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)
	require.NoError(t, s.SaveGame(ctx, rec))

	_, err := s.db.ExecContext(ctx, `
		UPDATE snapshots SET body = replace(body, '100', '999')
		WHERE game_id = ? AND period = 0
	`, rec.ID)
	require.NoError(t, err)

	cfg := game.Config{Defs: storeDefs(), System: testutil.NewPassthroughSystem()}
	err = s.VerifyReplay(ctx, rec.ID, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hashes to")
}

func TestVerifyReplay_DetectsChangedDefinitions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := finishedGame(t)
	require.NoError(t, s.SaveGame(ctx, rec))

	// A recalibrated baseline no longer reproduces the stored game.
	d := storeDefs()
	d.Baseline["theta"] = 0.30
	cfg := game.Config{Defs: d, System: testutil.NewPassthroughSystem()}

	err := s.VerifyReplay(ctx, rec.ID, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
}
