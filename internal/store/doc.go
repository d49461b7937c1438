// Package store provides SQLite-backed durable storage for finished
// games.
//
// The store keeps three tables per game:
//   - Games: identity, seed, character, the replay script, and the
//     canonical history hash
//   - Snapshots: one canonical-JSON body per solved period
//   - Turns: the cards played and events fired each period
//
// # Critical Patterns
//
// CP-1: Structural Idempotency
//   - Every insert uses ON CONFLICT DO NOTHING
//   - Saving the same game twice is a no-op; there is no replay mode
//
// CP-2: Canonical Bytes
//   - Snapshot bodies are canonical JSON (sorted keys, NFC strings,
//     shortest round-trip floats), so stored bytes are hashable and
//     byte-comparable across runs
//
// CP-3: Deterministic Query Results
//   - All per-game queries ORDER BY period ASC
//   - Listings order by created_at DESC with id as tie-break
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Hashes are computed in internal/econ using canonical JSON and
// SHA-256 with domain separation, which is what makes VerifyReplay
// able to prove a stored game still reproduces.
package store
