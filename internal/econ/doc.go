// Package econ defines the value types shared by every part of the
// simulation engine: parameter vectors, solved period snapshots, and
// the append-only history of a game.
//
// DESIGN PRINCIPLES:
//
// Immutability by convention:
// Snapshots are never mutated after construction. The engine threads
// lagged variables from period N into the solve for period N+1 by
// reading the previous Snapshot, never by editing it. History only
// appends.
//
// Canonical serialization:
// Determinism is a testable property of the engine (same seed, same
// choices, identical history byte-for-byte). MarshalCanonical produces
// a stable JSON encoding - sorted keys, NFC-normalized strings,
// shortest round-trip float formatting - and Hash derives a
// content-addressed identity from it. Two runs are equal iff their
// snapshot hashes are equal.
package econ
