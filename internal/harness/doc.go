// Package harness provides a scenario-based conformance framework
// for the game engine.
//
// A scenario is a YAML file describing one complete scripted game:
// the definition set, the seed, the character, every turn's choices,
// and assertions on the outcome. The harness plays the script
// through the real engine - real deck, real event pool, real solver
// (or the passthrough stub for hand-computable numbers) - and then
// checks two layers:
//
//  1. Structural invariants that hold for every game (contiguous
//     history, deck conservation, one turn record per period). These
//     run unconditionally; a scenario cannot opt out.
//  2. The scenario's own assertions on snapshot values, deck
//     composition, play records, final phase, and the canonical
//     history hash.
//
// Golden comparison (RunWithGolden) serializes the full history and
// turn log as canonical JSON and compares byte-for-byte against
// testdata/golden/, which pins the engine's observable behavior
// across refactors.
package harness
