// Package defs loads and validates the game's definition set: the
// baseline parameter vector, the initial model state, and the card,
// event, character, and dilemma definitions, plus the table rules
// (hand size, plays per turn, final period, solver bounds).
//
// Definitions are authored in CUE. A complete default set ships
// embedded in the binary; an external directory of CUE files can
// replace it for custom scenarios. Either way the same validation
// runs before a game can start: every parameter a card or event
// touches must exist in the baseline, every trigger variable must
// exist in the initial state, and every card name a character or
// dilemma mentions must be defined. Validation failures are
// ConfigErrors - fatal at startup, never surfaced mid-game.
package defs
