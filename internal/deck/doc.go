// Package deck holds the card-game side of the engine: policy card
// and character definitions, the draw pile / hand / discard life
// cycle, and the one-time deck mutations dilemmas apply.
//
// DETERMINISM:
// Every shuffle runs on an injected *rand.Rand seeded from the game
// seed. Given the seed and the sequence of player choices, the card
// flow of a whole game replays identically - the engine's determinism
// property depends on it.
//
// CONSERVATION:
// The multiset of card names across (pile, hand, discard) always
// equals the deck's composition. Reshuffling reconstitutes the pile
// from the full composition minus whatever is still held in hand, so
// no card is ever duplicated or lost by drawing alone; only dilemma
// resolution changes the composition.
package deck
