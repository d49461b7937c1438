package deck

import (
	"fmt"
	"math/rand"
)

// Deck owns the draw pile, the hand, and the discard pile for one
// game. It is exclusively held by the turn controller and mutated
// only during draws, reshuffles, and dilemma resolution.
//
// INVARIANT: multiset(pile) + multiset(hand) + multiset(discard)
// == multiset(composition) at all times.
type Deck struct {
	catalog     *Catalog
	rng         *rand.Rand
	composition []string // full multiset, mutated only by dilemmas
	pile        []string
	hand        []string
	discard     []string
}

// New builds a deck from a starting composition and shuffles the
// pile. Every name must exist in the catalog.
func New(catalog *Catalog, composition []string, rng *rand.Rand) (*Deck, error) {
	for _, name := range composition {
		if !catalog.Has(name) {
			return nil, fmt.Errorf("deck: starting composition references unknown card %q", name)
		}
	}
	d := &Deck{
		catalog:     catalog,
		rng:         rng,
		composition: append([]string(nil), composition...),
		pile:        append([]string(nil), composition...),
	}
	d.rng.Shuffle(len(d.pile), func(i, j int) {
		d.pile[i], d.pile[j] = d.pile[j], d.pile[i]
	})
	return d, nil
}

// Hand returns the card definitions currently held, in draw order.
func (d *Deck) Hand() ([]Card, error) {
	out := make([]Card, 0, len(d.hand))
	for _, name := range d.hand {
		card, err := d.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	return out, nil
}

// HandNames returns the names currently held, in draw order.
func (d *Deck) HandNames() []string {
	return append([]string(nil), d.hand...)
}

// Holds reports whether the hand contains the named card.
func (d *Deck) Holds(name string) bool {
	for _, h := range d.hand {
		if h == name {
			return true
		}
	}
	return false
}

// DiscardHand moves the whole hand to the discard pile. Called by the
// controller after a successful solve, before the next draw.
func (d *Deck) DiscardHand() {
	d.discard = append(d.discard, d.hand...)
	d.hand = nil
}

// Draw moves up to k cards from the pile into the hand. When fewer
// than k cards remain in the pile, the pile is reconstituted first:
// rebuilt from the full composition minus the cards still in hand,
// reshuffled, and the discard pile cleared. Exhaustion is therefore
// never an error.
func (d *Deck) Draw(k int) error {
	if k < 0 {
		return fmt.Errorf("deck: cannot draw %d cards", k)
	}
	if len(d.pile) < k {
		d.reconstitute()
	}
	if len(d.pile) < k {
		// Composition smaller than the requested hand: draw what exists.
		k = len(d.pile)
	}
	d.hand = append(d.hand, d.pile[:k]...)
	d.pile = d.pile[k:]
	return nil
}

// reconstitute rebuilds the pile from the full composition,
// withholding cards currently in hand so the conservation invariant
// survives a mid-hand reshuffle.
func (d *Deck) reconstitute() {
	held := countNames(d.hand)
	pile := make([]string, 0, len(d.composition))
	for _, name := range d.composition {
		if held[name] > 0 {
			held[name]--
			continue
		}
		pile = append(pile, name)
	}
	d.rng.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
	d.pile = pile
	d.discard = nil
}

// Counts returns the per-name card counts across pile, hand, and
// discard. Used by tests to assert conservation and by dilemma
// mutation reporting.
func (d *Deck) Counts() map[string]int {
	counts := countNames(d.pile)
	for name, n := range countNames(d.hand) {
		counts[name] += n
	}
	for name, n := range countNames(d.discard) {
		counts[name] += n
	}
	return counts
}

// CompositionCount returns how many copies of a name the full
// composition holds.
func (d *Deck) CompositionCount(name string) int {
	return countNames(d.composition)[name]
}

// CompositionCounts returns the per-name counts of the full
// composition.
func (d *Deck) CompositionCounts() map[string]int {
	return countNames(d.composition)
}

// Size returns the number of cards in the draw pile.
func (d *Deck) Size() int {
	return len(d.pile)
}

func countNames(names []string) map[string]int {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}
	return counts
}

// removeUpTo removes at most n occurrences of name from the slice,
// scanning front to back, and returns the new slice plus how many
// were removed.
func removeUpTo(names []string, name string, n int) ([]string, int) {
	if n <= 0 {
		return names, 0
	}
	out := names[:0]
	removed := 0
	for _, c := range names {
		if c == name && removed < n {
			removed++
			continue
		}
		out = append(out, c)
	}
	return out, removed
}
