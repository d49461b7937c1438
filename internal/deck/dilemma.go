package deck

import "fmt"

// DilemmaOption is one branch of a dilemma: card names added to the
// deck composition and card names removed from it.
// Repeated names add or remove multiple copies.
type DilemmaOption struct {
	Name        string   `json:"name"`
	AddCards    []string `json:"add_cards"`
	RemoveCards []string `json:"remove_cards"`
}

// Dilemma is a one-time player-resolved branch that permanently
// mutates the deck composition. The added cards are usually unique
// cards not present in any starting deck, but must be defined in the
// catalog.
type Dilemma struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Flavor  string        `json:"flavor"`
	OptionA DilemmaOption `json:"option_a"`
	OptionB DilemmaOption `json:"option_b"`
}

// Option returns the branch for the given key ("a" or "b").
func (d *Dilemma) Option(key string) (DilemmaOption, error) {
	switch key {
	case "a":
		return d.OptionA, nil
	case "b":
		return d.OptionB, nil
	}
	return DilemmaOption{}, fmt.Errorf("dilemma %s: no option %q", d.ID, key)
}

// ApplyOption permanently mutates the deck composition: added names
// join the composition and are shuffled into the pile so they can
// appear from the very next draw; removals are clamped to the copies
// actually present (never an error), taken from the pile first, then
// the discard, then the hand.
func (d *Deck) ApplyOption(opt DilemmaOption) error {
	for _, name := range opt.AddCards {
		if !d.catalog.Has(name) {
			return fmt.Errorf("dilemma option %q adds unknown card %q", opt.Name, name)
		}
	}

	for _, name := range opt.AddCards {
		d.composition = append(d.composition, name)
		d.pile = append(d.pile, name)
	}

	for _, name := range opt.RemoveCards {
		remaining := 1
		d.composition, _ = removeUpTo(d.composition, name, 1)
		d.pile, remaining = removeFrom(d.pile, name, remaining)
		d.discard, remaining = removeFrom(d.discard, name, remaining)
		d.hand, _ = removeFrom(d.hand, name, remaining)
	}

	d.rng.Shuffle(len(d.pile), func(i, j int) {
		d.pile[i], d.pile[j] = d.pile[j], d.pile[i]
	})
	return nil
}

// removeFrom removes up to n copies and returns how many are still
// owed after this slice was scanned.
func removeFrom(names []string, name string, n int) ([]string, int) {
	out, removed := removeUpTo(names, name, n)
	return out, n - removed
}
