package deck

import "fmt"

// Category classifies a policy card by instrument.
type Category string

// Stance classifies a policy card by intended macro direction.
type Stance string

const (
	CategoryFiscal   Category = "fiscal"
	CategoryMonetary Category = "monetary"

	StanceExpansionary   Stance = "expansionary"
	StanceContractionary Stance = "contractionary"
)

// Effect is one parameter adjustment a card or event applies:
// parameters[Param] += Delta when it resolves.
type Effect struct {
	Param string  `json:"param"`
	Delta float64 `json:"delta"`
}

// Card is an immutable policy card definition. Cards are value
// objects: a deck holds names referencing these definitions, possibly
// with repetition.
type Card struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Stance   Stance   `json:"stance"`
	Effects  []Effect `json:"effects"`
	Desc     string   `json:"desc"`
}

// Catalog is the full set of card definitions for a game, in
// declaration order. Lookup is by unique name.
type Catalog struct {
	cards  []Card
	byName map[string]Card
}

// NewCatalog builds a catalog from definitions, rejecting duplicate
// names. Declaration order is preserved.
func NewCatalog(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards:  make([]Card, len(cards)),
		byName: make(map[string]Card, len(cards)),
	}
	copy(c.cards, cards)
	for _, card := range cards {
		if _, dup := c.byName[card.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate card name %q", card.Name)
		}
		c.byName[card.Name] = card
	}
	return c, nil
}

// Lookup returns the card definition for a name.
func (c *Catalog) Lookup(name string) (Card, error) {
	card, ok := c.byName[name]
	if !ok {
		return Card{}, fmt.Errorf("catalog: no card named %q", name)
	}
	return card, nil
}

// Has reports whether a card name is defined.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Cards returns the definitions in declaration order.
// The returned slice is a copy.
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}
