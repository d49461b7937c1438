package deck

// BonusCriterion names one (category, stance) pair a character's
// bonus applies to.
type BonusCriterion struct {
	Category Category `json:"category"`
	Stance   Stance   `json:"stance"`
}

// Bonus is a character's card affinity: deltas of matching cards are
// scaled by Multiplier when composed. Events never receive bonuses.
type Bonus struct {
	Criteria   []BonusCriterion `json:"criteria"`
	Multiplier float64          `json:"multiplier"`
}

// Applies reports whether the bonus covers the given card.
func (b Bonus) Applies(card Card) bool {
	for _, crit := range b.Criteria {
		if crit.Category == card.Category && crit.Stance == card.Stance {
			return true
		}
	}
	return false
}

// Objective is one end-of-game target evaluated against the final
// snapshot: Var Op Target, e.g. "PI <= 0.02".
type Objective struct {
	Label  string  `json:"label"`
	Var    string  `json:"var"`
	Op     string  `json:"op"` // one of ">=", "<=", ">", "<"
	Target float64 `json:"target"`
}

// Met evaluates the objective against a variable value.
func (o Objective) Met(value float64) bool {
	switch o.Op {
	case ">=":
		return value >= o.Target
	case "<=":
		return value <= o.Target
	case ">":
		return value > o.Target
	case "<":
		return value < o.Target
	}
	return false
}

// Character is an immutable archetype chosen once before play begins.
// It fixes the starting deck composition and the bonus rule for the
// whole game.
type Character struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Desc         string      `json:"desc"`
	StartingDeck []string    `json:"starting_deck"` // card-name multiset
	Bonus        Bonus       `json:"bonus"`
	Objectives   []Objective `json:"objectives"`
}
