package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/statecraft/internal/deck"
	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/event"
)

func baseline() econ.Vector {
	return econ.Vector{"theta": 0.20, "GRg": 0.03, "RA": 0}
}

func taxCut() deck.Card {
	return deck.Card{
		Name:     "Cut Income Tax Rate",
		Category: deck.CategoryFiscal,
		Stance:   deck.StanceExpansionary,
		Effects:  []deck.Effect{{Param: "theta", Delta: -0.02}},
	}
}

func TestCompose_EmptyInputsEqualBaseline(t *testing.T) {
	ch := &deck.Character{Name: "The Money Monk", Bonus: deck.Bonus{Multiplier: 1.5}}
	out, err := Compose(baseline(), nil, nil, ch)
	require.NoError(t, err)
	assert.True(t, out.Equal(baseline()), "composing nothing must be the identity")
}

func TestCompose_DoesNotMutateBaseline(t *testing.T) {
	base := baseline()
	_, err := Compose(base, nil, []deck.Card{taxCut()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.20, base["theta"], "baseline must stay untouched")
}

func TestCompose_CardDeltaApplied(t *testing.T) {
	out, err := Compose(baseline(), nil, []deck.Card{taxCut()}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.18, out["theta"], 1e-12)
	assert.Equal(t, 0.03, out["GRg"], "untouched parameters pass through")
}

func TestCompose_BonusMultiplierOnMatchingCard(t *testing.T) {
	ch := &deck.Character{
		Name: "The Demand Side Devotee",
		Bonus: deck.Bonus{
			Criteria:   []deck.BonusCriterion{{Category: deck.CategoryFiscal, Stance: deck.StanceExpansionary}},
			Multiplier: 1.5,
		},
	}

	out, err := Compose(baseline(), nil, []deck.Card{taxCut()}, ch)
	require.NoError(t, err)
	assert.InDelta(t, 0.20-0.02*1.5, out["theta"], 1e-12, "matching card delta scales by the multiplier")
}

func TestCompose_NoBonusOnNonMatchingCard(t *testing.T) {
	ch := &deck.Character{
		Name: "The Money Monk",
		Bonus: deck.Bonus{
			Criteria:   []deck.BonusCriterion{{Category: deck.CategoryMonetary, Stance: deck.StanceContractionary}},
			Multiplier: 1.5,
		},
	}

	out, err := Compose(baseline(), nil, []deck.Card{taxCut()}, ch)
	require.NoError(t, err)
	assert.InDelta(t, 0.18, out["theta"], 1e-12, "non-matching card delta is unchanged")
}

func TestCompose_EventsNeverReceiveBonus(t *testing.T) {
	ch := &deck.Character{
		Name: "The Demand Side Devotee",
		Bonus: deck.Bonus{
			Criteria:   []deck.BonusCriterion{{Category: deck.CategoryFiscal, Stance: deck.StanceExpansionary}},
			Multiplier: 2.0,
		},
	}
	shock := event.Event{
		Name:    "Global Recession",
		Effects: []deck.Effect{{Param: "RA", Delta: -0.025}},
	}

	out, err := Compose(baseline(), []event.Event{shock}, nil, ch)
	require.NoError(t, err)
	assert.Equal(t, -0.025, out["RA"])
}

func TestCompose_EventsBeforeCards(t *testing.T) {
	// Both touch the same parameter; additive effects commute, so the
	// observable contract is the summed result.
	shock := event.Event{Name: "Austerity Push", Effects: []deck.Effect{{Param: "GRg", Delta: -0.01}}}
	spend := deck.Card{Name: "Increase Government Spending", Category: deck.CategoryFiscal,
		Stance: deck.StanceExpansionary, Effects: []deck.Effect{{Param: "GRg", Delta: 0.005}}}

	out, err := Compose(baseline(), []event.Event{shock}, []deck.Card{spend}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.03-0.01+0.005, out["GRg"], 1e-12)
}

func TestCompose_UnknownCardParamRejected(t *testing.T) {
	bad := deck.Card{Name: "Mystery Lever", Effects: []deck.Effect{{Param: "xyzzy", Delta: 1}}}

	_, err := Compose(baseline(), nil, []deck.Card{bad}, nil)
	require.Error(t, err)
	assert.True(t, econ.IsConfigError(err))
	assert.ErrorContains(t, err, `card "Mystery Lever" references unknown name "xyzzy"`)
}

func TestCompose_UnknownEventParamRejected(t *testing.T) {
	bad := event.Event{Name: "Mystery Shock", Effects: []deck.Effect{{Param: "xyzzy", Delta: 1}}}

	_, err := Compose(baseline(), []event.Event{bad}, nil, nil)
	require.Error(t, err)
	assert.True(t, econ.IsConfigError(err))
}

func TestCompose_ExampleScenario(t *testing.T) {
	// Baseline {theta: 0.20, GRg: 0.03}, one card {theta: -0.02}, no
	// bonus: the composed vector is {theta: 0.18, GRg: 0.03}.
	base := econ.Vector{"theta": 0.20, "GRg": 0.03}
	out, err := Compose(base, nil, []deck.Card{taxCut()}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.18, out["theta"], 1e-12)
	assert.Equal(t, 0.03, out["GRg"])
	assert.Len(t, out, 2)
}
