package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/statecraft/internal/econ"
)

func growthBaseline() econ.Vector {
	return econ.Vector{
		"theta": 0.20, "GRg": 0.03, "Rbbar": 0.03, "RA": 0,
		"ADDbl": 0.02, "ro": 0.05, "NCAR": 0.10, "NPLk": 0.005,
		"GRpr": 0.02, "GRlf": 0.02, "gamma0": 0.03, "gammar": 0.2,
		"delta": 0.1, "alpha1": 0.75, "alpha2": 0.064, "eta0": 0.1,
		"omega0": 0.02, "omega1": 0.5, "ERnorm": 0.95,
	}
}

func growthInitial() *econ.Snapshot {
	return econ.NewInitial(econ.Vector{
		"Y": 100, "Yk": 98, "C": 65, "INV": 15, "G": 20, "T": 20,
		"YD": 80, "YDe": 80, "V": 120, "K": 150, "GD": 60, "PSBR": 1.8,
		"PR": 1, "LF": 105, "N": 100, "ER": 0.95, "PI": 0.02,
		"Rb": 0.03, "Rl": 0.055, "Rm": 0.0285, "GRk": 0.03,
		"GD_GDP": 0.6, "Lhs": 8, "BUR": 0.055, "CAR": 0.12,
	})
}

func TestGrowthSystem_SolvesFromInitialState(t *testing.T) {
	sys := GrowthSystem()
	snap, err := sys.SolvePeriod(growthInitial(), growthBaseline())
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Period)
	assert.Greater(t, snap.Vars["Y"], 0.0)
	assert.Greater(t, snap.Vars["G"], 20.0, "government spending grows at GRg")
	assert.InDelta(t, 20.6, snap.Vars["G"], 1e-6)
}

func TestGrowthSystem_StockFlowIdentitiesHold(t *testing.T) {
	sys := GrowthSystem()
	prior := growthInitial()
	params := growthBaseline()

	for period := 1; period <= 5; period++ {
		snap, err := sys.SolvePeriod(prior, params)
		require.NoError(t, err, "period %d", period)
		require.Equal(t, period, snap.Period)

		v := snap.Vars
		pv := prior.Vars
		// National accounting: output equals spending.
		assert.InDelta(t, v["C"]+v["INV"]+v["G"], v["Y"], 1e-2, "period %d: Y identity", period)
		// Household wealth accumulates exactly from saving.
		assert.InDelta(t, pv["V"]+v["YD"]-v["C"], v["V"], 1e-2, "period %d: V identity", period)
		// Government debt accumulates exactly from the deficit.
		assert.InDelta(t, pv["GD"]+v["PSBR"], v["GD"], 1e-2, "period %d: GD identity", period)

		prior = snap
	}
}

func TestGrowthSystem_TaxCutRaisesOutput(t *testing.T) {
	sys := GrowthSystem()
	prior := growthInitial()

	base, err := sys.SolvePeriod(prior, growthBaseline())
	require.NoError(t, err)

	cut := growthBaseline()
	cut["theta"] = 0.18
	stimulated, err := sys.SolvePeriod(prior, cut)
	require.NoError(t, err)

	assert.Greater(t, stimulated.Vars["Y"], base.Vars["Y"],
		"a tax cut raises disposable income and output")
	assert.Less(t, stimulated.Vars["T"], base.Vars["T"])
}

func TestGrowthSystem_ParamsEchoedOnSnapshot(t *testing.T) {
	sys := GrowthSystem()
	params := growthBaseline()
	snap, err := sys.SolvePeriod(growthInitial(), params)
	require.NoError(t, err)

	assert.True(t, snap.Params.Equal(params), "snapshot records the parameters it was solved under")

	// The echo is a copy: later mutation of the caller's vector must
	// not reach into the accepted snapshot.
	params["theta"] = 0.99
	assert.Equal(t, 0.20, snap.Params["theta"])
}
