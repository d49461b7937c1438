package solver

import "github.com/roach88/statecraft/internal/econ"

// GrowthSystem returns the bundled reduced growth model: a small
// stock-flow-consistent equation set with households, firms,
// government and banks, enough simultaneity to require an iterative
// solve, and lagged stocks threaded from the prior period.
//
// The parameter names match the policy card and event definitions
// (theta, GRg, Rbbar, RA, ADDbl, ro, NCAR, NPLk, GRpr, gamma0, eta0),
// so the default deck plays against this model out of the box.
//
// Equation order matters only for convergence speed, not for the
// solution: the sweep repeats until the system reaches its fixed
// point.
func GrowthSystem(opts ...Option) *FixedPoint {
	return New(growthEquations(), opts...)
}

func growthEquations() []Equation {
	return []Equation{
		// Government expenditure grows at the policy-set rate.
		{Target: "G", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["G"] * (1 + p["GRg"])
		}},
		// Labor productivity and labor force trend growth.
		{Target: "PR", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["PR"] * (1 + p["GRpr"])
		}},
		{Target: "LF", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["LF"] * (1 + p["GRlf"])
		}},
		// Interest rates: the bill rate is set exogenously by the
		// central bank; the loan rate adds the long spread and a
		// premium for non-performing loans; the deposit rate is the
		// bill rate shaved by the reserve requirement.
		{Target: "Rb", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["Rbbar"]
		}},
		{Target: "Rl", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["Rb"] + p["ADDbl"] + p["NPLk"]
		}},
		{Target: "Rm", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["Rb"] * (1 - p["ro"])
		}},
		// Taxes, disposable income, expected income, consumption.
		// YD depends on Y which depends on C: the simultaneous core.
		{Target: "T", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["theta"] * (cur["Y"] + cur["Rm"]*prior["V"])
		}},
		{Target: "YD", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["Y"] + cur["Rm"]*prior["V"] - cur["T"]
		}},
		{Target: "YDe", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["YD"] * (1 + p["RA"])
		}},
		// Consumption responds half to realized income (the
		// simultaneous channel that makes tax policy bite within the
		// period) and half to expected income (the channel the
		// confidence shock RA moves).
		{Target: "C", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["alpha1"]*(0.5*cur["YD"]+0.5*cur["YDe"]) + p["alpha2"]*prior["V"]
		}},
		// Investment: capital accumulation reacts to the real loan
		// rate and to the confidence shock.
		{Target: "GRk", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["gamma0"] + p["RA"] - p["gammar"]*(cur["Rl"]-prior["PI"])
		}},
		{Target: "INV", Fn: func(cur, prior, p econ.Vector) float64 {
			return (cur["GRk"] + p["delta"]) * prior["K"]
		}},
		{Target: "K", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["K"] * (1 + cur["GRk"])
		}},
		// National accounting identity.
		{Target: "Y", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["C"] + cur["INV"] + cur["G"]
		}},
		{Target: "Yk", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["Y"] / (1 + cur["PI"])
		}},
		// Employment and the wage Phillips curve.
		{Target: "N", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["Y"] / cur["PR"]
		}},
		{Target: "ER", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["N"] / cur["LF"]
		}},
		{Target: "PI", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["omega0"] + p["omega1"]*(cur["ER"]-p["ERnorm"])
		}},
		// Government financing: the deficit adds to the debt stock.
		{Target: "PSBR", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["G"] + cur["Rb"]*prior["GD"] - cur["T"]
		}},
		{Target: "GD", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["GD"] + cur["PSBR"]
		}},
		{Target: "GD_GDP", Fn: func(cur, prior, p econ.Vector) float64 {
			return cur["GD"] / cur["Y"]
		}},
		// Household balance sheet: saving accumulates into wealth,
		// personal loans scale with income.
		{Target: "V", Fn: func(cur, prior, p econ.Vector) float64 {
			return prior["V"] + cur["YD"] - cur["C"]
		}},
		{Target: "Lhs", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["eta0"] * cur["YD"]
		}},
		{Target: "BUR", Fn: func(cur, prior, p econ.Vector) float64 {
			if cur["YD"] == 0 {
				return 0
			}
			return cur["Rl"] * cur["Lhs"] / cur["YD"]
		}},
		// Bank capital adequacy relative to the regulatory norm.
		{Target: "CAR", Fn: func(cur, prior, p econ.Vector) float64 {
			return p["NCAR"] + p["ro"]*0.5 - p["NPLk"]
		}},
	}
}
