package econ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Clone_Independent(t *testing.T) {
	v := Vector{"theta": 0.2, "GRg": 0.03}
	c := v.Clone()

	c["theta"] = 0.5
	assert.Equal(t, 0.2, v["theta"], "mutating the clone must not touch the original")
	assert.Equal(t, 0.5, c["theta"])
}

func TestVector_Clone_NilIsEmpty(t *testing.T) {
	var v Vector
	c := v.Clone()
	assert.NotNil(t, c)
	assert.Len(t, c, 0)
}

func TestVector_Names_Sorted(t *testing.T) {
	v := Vector{"theta": 0.2, "ADDbl": 0.02, "GRg": 0.03}
	assert.Equal(t, []string{"ADDbl", "GRg", "theta"}, v.Names())
}

func TestVector_Equal(t *testing.T) {
	a := Vector{"theta": 0.2, "GRg": 0.03}
	b := Vector{"GRg": 0.03, "theta": 0.2}
	assert.True(t, a.Equal(b))

	b["theta"] = 0.18
	assert.False(t, a.Equal(b), "different values must not compare equal")

	c := Vector{"theta": 0.2}
	assert.False(t, a.Equal(c), "different sizes must not compare equal")

	d := Vector{"theta": 0.2, "Rbbar": 0.03}
	assert.False(t, a.Equal(d), "different names must not compare equal")
}

func TestVector_Has(t *testing.T) {
	v := Vector{"theta": 0.0}
	assert.True(t, v.Has("theta"), "zero value still counts as present")
	assert.False(t, v.Has("GRg"))
}
