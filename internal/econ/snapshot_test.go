package econ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitial_CopiesVars(t *testing.T) {
	cfg := Vector{"Yk": 100}
	s := NewInitial(cfg)

	cfg["Yk"] = 999
	v, err := s.Get("Yk")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v, "snapshot must not alias the configuration map")
	assert.Equal(t, 0, s.Period)
	assert.Zero(t, s.Iterations, "initial snapshot carries no solve metadata")
}

func TestSnapshot_Get_MissingVariable(t *testing.T) {
	s := NewInitial(Vector{"Yk": 100})
	_, err := s.Get("PI")
	assert.ErrorContains(t, err, `no variable "PI"`)
}

func TestHistory_Latest(t *testing.T) {
	var h History
	assert.Nil(t, h.Latest())

	s0 := NewInitial(Vector{"Yk": 100})
	s1 := &Snapshot{Period: 1, Vars: Vector{"Yk": 103}, Iterations: 4}
	h = append(h, s0, s1)
	assert.Same(t, s1, h.Latest())
}

func TestHistory_At(t *testing.T) {
	s0 := NewInitial(Vector{"Yk": 100})
	h := History{s0}

	got, err := h.At(0)
	require.NoError(t, err)
	assert.Same(t, s0, got)

	_, err = h.At(1)
	assert.Error(t, err)
	_, err = h.At(-1)
	assert.Error(t, err)
}

func TestHistory_Window(t *testing.T) {
	h := History{
		NewInitial(Vector{"Yk": 100}),
		{Period: 1, Vars: Vector{"Yk": 101}},
		{Period: 2, Vars: Vector{"Yk": 102}},
	}

	w := h.Window(2)
	require.Len(t, w, 2)
	assert.Equal(t, 1, w[0].Period)
	assert.Equal(t, 2, w[1].Period)

	assert.Len(t, h.Window(10), 3, "window larger than history returns everything")
}
