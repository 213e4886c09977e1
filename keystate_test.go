package rl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStateSetClear(t *testing.T) {
	tab, reg := newTestRegistry(t)
	for _, k := range tab.Keys() {
		if _, release := k.Released(); release {
			continue
		}
		other := ID(KeyLQ)
		if k == KeyLQ {
			other = ID(KeyLZ)
		}
		s := reg.NewKeyState().Set(other).Set(ID(k))
		require.True(t, s.Test(ID(k)), k.String())

		s.Clear(ID(k))
		assert.False(t, s.Test(ID(k)), k.String())
		assert.True(t, s.Test(other), k.String())
		assert.True(t, s.Equal(reg.NewKeyState().Set(other)), k.String())
	}
}

func TestKeyStateTestUnknownID(t *testing.T) {
	_, reg := newTestRegistry(t)
	n := reg.Len()
	s := reg.NewKeyState()
	assert.False(t, s.Test(CharID("never seen")))
	assert.Equal(t, n, reg.Len())

	var nilState *KeyState
	assert.False(t, nilState.Test(ID(KeyLA)))
}

func TestKeyStateWidensAfterGrowth(t *testing.T) {
	_, reg := newTestRegistry(t)
	s := reg.NewKeyState().Set(ID(KeyD5)).Set(ID(KeyLeftShift))
	old := s.Len()

	growRegistry(t, reg, "w")
	require.Greater(t, reg.Words(), old)
	assert.Equal(t, old, s.Len())
	assert.True(t, s.Test(ID(KeyD5)))

	c := s.Clone()
	assert.Equal(t, reg.Words(), c.Len())
	assert.True(t, c.Test(ID(KeyD5)))
	assert.True(t, c.Test(ID(KeyLeftShift)))
	assert.True(t, c.Equal(s))

	id := CharID("late")
	s.Set(id)
	assert.Equal(t, reg.Words(), s.Len())
	assert.True(t, s.Test(id))
	assert.True(t, s.Test(ID(KeyD5)))
	assert.True(t, s.Test(ID(KeyLeftShift)))
	assert.False(t, c.Test(id))
}

func TestKeyStateClone(t *testing.T) {
	_, reg := newTestRegistry(t)
	s := reg.NewKeyState().Set(ID(KeyLA))
	c := s.Clone()
	s.Clear(ID(KeyLA)).Set(ID(KeyLB))

	assert.True(t, c.Test(ID(KeyLA)))
	assert.False(t, c.Test(ID(KeyLB)))
	assert.False(t, s.Equal(c))
}

func TestKeyStateClearAll(t *testing.T) {
	_, reg := newTestRegistry(t)
	s := reg.NewKeyState()
	assert.True(t, s.Empty())
	s.Set(ID(KeyF1)).Set(CharID("€"))
	assert.False(t, s.Empty())
	assert.True(t, s.ClearAll().Empty())
}

func TestKeyStateWordsCopy(t *testing.T) {
	_, reg := newTestRegistry(t)
	s := reg.NewKeyState().Set(ID(KeyUnknown))
	w := s.Words()
	require.Len(t, w, s.Len())
	assert.Equal(t, uint32(1), w[0])
	w[0] = 0
	assert.True(t, s.Test(ID(KeyUnknown)))
}

func TestKeyStateBitRows(t *testing.T) {
	_, reg := newTestRegistry(t)
	s := reg.NewKeyState()
	rows := s.BitRows()
	require.Len(t, rows, 2*s.Len())
	for _, row := range rows {
		assert.Equal(t, strings.Repeat("0", 16), row)
	}

	s.Set(ID(KeyUnknown))
	rows = s.BitRows()
	assert.Equal(t, strings.Repeat("0", 15)+"1", rows[len(rows)-1])
}
