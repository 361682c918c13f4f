package roller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
)

func TestSeededIsReproducible(t *testing.T) {
	a := roller.NewSeeded(42)
	b := roller.NewSeeded(42)

	for i := 0; i < 50; i++ {
		va, err := a.Roll(100)
		require.NoError(t, err)
		vb, err := b.Roll(100)
		require.NoError(t, err)
		assert.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, 1)
		assert.LessOrEqual(t, va, 100)
	}

	_, err := a.Roll(0)
	assert.Error(t, err)
}

func TestScriptedCycles(t *testing.T) {
	r := roller.NewScripted(1, 2)

	vals, err := r.RollN(3, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1}, vals)

	_, err = roller.NewScripted(7).Roll(6)
	assert.Error(t, err)
}

func TestBetween(t *testing.T) {
	v, err := roller.Between(roller.NewScripted(21), 80, 130)
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	v, err = roller.Between(roller.NewScripted(51), 80, 130)
	require.NoError(t, err)
	assert.Equal(t, 130, v)

	_, err = roller.Between(roller.NewScripted(1), 10, 5)
	assert.Error(t, err)
}

func TestChance(t *testing.T) {
	empty := roller.NewScripted()

	ok, err := roller.Chance(empty, 0)
	require.NoError(t, err)
	assert.False(t, ok, "zero chance never rolls")

	ok, err = roller.Chance(empty, 100)
	require.NoError(t, err)
	assert.True(t, ok, "certain chance never rolls")

	ok, err = roller.Chance(roller.NewScripted(roller.Face(60)), 60)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = roller.Chance(roller.NewScripted(roller.Face(60)+1), 60)
	require.NoError(t, err)
	assert.False(t, ok)
}
