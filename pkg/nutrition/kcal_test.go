package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKcalZeroVector(t *testing.T) {
	assert.Equal(t, 0, Kcal(Vector{}))
}

func TestKcalReferenceVector(t *testing.T) {
	v := Vector{Protein: 10, Fat: 5, Carbs: 20, Fibers: 5}
	// net carbs 15: 10*3 + 15*3.7 + 5*2 + 5*9 = 140.5, rounds half-up
	assert.Equal(t, 141, Kcal(v))
	assert.InDelta(t, 140.5, KcalValue(v), 1e-9)
}

func TestKcalNeverNegative(t *testing.T) {
	cases := []Vector{
		{},
		{Protein: 10},
		{Fat: 3.5},
		{Fibers: 8},
		{Carbs: 2, Fibers: 10}, // gross-carb data error: net carbs clamps to 0
		{Protein: 1, Fat: 1, Carbs: 1, Fibers: 1},
	}
	for _, v := range cases {
		assert.GreaterOrEqual(t, Kcal(v), 0)
	}
}

func TestNetCarbsClampsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, NetCarbs(Vector{Carbs: 5, Fibers: 12}))
	assert.Equal(t, 15.0, NetCarbs(Vector{Carbs: 20, Fibers: 5}))
}

func TestKcalEquivalent(t *testing.T) {
	v := Vector{Protein: 10, Fat: 5, Carbs: 20, Fibers: 5}

	got, ok := KcalEquivalent(v, Protein)
	assert.True(t, ok)
	assert.InDelta(t, 30, got, 1e-9)

	got, ok = KcalEquivalent(v, Fat)
	assert.True(t, ok)
	assert.InDelta(t, 45, got, 1e-9)

	got, ok = KcalEquivalent(v, Carbs)
	assert.True(t, ok)
	assert.InDelta(t, 55.5, got, 1e-9) // net carbs 15 x 3.7

	got, ok = KcalEquivalent(v, Fibers)
	assert.True(t, ok)
	assert.InDelta(t, 10, got, 1e-9)

	_, ok = KcalEquivalent(v, Sugar)
	assert.False(t, ok)
}
