package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierIntervalsShape(t *testing.T) {
	ordinals := make([]float64, 100)
	for i := range ordinals {
		ordinals[i] = float64(100 - i)
	}

	intervals := TierIntervals(ordinals)
	require.Len(t, intervals, 14, "seven tiers, each split into plus and base half")

	// порядок от лучшего к худшему, плюс-половина первой
	assert.Equal(t, TierLeviathan, intervals[0].Name)
	assert.True(t, intervals[0].IsPlus)
	assert.Equal(t, TierLeviathan, intervals[1].Name)
	assert.False(t, intervals[1].IsPlus)
	assert.Equal(t, TierIron, intervals[13].Name)
	assert.False(t, intervals[13].IsPlus)

	// нижняя половина низшего тира - catch-all без порога
	assert.Nil(t, intervals[13].NeededOrdinal)

	// пороги не возрастают сверху вниз
	var prev *float64
	for _, in := range intervals[:13] {
		require.NotNil(t, in.NeededOrdinal, "only the catch-all interval may lack a threshold")
		if prev != nil {
			assert.LessOrEqual(t, *in.NeededOrdinal, *prev)
		}
		prev = in.NeededOrdinal
	}
}

func TestTierIntervalsEmptySeason(t *testing.T) {
	intervals := TierIntervals(nil)
	require.Len(t, intervals, 14)
	for _, in := range intervals {
		assert.Nil(t, in.NeededOrdinal)
	}
}

func TestTierOf(t *testing.T) {
	ordinals := make([]float64, 100)
	for i := range ordinals {
		ordinals[i] = float64(100 - i)
	}
	intervals := TierIntervals(ordinals)

	best := TierOf(intervals, 1000)
	assert.Equal(t, TierLeviathan, best.Name)
	assert.True(t, best.IsPlus)

	worst := TierOf(intervals, -1000)
	assert.Equal(t, TierIron, worst.Name)
	assert.False(t, worst.IsPlus)
}

func TestTierOfEveryOrdinalGetsATier(t *testing.T) {
	ordinals := []float64{12.5, 3.1, -4.2, 0, 7.7}
	intervals := TierIntervals(ordinals)

	for _, o := range ordinals {
		tier := TierOf(intervals, o)
		assert.NotEmpty(t, tier.Name)
	}
}
