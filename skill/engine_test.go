package skill

import (
	"testing"

	"github.com/intinig/go-openskill/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRating(t *testing.T) {
	r := DefaultRating()
	assert.Equal(t, 25.0, r.Mu)
	assert.InDelta(t, 25.0/3, r.Sigma, 1e-9)
}

func TestOrdinal(t *testing.T) {
	assert.InDelta(t, 0.0, Ordinal(DefaultRating()), 1e-9)
	assert.InDelta(t, 14.0, Ordinal(types.Rating{Mu: 20, Sigma: 2}), 1e-9)
}

func TestToDisplayScore(t *testing.T) {
	// новичок с нулевым ординалом стартует ровно с 1000
	assert.Equal(t, 1000.0, ToDisplayScore(0))
	assert.Equal(t, 1150.0, ToDisplayScore(15))
	assert.Equal(t, 850.0, ToDisplayScore(-15))
	// округление до двух знаков
	assert.Equal(t, 1012.35, ToDisplayScore(1.23456))
}

func TestRateWinnerGainsLoserLoses(t *testing.T) {
	teams := [][]types.Rating{
		{DefaultRating(), DefaultRating()},
		{DefaultRating(), DefaultRating()},
	}

	rated := Rate(teams, Tau, true)
	require.Len(t, rated, 2)
	require.Len(t, rated[0], 2)
	require.Len(t, rated[1], 2)

	for _, r := range rated[0] {
		assert.Greater(t, r.Mu, 25.0, "winner mu must increase")
	}
	for _, r := range rated[1] {
		assert.Less(t, r.Mu, 25.0, "loser mu must decrease")
	}
}

func TestRateDoesNotMutateInput(t *testing.T) {
	teams := [][]types.Rating{
		{{Mu: 27, Sigma: 7}},
		{{Mu: 23, Sigma: 8}},
	}

	Rate(teams, Tau, true)

	assert.Equal(t, 27.0, teams[0][0].Mu)
	assert.Equal(t, 7.0, teams[0][0].Sigma)
	assert.Equal(t, 23.0, teams[1][0].Mu)
	assert.Equal(t, 8.0, teams[1][0].Sigma)
}

func TestRateSigmaNeverIncreases(t *testing.T) {
	teams := [][]types.Rating{
		{{Mu: 30, Sigma: 2}, {Mu: 24, Sigma: 8}},
		{{Mu: 25, Sigma: 5}, {Mu: 26, Sigma: 1}},
	}

	rated := Rate(teams, Tau, true)

	for i := range teams {
		for j := range teams[i] {
			assert.LessOrEqual(t, rated[i][j].Sigma, teams[i][j].Sigma,
				"sigma of participant %d/%d grew despite the clamp", i, j)
		}
	}
}

func TestRateUnevenTeamSizes(t *testing.T) {
	// группа из трёх победила группу из четырёх
	teams := [][]types.Rating{
		{DefaultRating(), DefaultRating(), DefaultRating()},
		{DefaultRating(), DefaultRating(), DefaultRating(), DefaultRating()},
	}

	rated := Rate(teams, Tau, true)
	require.Len(t, rated[0], 3)
	require.Len(t, rated[1], 4)
}
