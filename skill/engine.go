// Package skill wraps the openskill rating model (Plackett-Luce) used for
// seasonal player and team ratings. Everything here is pure math over
// in-memory values; persistence of rating rows lives in repositories.
package skill

import (
	"math"

	"github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
)

const (
	defaultMu    = 25.0
	defaultSigma = defaultMu / 3

	// Tau is the fixed dynamics constant: how much skill is assumed to
	// drift between matches. Not user-configurable.
	Tau = 25.0 / 300
)

// DefaultRating is the prior for an entity with no stored rating rows.
func DefaultRating() types.Rating {
	return types.Rating{Mu: defaultMu, Sigma: defaultSigma}
}

// Ordinal collapses a rating to a single conservative scalar used for
// ranking. Internal ranking must always use this raw value, never the
// rounded display score.
func Ordinal(r types.Rating) float64 {
	return r.Mu - 3*r.Sigma
}

// ToDisplayScore maps an ordinal to the human-facing score shown in the
// UI, rounded to two decimals. Display only.
func ToDisplayScore(ordinal float64) float64 {
	return math.Round((ordinal*10+1000)*100) / 100
}

// Rate returns post-match ratings for every participant given pre-match
// ratings grouped by team in result order (index 0 = winning team). The
// outcome signal is solely the ordering of teams; margin of victory is
// ignored. The returned slices have the same shape as the input, the
// input is not mutated.
//
// tau inflates every sigma before the update so ratings stay responsive
// over a long season. With preventSigmaIncrease each participant's sigma
// is clamped to its pre-match value, so uncertainty never grows from a
// single noisy result.
func Rate(teams [][]types.Rating, tau float64, preventSigmaIncrease bool) [][]types.Rating {
	inflated := make([]types.Team, len(teams))
	for i, team := range teams {
		t := make(types.Team, len(team))
		for j, r := range team {
			r.Sigma = math.Sqrt(r.Sigma*r.Sigma + tau*tau)
			t[j] = r
		}
		inflated[i] = t
	}

	rated := rating.Rate(inflated, nil)

	result := make([][]types.Rating, len(rated))
	for i, team := range rated {
		result[i] = make([]types.Rating, len(team))
		for j, r := range team {
			if preventSigmaIncrease && r.Sigma > teams[i][j].Sigma {
				r.Sigma = teams[i][j].Sigma
			}
			result[i][j] = r
		}
	}

	return result
}
