package skill

import (
	"math"
	"sort"
)

const (
	TierLeviathan = "LEVIATHAN"
	TierDiamond   = "DIAMOND"
	TierPlatinum  = "PLATINUM"
	TierGold      = "GOLD"
	TierSilver    = "SILVER"
	TierBronze    = "BRONZE"
	TierIron      = "IRON"
)

// tierDef describes what share of the ranked population a tier covers.
// Order is best to worst; percentiles sum to 100.
type tierDef struct {
	Name       string
	Percentile float64
}

var tiers = []tierDef{
	{TierLeviathan, 1},
	{TierDiamond, 4},
	{TierPlatinum, 10},
	{TierGold, 20},
	{TierSilver, 30},
	{TierBronze, 25},
	{TierIron, 10},
}

type Tier struct {
	Name   string `json:"name"`
	IsPlus bool   `json:"is_plus"`
}

// TierInterval is one tier half (plus = upper half) together with the
// minimum ordinal needed to be placed in it. The lowest interval is the
// catch-all and carries no threshold.
type TierInterval struct {
	Name          string   `json:"name"`
	IsPlus        bool     `json:"is_plus"`
	NeededOrdinal *float64 `json:"needed_ordinal,omitempty"`
}

// TierIntervals maps a season's ordinal distribution to concrete tier
// thresholds. Input is the ordinal of every ranked entity, any order.
func TierIntervals(ordinals []float64) []TierInterval {
	sorted := make([]float64, len(ordinals))
	copy(sorted, ordinals)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	n := len(sorted)
	result := make([]TierInterval, 0, len(tiers)*2)

	cum := 0.0
	for ti, def := range tiers {
		for _, isPlus := range []bool{true, false} {
			cum += def.Percentile / 2
			interval := TierInterval{Name: def.Name, IsPlus: isPlus}

			last := ti == len(tiers)-1 && !isPlus
			if !last && n > 0 {
				idx := int(math.Ceil(cum/100*float64(n))) - 1
				if idx < 0 {
					idx = 0
				}
				if idx >= n {
					idx = n - 1
				}
				needed := sorted[idx]
				interval.NeededOrdinal = &needed
			}

			result = append(result, interval)
		}
	}

	return result
}

// TierOf places an ordinal into the first interval whose threshold it
// meets. Entities below every threshold land in the catch-all tier.
func TierOf(intervals []TierInterval, ordinal float64) Tier {
	for _, in := range intervals {
		if in.NeededOrdinal == nil || ordinal >= *in.NeededOrdinal {
			return Tier{Name: in.Name, IsPlus: in.IsPlus}
		}
	}
	return Tier{Name: TierIron}
}
