// Package scoring validates reported best-of-N series scores.
package scoring

// RequiredWins returns the number of map wins that decides a best-of-N set.
func RequiredWins(bestOf int) int {
	return bestOf/2 + bestOf%2
}

// ValidateSeries reports whether a sequence of per-map winners is a legal
// state of a best-of-N set. The sequence is scanned in report order; it is
// illegal for either side to appear again after one side has already
// reached the required win count, and no more than two distinct sides may
// appear. A sequence that has not yet decided the set is still valid -
// use SeriesDecided to tell the two states apart.
func ValidateSeries[T comparable](winners []T, bestOf int) bool {
	if bestOf < 1 || len(winners) > bestOf {
		return false
	}

	required := RequiredWins(bestOf)
	counts := make(map[T]int, 2)

	for i, w := range winners {
		if counts[w] == 0 && len(counts) == 2 {
			// a third side appeared
			return false
		}
		counts[w]++
		if counts[w] == required && i != len(winners)-1 {
			// maps were reported after the set was already decided
			return false
		}
	}

	return true
}

// SeriesDecided reports whether one side has reached the required win
// count. Callers combine it with ValidateSeries: a reported score is
// accepted as final only when both hold.
func SeriesDecided[T comparable](winners []T, bestOf int) bool {
	required := RequiredWins(bestOf)
	counts := make(map[T]int, 2)

	for _, w := range winners {
		counts[w]++
		if counts[w] >= required {
			return true
		}
	}

	return false
}
