package brackets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParsePlacements turns a user-facing placement specification into a
// canonical set of integers. Accepted forms are comma-separated values
// ("1,2,3"), ranges ("1-3"), or a mix ("1-2,4"). Negative values denote
// bottom finishers ("-1" = losers of round 1) and are only meaningful for
// elimination-style origins, which ValidateProgression enforces.
//
// The parser is deliberately separate from the validator so the validator
// only ever sees canonical integer sets. Output is de-duplicated and
// sorted ascending.
func ParsePlacements(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty placements specification")
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty placement in %q", spec)
		}

		from, to, isRange, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		if isRange {
			for p := from; p <= to; p++ {
				seen[p] = struct{}{}
			}
			continue
		}
		seen[from] = struct{}{}
	}

	placements := make([]int, 0, len(seen))
	for p := range seen {
		if p == 0 {
			return nil, fmt.Errorf("placement 0 is not a valid finishing position")
		}
		placements = append(placements, p)
	}
	sort.Ints(placements)

	return placements, nil
}

func parseToken(token string) (from, to int, isRange bool, err error) {
	// a dash after the first character means a range: "1-3";
	// a leading dash is a negative placement: "-1"
	if idx := strings.Index(token[1:], "-"); idx >= 0 {
		lo, err := strconv.Atoi(token[:idx+1])
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid placement range %q", token)
		}
		hi, err := strconv.Atoi(token[idx+2:])
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid placement range %q", token)
		}
		if lo > hi {
			return 0, 0, false, fmt.Errorf("descending placement range %q", token)
		}
		if lo <= 0 {
			return 0, 0, false, fmt.Errorf("placement ranges must be positive, got %q", token)
		}
		return lo, hi, true, nil
	}

	p, err := strconv.Atoi(token)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid placement %q", token)
	}
	return p, 0, false, nil
}
