package skill

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TeamRosterSize is the fixed roster size rated as a unit.
const TeamRosterSize = 4

// TeamKey returns the canonical storage key for a fixed four-player team:
// member ids sorted ascending and joined with "-", so lookup does not
// depend on roster order. Passing anything but exactly four ids is a
// caller bug and panics: silently accepting a wrong roster would corrupt
// the team's rating chain.
func TeamKey(memberIDs []int) string {
	if len(memberIDs) != TeamRosterSize {
		panic(fmt.Sprintf("skill: team key requires exactly %d member ids, got %d", TeamRosterSize, len(memberIDs)))
	}

	ids := make([]int, TeamRosterSize)
	copy(ids, memberIDs)
	sort.Ints(ids)

	parts := make([]string, TeamRosterSize)
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "-")
}
