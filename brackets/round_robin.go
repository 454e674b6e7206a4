package brackets

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() StageGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateStage pairs every team against every other team once, using the
// circle method so each conceptual round is a set of disjoint pairings.
// With an odd team count one team sits out per round (no match created).
func (g *RoundRobinGenerator) GenerateStage(ctx context.Context, params GenerateStageParams) ([]*MatchNode, error) {
	teams := params.TeamIDs
	if len(teams) < 2 {
		return nil, fmt.Errorf("round robin requires at least 2 teams, found %d", len(teams))
	}

	// circle method: fix slot 0, rotate the rest; -1 marks the bye slot
	slots := make([]int, 0, len(teams)+1)
	slots = append(slots, teams...)
	if len(slots)%2 != 0 {
		slots = append(slots, -1)
	}

	rounds := len(slots) - 1
	half := len(slots) / 2
	matches := make([]*MatchNode, 0, rounds*half)

	for r := 1; r <= rounds; r++ {
		order := 0
		for i := 0; i < half; i++ {
			t1 := slots[i]
			t2 := slots[len(slots)-1-i]
			if t1 == -1 || t2 == -1 {
				continue
			}
			order++
			id1, id2 := t1, t2
			matches = append(matches, &MatchNode{
				UID:          fmt.Sprintf("R%dM%d", r, order),
				Round:        r,
				OrderInRound: order,
				Team1ID:      &id1,
				Team2ID:      &id2,
			})
		}

		// rotate all but the first slot
		last := slots[len(slots)-1]
		copy(slots[2:], slots[1:len(slots)-1])
		slots[1] = last
	}

	return matches, nil
}
