package brackets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

type node struct {
	teamID           *int
	sourceMatchUID   *string
	isByePlaceholder bool
}

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() StageGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateStage builds a full single elimination tree. When the entrant
// count is not a power of two, the remaining slots become byes: the
// paired team advances without a match being created for the bye event.
func (g *SingleEliminationGenerator) GenerateStage(ctx context.Context, params GenerateStageParams) ([]*MatchNode, error) {
	teams := params.TeamIDs
	n := len(teams)

	if n < 2 {
		return nil, errors.New("not enough teams to generate a single elimination stage (minimum 2)")
	}

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	bracketSize := 1 << uint(numRounds)

	currentRound := make([]*node, bracketSize)
	for i := 0; i < n; i++ {
		id := teams[i]
		currentRound[i] = &node{teamID: &id}
	}
	for i := n; i < bracketSize; i++ {
		currentRound[i] = &node{isByePlaceholder: true}
	}

	matches := make([]*MatchNode, 0, bracketSize-1)

	for r := 1; r <= numRounds; r++ {
		nextRound := make([]*node, 0, len(currentRound)/2)
		matchesInRound := 0

		for i := 0; i < len(currentRound); i += 2 {
			node1 := currentRound[i]
			node2 := currentRound[i+1]

			uid := fmt.Sprintf("R%dM%d", r, matchesInRound+1)
			mn := &MatchNode{
				UID:          uid,
				Round:        r,
				OrderInRound: matchesInRound + 1,
			}

			if node1.teamID != nil {
				mn.Team1ID = node1.teamID
			} else if node1.sourceMatchUID != nil {
				mn.SourceMatch1UID = node1.sourceMatchUID
				mn.IsPlaceholder = true
			}
			if node2.teamID != nil {
				mn.Team2ID = node2.teamID
			} else if node2.sourceMatchUID != nil {
				mn.SourceMatch2UID = node2.sourceMatchUID
				mn.IsPlaceholder = true
			}

			switch {
			case node1.teamID != nil && node2.isByePlaceholder:
				mn.IsBye = true
				mn.ByeTeamID = node1.teamID
				mn.Team2ID = nil
				mn.IsPlaceholder = false
				nextRound = append(nextRound, &node{teamID: node1.teamID})

			case node2.teamID != nil && node1.isByePlaceholder:
				mn.IsBye = true
				mn.ByeTeamID = node2.teamID
				mn.Team1ID = node2.teamID
				mn.Team2ID = nil
				mn.IsPlaceholder = false
				nextRound = append(nextRound, &node{teamID: node2.teamID})

			case node1.sourceMatchUID != nil && node2.isByePlaceholder:
				// the pending winner advances without a match being
				// created; its UID is consumed one round up
				nextRound = append(nextRound, &node{sourceMatchUID: node1.sourceMatchUID})
				continue

			case node2.sourceMatchUID != nil && node1.isByePlaceholder:
				nextRound = append(nextRound, &node{sourceMatchUID: node2.sourceMatchUID})
				continue

			case node1.isByePlaceholder && node2.isByePlaceholder:
				// two byes met: the slot stays empty and the bye
				// propagates one round up
				nextRound = append(nextRound, &node{isByePlaceholder: true})
				continue

			default:
				nextRound = append(nextRound, &node{sourceMatchUID: &uid})
			}

			matches = append(matches, mn)
			matchesInRound++
		}

		currentRound = nextRound
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].OrderInRound < matches[j].OrderInRound
	})

	return matches, nil
}
