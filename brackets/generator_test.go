package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/league-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, g StageGenerator, teamIDs []int) []*MatchNode {
	t.Helper()
	nodes, err := g.GenerateStage(context.Background(), GenerateStageParams{TeamIDs: teamIDs})
	require.NoError(t, err)
	return nodes
}

func byUID(nodes []*MatchNode) map[string]*MatchNode {
	m := make(map[string]*MatchNode, len(nodes))
	for _, n := range nodes {
		m[n.UID] = n
	}
	return m
}

func TestGeneratorFor(t *testing.T) {
	assert.Equal(t, "SingleElimination", GeneratorFor(models.BracketSingleElimination).GetName())
	assert.Equal(t, "RoundRobin", GeneratorFor(models.BracketRoundRobin).GetName())
	assert.Nil(t, GeneratorFor(models.BracketDoubleElimination))
	assert.Nil(t, GeneratorFor(models.BracketSwiss))
}

func TestSingleEliminationPowerOfTwo(t *testing.T) {
	nodes := generate(t, NewSingleEliminationGenerator(), []int{1, 2, 3, 4})
	require.Len(t, nodes, 3)

	m := byUID(nodes)

	r1m1 := m["R1M1"]
	require.NotNil(t, r1m1)
	assert.Equal(t, 1, *r1m1.Team1ID)
	assert.Equal(t, 2, *r1m1.Team2ID)
	assert.False(t, r1m1.IsBye)

	r1m2 := m["R1M2"]
	require.NotNil(t, r1m2)
	assert.Equal(t, 3, *r1m2.Team1ID)
	assert.Equal(t, 4, *r1m2.Team2ID)

	final := m["R2M1"]
	require.NotNil(t, final)
	assert.True(t, final.IsPlaceholder)
	assert.Nil(t, final.Team1ID)
	assert.Nil(t, final.Team2ID)
	require.NotNil(t, final.SourceMatch1UID)
	require.NotNil(t, final.SourceMatch2UID)
	assert.Equal(t, "R1M1", *final.SourceMatch1UID)
	assert.Equal(t, "R1M2", *final.SourceMatch2UID)
}

func TestSingleEliminationWithBye(t *testing.T) {
	nodes := generate(t, NewSingleEliminationGenerator(), []int{10, 20, 30})
	require.Len(t, nodes, 3)

	m := byUID(nodes)

	r1m1 := m["R1M1"]
	require.NotNil(t, r1m1)
	assert.Equal(t, 10, *r1m1.Team1ID)
	assert.Equal(t, 20, *r1m1.Team2ID)

	bye := m["R1M2"]
	require.NotNil(t, bye)
	assert.True(t, bye.IsBye)
	require.NotNil(t, bye.ByeTeamID)
	assert.Equal(t, 30, *bye.ByeTeamID)

	// the bye team is seeded straight into the final
	final := m["R2M1"]
	require.NotNil(t, final)
	require.NotNil(t, final.SourceMatch1UID)
	assert.Equal(t, "R1M1", *final.SourceMatch1UID)
	require.NotNil(t, final.Team2ID)
	assert.Equal(t, 30, *final.Team2ID)
}

func TestSingleEliminationDoubleByeSlot(t *testing.T) {
	// 5 entrants in a bracket of 8 leave three byes, two of which
	// collide in round one and must propagate upward
	nodes := generate(t, NewSingleEliminationGenerator(), []int{1, 2, 3, 4, 5})

	var byes, real int
	for _, n := range nodes {
		if n.IsBye {
			byes++
		} else {
			real++
		}
	}
	assert.Equal(t, 2, byes)
	assert.Equal(t, 4, real, "five entrants resolve a winner in four played matches")

	m := byUID(nodes)
	final := m["R3M1"]
	require.NotNil(t, final)
	require.NotNil(t, final.SourceMatch1UID)
	assert.Equal(t, "R2M1", *final.SourceMatch1UID)
	require.NotNil(t, final.Team2ID)
	assert.Equal(t, 5, *final.Team2ID)
}

func TestSingleEliminationSourceMeetsBye(t *testing.T) {
	// 6 entrants in a bracket of 8: round two pairs the winner of R1M3
	// against the bye bubbled up from the two empty slots, so that
	// winner must advance straight to the final
	nodes := generate(t, NewSingleEliminationGenerator(), []int{1, 2, 3, 4, 5, 6})
	require.Len(t, nodes, 5, "six entrants resolve a winner in five played matches")

	m := byUID(nodes)
	for _, n := range nodes {
		assert.False(t, n.IsBye)
	}

	// no half-empty round two match for the bubbled-up winner
	assert.Nil(t, m["R2M2"])

	final := m["R3M1"]
	require.NotNil(t, final)
	require.NotNil(t, final.SourceMatch1UID)
	require.NotNil(t, final.SourceMatch2UID)
	assert.Equal(t, "R2M1", *final.SourceMatch1UID)
	assert.Equal(t, "R1M3", *final.SourceMatch2UID)
	assert.Nil(t, final.Team1ID)
	assert.Nil(t, final.Team2ID)
}

func TestSingleEliminationEveryMatchIsPlayable(t *testing.T) {
	// every persisted match must be decidable: two teams, a team and a
	// bye, or a slot fed by an earlier match
	for n := 2; n <= 16; n++ {
		teams := make([]int, n)
		for i := range teams {
			teams[i] = i + 1
		}
		nodes := generate(t, NewSingleEliminationGenerator(), teams)

		for _, node := range nodes {
			if node.IsBye {
				continue
			}
			slot1 := node.Team1ID != nil || node.SourceMatch1UID != nil
			slot2 := node.Team2ID != nil || node.SourceMatch2UID != nil
			assert.True(t, slot1, "%d teams: match %s slot 1 can never be filled", n, node.UID)
			assert.True(t, slot2, "%d teams: match %s slot 2 can never be filled", n, node.UID)
		}
	}
}

func TestSingleEliminationOrdering(t *testing.T) {
	nodes := generate(t, NewSingleEliminationGenerator(), []int{1, 2, 3, 4, 5, 6, 7, 8})
	require.Len(t, nodes, 7)

	for i := 1; i < len(nodes); i++ {
		prev, cur := nodes[i-1], nodes[i]
		if cur.Round == prev.Round {
			assert.Greater(t, cur.OrderInRound, prev.OrderInRound)
		} else {
			assert.Greater(t, cur.Round, prev.Round)
		}
	}
}

func TestSingleEliminationTooFewTeams(t *testing.T) {
	g := NewSingleEliminationGenerator()
	_, err := g.GenerateStage(context.Background(), GenerateStageParams{TeamIDs: []int{1}})
	assert.Error(t, err)
	_, err = g.GenerateStage(context.Background(), GenerateStageParams{TeamIDs: nil})
	assert.Error(t, err)
}

func TestRoundRobinEveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 4, 5, 7, 8} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := make([]int, n)
			for i := range teams {
				teams[i] = i + 1
			}

			nodes := generate(t, NewRoundRobinGenerator(), teams)
			require.Len(t, nodes, n*(n-1)/2)

			seen := make(map[string]bool)
			for _, node := range nodes {
				require.NotNil(t, node.Team1ID)
				require.NotNil(t, node.Team2ID)
				assert.False(t, node.IsBye)
				assert.False(t, node.IsPlaceholder)

				a, b := *node.Team1ID, *node.Team2ID
				if a > b {
					a, b = b, a
				}
				pair := fmt.Sprintf("%d-%d", a, b)
				assert.False(t, seen[pair], "pair %s scheduled twice", pair)
				seen[pair] = true
			}
		})
	}
}

func TestRoundRobinRoundsAreDisjoint(t *testing.T) {
	nodes := generate(t, NewRoundRobinGenerator(), []int{1, 2, 3, 4})

	perRound := make(map[int]map[int]bool)
	for _, node := range nodes {
		if perRound[node.Round] == nil {
			perRound[node.Round] = make(map[int]bool)
		}
		for _, id := range []int{*node.Team1ID, *node.Team2ID} {
			assert.False(t, perRound[node.Round][id], "team %d plays twice in round %d", id, node.Round)
			perRound[node.Round][id] = true
		}
	}
	assert.Len(t, perRound, 3)
}

func TestRoundRobinOddTeamCountSitsOneOut(t *testing.T) {
	nodes := generate(t, NewRoundRobinGenerator(), []int{1, 2, 3})
	require.Len(t, nodes, 3)

	// three rounds, one match each, one team idle per round
	rounds := make(map[int]int)
	for _, node := range nodes {
		rounds[node.Round]++
	}
	assert.Len(t, rounds, 3)
	for r, count := range rounds {
		assert.Equal(t, 1, count, "round %d", r)
	}
}

func TestRoundRobinTooFewTeams(t *testing.T) {
	g := NewRoundRobinGenerator()
	_, err := g.GenerateStage(context.Background(), GenerateStageParams{TeamIDs: []int{1}})
	assert.Error(t, err)
}
