package brackets

import (
	"context"

	"github.com/Dosada05/league-platform/models"
)

// MatchNode is one generated match of a stage before persistence. UIDs
// link placeholder matches to the matches that feed them.
type MatchNode struct {
	UID          string
	Round        int
	OrderInRound int

	Team1ID *int
	Team2ID *int

	SourceMatch1UID *string
	SourceMatch2UID *string

	IsPlaceholder bool

	IsBye     bool
	ByeTeamID *int
}

type GenerateStageParams struct {
	Stage   *models.Stage
	TeamIDs []int
}

// StageGenerator materializes the match structure of a validated stage.
// Implementations are pure: they never touch storage.
type StageGenerator interface {
	GenerateStage(ctx context.Context, params GenerateStageParams) ([]*MatchNode, error)

	GetName() string
}

// GeneratorFor returns the generator for a bracket type, or nil when the
// type has no materializer yet.
func GeneratorFor(t models.BracketType) StageGenerator {
	switch t {
	case models.BracketSingleElimination:
		return NewSingleEliminationGenerator()
	case models.BracketRoundRobin:
		return NewRoundRobinGenerator()
	default:
		return nil
	}
}
