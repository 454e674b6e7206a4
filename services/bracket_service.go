package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/league-platform/brackets"
	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
)

// ProgressionValidationError собирает все найденные валидатором ошибки
// прогрессии, чтобы клиент мог подсветить каждое сломанное поле сразу.
type ProgressionValidationError struct {
	Errors []brackets.ProgressionError
}

func (e *ProgressionValidationError) Error() string {
	return fmt.Sprintf("bracket progression is invalid (%d errors)", len(e.Errors))
}

type BracketService interface {
	// ValidateProgression проверяет структуру турнира без каких-либо
	// побочных эффектов. Используется для live-валидации формы.
	ValidateProgression(specs []brackets.BracketSpec) ([]brackets.ResolvedBracket, *ProgressionValidationError)
	// MaterializeTournament валидирует прогрессию и атомарно создаёт все
	// стадии турнира. Стадии без источников засеваются
	// зарегистрированными командами сразу; остальные ждут результатов.
	MaterializeTournament(ctx context.Context, tournamentID, requesterID int, specs []brackets.BracketSpec) (*models.Tournament, error)
}

type bracketService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	stageRepo      repositories.StageRepository
	tournaments    TournamentService
	hub            *brackets.Hub
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	stageRepo repositories.StageRepository,
	tournaments TournamentService,
	hub *brackets.Hub,
) BracketService {
	return &bracketService{
		db:             db,
		tournamentRepo: tournamentRepo,
		stageRepo:      stageRepo,
		tournaments:    tournaments,
		hub:            hub,
	}
}

func (s *bracketService) ValidateProgression(specs []brackets.BracketSpec) ([]brackets.ResolvedBracket, *ProgressionValidationError) {
	resolved, errs := brackets.ValidateProgression(specs)
	if len(errs) > 0 {
		return nil, &ProgressionValidationError{Errors: errs}
	}
	return resolved, nil
}

func (s *bracketService) MaterializeTournament(ctx context.Context, tournamentID, requesterID int, specs []brackets.BracketSpec) (*models.Tournament, error) {
	tournament, err := s.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrTournamentInvalidStatusTransition
	}
	if len(tournament.Stages) > 0 {
		return nil, ErrValidationFailed
	}

	resolved, verr := s.ValidateProgression(specs)
	if verr != nil {
		return nil, verr
	}

	teamIDs, err := s.tournamentRepo.ListRegisteredTeamIDs(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		for i, bracket := range resolved {
			stage := &models.Stage{
				TournamentID: tournamentID,
				Name:         bracket.Name,
				Type:         bracket.Type,
				OrderIdx:     i,
			}
			if bracket.Settings.TeamsPerGroup > 0 {
				v := bracket.Settings.TeamsPerGroup
				stage.TeamsPerGroup = &v
			}
			if bracket.Settings.GroupCount > 0 {
				v := bracket.Settings.GroupCount
				stage.GroupCount = &v
			}

			if err := s.stageRepo.Create(ctx, tx, stage); err != nil {
				return err
			}
			for _, src := range bracket.Sources {
				source := &models.StageSource{
					StageID:      stage.ID,
					FromStageIdx: src.BracketIdx,
					Placements:   src.Placements,
				}
				if err := s.stageRepo.CreateSource(ctx, tx, source); err != nil {
					return err
				}
			}

			// стадии с источниками засеваются позже, по мере завершения
			// исходных стадий
			if len(bracket.Sources) > 0 {
				continue
			}
			if err := s.materializeStage(ctx, tx, tournament, stage, teamIDs); err != nil {
				return err
			}
		}

		return s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.StatusActive)
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(fmt.Sprintf("tournament:%d", tournamentID), brackets.WebSocketMessage{
			Type:    brackets.MessageStageUpdated,
			Payload: map[string]int{"tournament_id": tournamentID},
		})
	}

	return s.tournaments.GetByID(ctx, tournamentID)
}

func (s *bracketService) materializeStage(ctx context.Context, tx *sql.Tx, tournament *models.Tournament, stage *models.Stage, teamIDs []int) error {
	generator := brackets.GeneratorFor(stage.Type)
	if generator == nil {
		return ErrBracketTypeUnsupported
	}
	if len(teamIDs) < 2 {
		return ErrNotEnoughTeams
	}

	nodes, err := generator.GenerateStage(ctx, brackets.GenerateStageParams{
		Stage:   stage,
		TeamIDs: teamIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to generate %s stage: %w", generator.GetName(), err)
	}

	idByUID := make(map[string]int, len(nodes))
	for _, node := range nodes {
		if node.IsBye {
			// бай не является матчем, команда проходит дальше без игры
			continue
		}
		match := &models.StageMatch{
			StageID:       stage.ID,
			Round:         node.Round,
			OrderInRound:  node.OrderInRound,
			Team1ID:       node.Team1ID,
			Team2ID:       node.Team2ID,
			Status:        models.MatchStatusScheduled,
			ScheduledDate: tournament.StartDate,
		}
		if err := s.stageRepo.CreateMatch(ctx, tx, match); err != nil {
			return err
		}
		idByUID[node.UID] = match.ID
	}

	// проставляем связи "победитель идёт в матч N, слот K"
	for _, node := range nodes {
		if node.IsBye {
			continue
		}
		destID := idByUID[node.UID]
		if node.SourceMatch1UID != nil {
			if srcID, ok := idByUID[*node.SourceMatch1UID]; ok {
				slot := 1
				if err := s.stageRepo.UpdateMatchNextInfo(ctx, tx, srcID, &destID, &slot); err != nil {
					return err
				}
			}
		}
		if node.SourceMatch2UID != nil {
			if srcID, ok := idByUID[*node.SourceMatch2UID]; ok {
				slot := 2
				if err := s.stageRepo.UpdateMatchNextInfo(ctx, tx, srcID, &destID, &slot); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
