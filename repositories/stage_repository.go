package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-platform/models"
	"github.com/lib/pq"
)

var (
	ErrStageNotFound      = errors.New("stage not found")
	ErrStageMatchNotFound = errors.New("stage match not found")
)

type StageRepository interface {
	Create(ctx context.Context, exec SQLExecutor, stage *models.Stage) error
	CreateSource(ctx context.Context, exec SQLExecutor, source *models.StageSource) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Stage, error)
	CreateMatch(ctx context.Context, exec SQLExecutor, match *models.StageMatch) error
	UpdateMatchNextInfo(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID *int, winnerToSlot *int) error
	ListMatchesByStage(ctx context.Context, stageID int) ([]*models.StageMatch, error)
}

type postgresStageRepository struct {
	db *sql.DB
}

func NewPostgresStageRepository(db *sql.DB) StageRepository {
	return &postgresStageRepository{db: db}
}

func (r *postgresStageRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStageRepository) Create(ctx context.Context, exec SQLExecutor, stage *models.Stage) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO stages (tournament_id, name, type, order_idx, teams_per_group, group_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		stage.TournamentID,
		stage.Name,
		stage.Type,
		stage.OrderIdx,
		stage.TeamsPerGroup,
		stage.GroupCount,
	).Scan(&stage.ID)
	if err != nil {
		return fmt.Errorf("failed to insert stage: %w", err)
	}
	return nil
}

func (r *postgresStageRepository) CreateSource(ctx context.Context, exec SQLExecutor, source *models.StageSource) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO stage_sources (stage_id, from_stage_idx, placements)
		VALUES ($1, $2, $3)`

	placements := make([]int64, len(source.Placements))
	for i, p := range source.Placements {
		placements[i] = int64(p)
	}

	_, err := executor.ExecContext(ctx, query, source.StageID, source.FromStageIdx, pq.Array(placements))
	if err != nil {
		return fmt.Errorf("failed to insert stage source: %w", err)
	}
	return nil
}

func (r *postgresStageRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Stage, error) {
	query := `
		SELECT id, tournament_id, name, type, order_idx, teams_per_group, group_count
		FROM stages
		WHERE tournament_id = $1
		ORDER BY order_idx`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages of tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var stages []*models.Stage
	for rows.Next() {
		stage := &models.Stage{}
		err := rows.Scan(
			&stage.ID,
			&stage.TournamentID,
			&stage.Name,
			&stage.Type,
			&stage.OrderIdx,
			&stage.TeamsPerGroup,
			&stage.GroupCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, stage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stages: %w", err)
	}
	return stages, nil
}

func (r *postgresStageRepository) CreateMatch(ctx context.Context, exec SQLExecutor, match *models.StageMatch) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO stage_matches
			(stage_id, round, order_in_round, team1_id, team2_id, status, winner_team_id, scheduled_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		match.StageID,
		match.Round,
		match.OrderInRound,
		match.Team1ID,
		match.Team2ID,
		match.Status,
		match.WinnerTeamID,
		match.ScheduledDate,
	).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("failed to insert stage match: %w", err)
	}
	return nil
}

func (r *postgresStageRepository) UpdateMatchNextInfo(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID *int, winnerToSlot *int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE stage_matches SET next_match_id = $1, winner_to_slot = $2 WHERE id = $3`,
		nextMatchID, winnerToSlot, matchID)
	if err != nil {
		return fmt.Errorf("failed to update next match info for match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrStageMatchNotFound)
}

func (r *postgresStageRepository) ListMatchesByStage(ctx context.Context, stageID int) ([]*models.StageMatch, error) {
	query := `
		SELECT id, stage_id, round, order_in_round, team1_id, team2_id,
		       status, winner_team_id, next_match_id, winner_to_slot, scheduled_date
		FROM stage_matches
		WHERE stage_id = $1
		ORDER BY round, order_in_round`

	rows, err := r.db.QueryContext(ctx, query, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of stage %d: %w", stageID, err)
	}
	defer rows.Close()

	var matches []*models.StageMatch
	for rows.Next() {
		match := &models.StageMatch{}
		err := rows.Scan(
			&match.ID,
			&match.StageID,
			&match.Round,
			&match.OrderInRound,
			&match.Team1ID,
			&match.Team2ID,
			&match.Status,
			&match.WinnerTeamID,
			&match.NextMatchID,
			&match.WinnerToSlot,
			&match.ScheduledDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stage matches: %w", err)
	}
	return matches, nil
}
