package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-platform/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	UpdateLogoKey(ctx context.Context, id int, key *string) error
	ListRegisteredTeamIDs(ctx context.Context, tournamentID int) ([]int, error)
	RegisterTeam(ctx context.Context, tournamentID, teamID int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (name, description, organizer_id, start_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Description,
		tournament.OrganizerID,
		tournament.StartDate,
		tournament.Status,
	).Scan(&tournament.ID, &tournament.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, description, organizer_id, start_date, status, logo_key, created_at
		FROM tournaments
		WHERE id = $1`

	tournament := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.Description,
		&tournament.OrganizerID,
		&tournament.StartDate,
		&tournament.Status,
		&tournament.LogoKey,
		&tournament.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament by id %d: %w", id, err)
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET logo_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("failed to update logo key for tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) ListRegisteredTeamIDs(ctx context.Context, tournamentID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT team_id
		FROM tournament_registrations
		WHERE tournament_id = $1
		ORDER BY registered_at, team_id`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations of tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}
	return ids, nil
}

func (r *postgresTournamentRepository) RegisterTeam(ctx context.Context, tournamentID, teamID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tournament_registrations (tournament_id, team_id)
		VALUES ($1, $2)`, tournamentID, teamID)
	if err != nil {
		return fmt.Errorf("failed to register team %d for tournament %d: %w", teamID, tournamentID, err)
	}
	return nil
}
