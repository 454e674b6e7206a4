package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-platform/models"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMapResultOrderInvalid = errors.New("map result order conflict")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	AddMapResult(ctx context.Context, exec SQLExecutor, result *models.MapResult) error
	Finalize(ctx context.Context, exec SQLExecutor, id int, winnerSide models.Side) error
	UpdateScreenshotKey(ctx context.Context, id int, key *string) error
	ListFinalizedBySeason(ctx context.Context, season int) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (season, alpha_group_id, bravo_group_id, best_of, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.Season,
		match.AlphaGroupID,
		match.BravoGroupID,
		match.BestOf,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, season, alpha_group_id, bravo_group_id, best_of, status,
		       winner_side, screenshot_key, created_at, reported_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.Season,
		&match.AlphaGroupID,
		&match.BravoGroupID,
		&match.BestOf,
		&match.Status,
		&match.WinnerSide,
		&match.ScreenshotKey,
		&match.CreatedAt,
		&match.ReportedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}

	if err := r.loadMapResults(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) loadMapResults(ctx context.Context, match *models.Match) error {
	query := `
		SELECT match_id, map_order, winner_side, reported_at
		FROM map_results
		WHERE match_id = $1
		ORDER BY map_order`

	rows, err := r.db.QueryContext(ctx, query, match.ID)
	if err != nil {
		return fmt.Errorf("failed to list map results of match %d: %w", match.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mr models.MapResult
		if err := rows.Scan(&mr.MatchID, &mr.Order, &mr.WinnerSide, &mr.ReportedAt); err != nil {
			return fmt.Errorf("failed to scan map result: %w", err)
		}
		match.MapResults = append(match.MapResults, mr)
	}
	return rows.Err()
}

func (r *postgresMatchRepository) AddMapResult(ctx context.Context, exec SQLExecutor, result *models.MapResult) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO map_results (match_id, map_order, winner_side)
		VALUES ($1, $2, $3)
		RETURNING reported_at`

	err := executor.QueryRowContext(ctx, query, result.MatchID, result.Order, result.WinnerSide).
		Scan(&result.ReportedAt)
	if err != nil {
		return fmt.Errorf("failed to insert map result for match %d: %w", result.MatchID, err)
	}
	return nil
}

func (r *postgresMatchRepository) Finalize(ctx context.Context, exec SQLExecutor, id int, winnerSide models.Side) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `
		UPDATE matches
		SET status = $1, winner_side = $2, reported_at = now()
		WHERE id = $3 AND status != $1`,
		models.MatchStatusCompleted, winnerSide, id)
	if err != nil {
		return fmt.Errorf("failed to finalize match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateScreenshotKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET screenshot_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("failed to update screenshot key for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// ListFinalizedBySeason возвращает завершённые матчи сезона в строгом
// хронологическом порядке завершения - порядок критичен для цепочки
// рейтинговых обновлений.
func (r *postgresMatchRepository) ListFinalizedBySeason(ctx context.Context, season int) ([]*models.Match, error) {
	query := `
		SELECT id, season, alpha_group_id, bravo_group_id, best_of, status,
		       winner_side, screenshot_key, created_at, reported_at
		FROM matches
		WHERE season = $1 AND status = $2
		ORDER BY reported_at, id`

	rows, err := r.db.QueryContext(ctx, query, season, models.MatchStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list finalized matches of season %d: %w", season, err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match := &models.Match{}
		err := rows.Scan(
			&match.ID,
			&match.Season,
			&match.AlphaGroupID,
			&match.BravoGroupID,
			&match.BestOf,
			&match.Status,
			&match.WinnerSide,
			&match.ScreenshotKey,
			&match.CreatedAt,
			&match.ReportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}
	return matches, nil
}
