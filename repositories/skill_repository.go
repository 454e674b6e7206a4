package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-platform/models"
)

var ErrSkillInvalidEntity = errors.New("skill row must reference either a user or a team identifier")

// SkillRepository хранит рейтинги как append-only журнал: по строке на
// каждую сущность после каждого матча. Текущий рейтинг - последняя строка.
// Отсутствие строки не является ошибкой: GetCurrentUserSkill и
// GetCurrentTeamSkill возвращают (nil, nil), а вызывающая сторона
// подставляет стартовый prior.
type SkillRepository interface {
	Create(ctx context.Context, exec SQLExecutor, s *models.Skill) error
	GetCurrentUserSkill(ctx context.Context, exec SQLExecutor, userID, season int) (*models.Skill, error)
	GetCurrentTeamSkill(ctx context.Context, exec SQLExecutor, identifier string, season int) (*models.Skill, error)
	ListCurrentUserSkills(ctx context.Context, season int) ([]*models.Skill, error)
	ListCurrentTeamSkills(ctx context.Context, season int) ([]*models.Skill, error)
	DeleteSeason(ctx context.Context, exec SQLExecutor, season int) error
}

type postgresSkillRepository struct {
	db *sql.DB
}

func NewPostgresSkillRepository(db *sql.DB) SkillRepository {
	return &postgresSkillRepository{db: db}
}

func (r *postgresSkillRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSkillRepository) Create(ctx context.Context, exec SQLExecutor, s *models.Skill) error {
	if (s.UserID == nil) == (s.Identifier == nil) {
		return ErrSkillInvalidEntity
	}

	executor := r.getExecutor(exec)
	query := `
		INSERT INTO skills (mu, sigma, ordinal, season, matches_count, user_id, identifier, match_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		s.Mu,
		s.Sigma,
		s.Ordinal,
		s.Season,
		s.MatchesCount,
		s.UserID,
		s.Identifier,
		s.MatchID,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert skill row: %w", err)
	}
	return nil
}

func (r *postgresSkillRepository) GetCurrentUserSkill(ctx context.Context, exec SQLExecutor, userID, season int) (*models.Skill, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, mu, sigma, ordinal, season, matches_count, user_id, identifier, match_id, created_at
		FROM skills
		WHERE user_id = $1 AND season = $2
		ORDER BY id DESC
		LIMIT 1`

	return r.scanOne(executor.QueryRowContext(ctx, query, userID, season))
}

func (r *postgresSkillRepository) GetCurrentTeamSkill(ctx context.Context, exec SQLExecutor, identifier string, season int) (*models.Skill, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, mu, sigma, ordinal, season, matches_count, user_id, identifier, match_id, created_at
		FROM skills
		WHERE identifier = $1 AND season = $2
		ORDER BY id DESC
		LIMIT 1`

	return r.scanOne(executor.QueryRowContext(ctx, query, identifier, season))
}

func (r *postgresSkillRepository) scanOne(row *sql.Row) (*models.Skill, error) {
	s := &models.Skill{}
	err := row.Scan(
		&s.ID,
		&s.Mu,
		&s.Sigma,
		&s.Ordinal,
		&s.Season,
		&s.MatchesCount,
		&s.UserID,
		&s.Identifier,
		&s.MatchID,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// никогда не игравшая сущность - ожидаемое состояние
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan skill row: %w", err)
	}
	return s, nil
}

func (r *postgresSkillRepository) ListCurrentUserSkills(ctx context.Context, season int) ([]*models.Skill, error) {
	query := `
		SELECT DISTINCT ON (user_id)
		       id, mu, sigma, ordinal, season, matches_count, user_id, identifier, match_id, created_at
		FROM skills
		WHERE season = $1 AND user_id IS NOT NULL
		ORDER BY user_id, id DESC`

	return r.list(ctx, query, season)
}

func (r *postgresSkillRepository) ListCurrentTeamSkills(ctx context.Context, season int) ([]*models.Skill, error) {
	query := `
		SELECT DISTINCT ON (identifier)
		       id, mu, sigma, ordinal, season, matches_count, user_id, identifier, match_id, created_at
		FROM skills
		WHERE season = $1 AND identifier IS NOT NULL
		ORDER BY identifier, id DESC`

	return r.list(ctx, query, season)
}

// DeleteSeason удаляет весь журнал сезона. Используется только при полном
// пересчёте рейтингов.
func (r *postgresSkillRepository) DeleteSeason(ctx context.Context, exec SQLExecutor, season int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM skills WHERE season = $1`, season)
	if err != nil {
		return fmt.Errorf("failed to delete skill rows of season %d: %w", season, err)
	}
	return nil
}

func (r *postgresSkillRepository) list(ctx context.Context, query string, season int) ([]*models.Skill, error) {
	rows, err := r.db.QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill rows: %w", err)
	}
	defer rows.Close()

	var skills []*models.Skill
	for rows.Next() {
		s := &models.Skill{}
		err := rows.Scan(
			&s.ID,
			&s.Mu,
			&s.Sigma,
			&s.Ordinal,
			&s.Season,
			&s.MatchesCount,
			&s.UserID,
			&s.Identifier,
			&s.MatchID,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}
	return skills, nil
}
