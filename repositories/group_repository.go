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
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupMemberConflict = errors.New("user is already a member of a group")
)

type GroupRepository interface {
	Create(ctx context.Context, exec SQLExecutor, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListLooking(ctx context.Context, groupType models.GroupType, season int) ([]*models.Group, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.GroupStatus) error
	AddMember(ctx context.Context, exec SQLExecutor, member *models.GroupMember) error
	MoveMembers(ctx context.Context, exec SQLExecutor, fromGroupID, toGroupID int, stripCaptain bool) error
	Touch(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupRepository) Create(ctx context.Context, exec SQLExecutor, group *models.Group) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO groups (type, status, season)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, latest_action_at`

	err := executor.QueryRowContext(ctx, query, group.Type, group.Status, group.Season).
		Scan(&group.ID, &group.CreatedAt, &group.LatestActionAt)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT id, type, status, season, created_at, latest_action_at
		FROM groups
		WHERE id = $1`

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Type,
		&group.Status,
		&group.Season,
		&group.CreatedAt,
		&group.LatestActionAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to scan group by id %d: %w", id, err)
	}

	if err := r.loadMembers(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (r *postgresGroupRepository) loadMembers(ctx context.Context, group *models.Group) error {
	query := `
		SELECT group_id, user_id, is_captain, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at`

	rows, err := r.db.QueryContext(ctx, query, group.ID)
	if err != nil {
		return fmt.Errorf("failed to list members of group %d: %w", group.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.IsCaptain, &m.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		group.Members = append(group.Members, m)
	}
	return rows.Err()
}

func (r *postgresGroupRepository) ListLooking(ctx context.Context, groupType models.GroupType, season int) ([]*models.Group, error) {
	query := `
		SELECT id, type, status, season, created_at, latest_action_at
		FROM groups
		WHERE status = $1 AND type = $2 AND season = $3
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, models.GroupStatusLooking, groupType, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list looking groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		err := rows.Scan(
			&group.ID,
			&group.Type,
			&group.Status,
			&group.Season,
			&group.CreatedAt,
			&group.LatestActionAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	for _, group := range groups {
		if err := r.loadMembers(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *postgresGroupRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.GroupStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE groups SET status = $1, latest_action_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update group %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupRepository) AddMember(ctx context.Context, exec SQLExecutor, member *models.GroupMember) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO group_members (group_id, user_id, is_captain)
		VALUES ($1, $2, $3)
		RETURNING joined_at`

	err := executor.QueryRowContext(ctx, query, member.GroupID, member.UserID, member.IsCaptain).
		Scan(&member.JoinedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrGroupMemberConflict
		}
		return fmt.Errorf("failed to add member to group %d: %w", member.GroupID, err)
	}
	return nil
}

// MoveMembers переносит всех участников одной группы в другую в рамках
// слияния. При stripCaptain капитан поглощённой группы теряет роль.
func (r *postgresGroupRepository) MoveMembers(ctx context.Context, exec SQLExecutor, fromGroupID, toGroupID int, stripCaptain bool) error {
	executor := r.getExecutor(exec)

	if stripCaptain {
		_, err := executor.ExecContext(ctx,
			`UPDATE group_members SET is_captain = FALSE WHERE group_id = $1`, fromGroupID)
		if err != nil {
			return fmt.Errorf("failed to strip captaincy from group %d: %w", fromGroupID, err)
		}
	}

	_, err := executor.ExecContext(ctx,
		`UPDATE group_members SET group_id = $1 WHERE group_id = $2`, toGroupID, fromGroupID)
	if err != nil {
		return fmt.Errorf("failed to move members from group %d to %d: %w", fromGroupID, toGroupID, err)
	}
	return nil
}

func (r *postgresGroupRepository) Touch(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE groups SET latest_action_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch group %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}
