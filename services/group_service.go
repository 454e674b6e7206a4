package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-platform/matchmaking"
	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
)

type GroupService interface {
	Create(ctx context.Context, input CreateGroupInput) (*models.Group, error)
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListLooking(ctx context.Context, groupType models.GroupType, season int) ([]*models.Group, error)
	SetLooking(ctx context.Context, groupID, requesterID int) error
	// Merge сливает вторую группу в первую по правилам матчмейкинга.
	// Какая из двух переживёт слияние, решают сами правила, а не порядок
	// аргументов: выживает большая, при равенстве - созданная раньше.
	Merge(ctx context.Context, ownGroupID, otherGroupID int) (*models.Group, error)
}

type CreateGroupInput struct {
	Type      models.GroupType `json:"type"`
	Season    int              `json:"season"`
	CaptainID int              `json:"captain_id"`
}

type groupService struct {
	db        *sql.DB
	groupRepo repositories.GroupRepository
}

func NewGroupService(db *sql.DB, groupRepo repositories.GroupRepository) GroupService {
	return &groupService{
		db:        db,
		groupRepo: groupRepo,
	}
}

func (s *groupService) Create(ctx context.Context, input CreateGroupInput) (*models.Group, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidGroupType
	}

	group := &models.Group{
		Type:   input.Type,
		Status: models.GroupStatusPreparing,
		Season: input.Season,
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.groupRepo.Create(ctx, tx, group); err != nil {
			return err
		}
		member := &models.GroupMember{
			GroupID:   group.ID,
			UserID:    input.CaptainID,
			IsCaptain: true,
		}
		if err := s.groupRepo.AddMember(ctx, tx, member); err != nil {
			if errors.Is(err, repositories.ErrGroupMemberConflict) {
				return ErrMemberConflict
			}
			return err
		}
		group.Members = append(group.Members, *member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) GetByID(ctx context.Context, id int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListLooking(ctx context.Context, groupType models.GroupType, season int) ([]*models.Group, error) {
	if !groupType.Valid() {
		return nil, ErrInvalidGroupType
	}
	return s.groupRepo.ListLooking(ctx, groupType, season)
}

func (s *groupService) SetLooking(ctx context.Context, groupID, requesterID int) error {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	isCaptain := false
	for _, m := range group.Members {
		if m.UserID == requesterID && m.IsCaptain {
			isCaptain = true
			break
		}
	}
	if !isCaptain {
		return ErrCaptainOnly
	}

	return s.groupRepo.UpdateStatus(ctx, nil, groupID, models.GroupStatusLooking)
}

func (s *groupService) Merge(ctx context.Context, ownGroupID, otherGroupID int) (*models.Group, error) {
	if ownGroupID == otherGroupID {
		return nil, ErrSelfMerge
	}

	own, err := s.GetByID(ctx, ownGroupID)
	if err != nil {
		return nil, err
	}
	other, err := s.GetByID(ctx, otherGroupID)
	if err != nil {
		return nil, err
	}

	if own.Status != models.GroupStatusLooking || other.Status != models.GroupStatusLooking {
		return nil, ErrGroupNotLooking
	}
	if own.Type != other.Type {
		return nil, ErrGroupTypeMixed
	}
	if own.Season != other.Season {
		return nil, ErrGroupSeasonMixed
	}
	if !matchmaking.CanAcceptMerge(own.Type, own.MemberCount(), other.MemberCount()) {
		return nil, ErrGroupMergeOverflow
	}

	// Стабильный порядок аргументов правила: раньше созданная группа первой.
	first, second := own, other
	if second.CreatedAt.Before(first.CreatedAt) {
		first, second = second, first
	}

	resolution := matchmaking.ResolvePairing(
		matchmaking.GroupHead{ID: first.ID, MemberCount: first.MemberCount()},
		matchmaking.GroupHead{ID: second.ID, MemberCount: second.MemberCount()},
	)

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.groupRepo.MoveMembers(ctx, tx, resolution.OtherID, resolution.SurvivingID, resolution.StripCaptainFromOther); err != nil {
			return err
		}
		if err := s.groupRepo.UpdateStatus(ctx, tx, resolution.OtherID, models.GroupStatusDissolved); err != nil {
			return err
		}
		return s.groupRepo.Touch(ctx, tx, resolution.SurvivingID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, resolution.SurvivingID)
}
