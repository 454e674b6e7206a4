package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
	"github.com/Dosada05/league-platform/skill"
	"github.com/Dosada05/league-platform/storage"
)

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// RatingKey возвращает канонический идентификатор состава команды,
	// под которым хранится её рейтинг.
	RatingKey(ctx context.Context, teamID int) (string, error)
	UploadLogo(ctx context.Context, teamID, requesterID int, contentType string, file io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name      string `json:"name"`
	CaptainID int    `json:"captain_id"`
	// MemberIDs включает капитана; ровно четыре игрока.
	MemberIDs []int `json:"member_ids"`
}

type teamService struct {
	db       *sql.DB
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		db:       db,
		teamRepo: teamRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if len(input.MemberIDs) != skill.TeamRosterSize {
		return nil, ErrTeamRosterSize
	}

	captainListed := false
	seen := make(map[int]struct{}, len(input.MemberIDs))
	for _, id := range input.MemberIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrValidationFailed
		}
		seen[id] = struct{}{}
		if id == input.CaptainID {
			captainListed = true
		}
	}
	if !captainListed {
		return nil, ErrValidationFailed
	}

	team := &models.Team{
		Name:      input.Name,
		CaptainID: input.CaptainID,
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return err
		}
		for _, userID := range input.MemberIDs {
			if err := s.teamRepo.AddMember(ctx, tx, team.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, team.ID)
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	memberIDs, err := s.teamRepo.ListMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.userRepo.ListByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		m.PasswordHash = ""
		team.Members = append(team.Members, *m)
	}

	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) RatingKey(ctx context.Context, teamID int) (string, error) {
	memberIDs, err := s.teamRepo.ListMemberIDs(ctx, teamID)
	if err != nil {
		return "", err
	}
	if len(memberIDs) != skill.TeamRosterSize {
		return "", ErrTeamRosterSize
	}
	return skill.TeamKey(memberIDs), nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, requesterID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.CaptainID != requesterID {
		return nil, ErrCaptainOnly
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, ErrValidationFailed
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if team.LogoKey != nil && *team.LogoKey != key {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		return nil, err
	}

	team.LogoKey = &key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}
