package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
	"github.com/Dosada05/league-platform/skill"
	"github.com/Dosada05/league-platform/storage"
)

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, id, requesterID int, status models.TournamentStatus) (*models.Tournament, error)
	RegisterTeam(ctx context.Context, tournamentID, teamID, requesterID int) error
	UploadLogo(ctx context.Context, tournamentID, requesterID int, contentType string, file io.Reader) (*models.Tournament, error)
}

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OrganizerID int       `json:"organizer_id"`
	StartDate   time.Time `json:"start_date"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	stageRepo      repositories.StageRepository
	teamRepo       repositories.TeamRepository
	uploader       storage.FileUploader
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	stageRepo repositories.StageRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		stageRepo:      stageRepo,
		teamRepo:       teamRepo,
		uploader:       uploader,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" || input.StartDate.IsZero() {
		return nil, ErrValidationFailed
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		OrganizerID: input.OrganizerID,
		StartDate:   input.StartDate,
		Status:      models.StatusSoon,
	}
	if err := s.tournamentRepo.Create(ctx, nil, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	stages, err := s.stageRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, stage := range stages {
		tournament.Stages = append(tournament.Stages, *stage)
	}

	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id, requesterID int, status models.TournamentStatus) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, ErrTournamentInvalidStatusTransition
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, err
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) RegisterTeam(ctx context.Context, tournamentID, teamID, requesterID int) error {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != models.StatusRegistration {
		return ErrTournamentInvalidStatusTransition
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if team.CaptainID != requesterID {
		return ErrCaptainOnly
	}

	// Регистрируются только полные составы: неполная команда не может
	// быть посеяна в сетку.
	memberIDs, err := s.teamRepo.ListMemberIDs(ctx, teamID)
	if err != nil {
		return err
	}
	if len(memberIDs) != skill.TeamRosterSize {
		return ErrTeamRosterSize
	}

	return s.tournamentRepo.RegisterTeam(ctx, tournamentID, teamID)
}

func (s *tournamentService) UploadLogo(ctx context.Context, tournamentID, requesterID int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, ErrValidationFailed
	}

	key := fmt.Sprintf("tournaments/%d/logo%s", tournamentID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	if tournament.LogoKey != nil && *tournament.LogoKey != key {
		_ = s.uploader.Delete(ctx, *tournament.LogoKey)
	}

	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &key); err != nil {
		return nil, err
	}

	tournament.LogoKey = &key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(tournament *models.Tournament) {
	if tournament == nil || tournament.LogoKey == nil || *tournament.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*tournament.LogoKey); url != "" {
		tournament.LogoURL = &url
	}
}
