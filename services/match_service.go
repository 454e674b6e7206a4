package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/league-platform/brackets"
	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
	"github.com/Dosada05/league-platform/scoring"
	"github.com/Dosada05/league-platform/storage"
)

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// ReportMapResult принимает результат очередной карты. Если карта
	// решает серию, матч финализируется и рейтинги обновляются в той же
	// транзакции.
	ReportMapResult(ctx context.Context, matchID int, winnerSide models.Side) (*models.Match, error)
	UploadScreenshot(ctx context.Context, matchID int, contentType string, file io.Reader) (*models.Match, error)
}

type CreateMatchInput struct {
	Season       int `json:"season"`
	AlphaGroupID int `json:"alpha_group_id"`
	BravoGroupID int `json:"bravo_group_id"`
	BestOf       int `json:"best_of"`
}

type matchService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	groupRepo repositories.GroupRepository
	skills    SkillService
	uploader  storage.FileUploader
	hub       *brackets.Hub
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	groupRepo repositories.GroupRepository,
	skills SkillService,
	uploader storage.FileUploader,
	hub *brackets.Hub,
) MatchService {
	return &matchService{
		db:        db,
		matchRepo: matchRepo,
		groupRepo: groupRepo,
		skills:    skills,
		uploader:  uploader,
		hub:       hub,
	}
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.BestOf < 1 || input.BestOf%2 == 0 {
		return nil, ErrInvalidBestOf
	}
	if input.AlphaGroupID == input.BravoGroupID {
		return nil, ErrValidationFailed
	}

	alpha, err := s.loadGroup(ctx, input.AlphaGroupID)
	if err != nil {
		return nil, err
	}
	bravo, err := s.loadGroup(ctx, input.BravoGroupID)
	if err != nil {
		return nil, err
	}
	if alpha.Status != models.GroupStatusLooking || bravo.Status != models.GroupStatusLooking {
		return nil, ErrGroupNotLooking
	}
	if alpha.Season != bravo.Season || alpha.Season != input.Season {
		return nil, ErrGroupSeasonMixed
	}

	match := &models.Match{
		Season:       input.Season,
		AlphaGroupID: input.AlphaGroupID,
		BravoGroupID: input.BravoGroupID,
		BestOf:       input.BestOf,
		Status:       models.MatchStatusInProgress,
	}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return err
		}
		if err := s.groupRepo.UpdateStatus(ctx, tx, alpha.ID, models.GroupStatusMatchedUp); err != nil {
			return err
		}
		return s.groupRepo.UpdateStatus(ctx, tx, bravo.ID, models.GroupStatusMatchedUp)
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	s.populateScreenshotURL(match)
	return match, nil
}

func (s *matchService) ReportMapResult(ctx context.Context, matchID int, winnerSide models.Side) (*models.Match, error) {
	if winnerSide != models.SideAlpha && winnerSide != models.SideBravo {
		return nil, ErrValidationFailed
	}

	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyFinal
	}
	if match.Status != models.MatchStatusInProgress {
		return nil, ErrMatchNotInProgress
	}

	proposed := append(match.MapWinners(), winnerSide)
	if !scoring.ValidateSeries(proposed, match.BestOf) {
		return nil, ErrScoreInvalid
	}
	decided := scoring.SeriesDecided(proposed, match.BestOf)

	result := &models.MapResult{
		MatchID:    matchID,
		Order:      len(proposed),
		WinnerSide: winnerSide,
	}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.AddMapResult(ctx, tx, result); err != nil {
			return err
		}
		if !decided {
			return nil
		}
		if err := s.matchRepo.Finalize(ctx, tx, matchID, winnerSide); err != nil {
			return err
		}
		final := *match
		final.WinnerSide = &winnerSide
		final.MapResults = append(final.MapResults, *result)
		return s.skills.ApplyMatchResult(ctx, tx, &final)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(fmt.Sprintf("season:%d", match.Season), brackets.WebSocketMessage{
			Type:    brackets.MessageMatchUpdated,
			Payload: updated,
		})
		if decided {
			s.hub.BroadcastToRoom(fmt.Sprintf("season:%d", match.Season), brackets.WebSocketMessage{
				Type:    brackets.MessageLeaderboardUpdated,
				Payload: map[string]int{"season": match.Season},
			})
		}
	}
	return updated, nil
}

func (s *matchService) UploadScreenshot(ctx context.Context, matchID int, contentType string, file io.Reader) (*models.Match, error) {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, ErrValidationFailed
	}

	key := fmt.Sprintf("matches/%d/screenshot%s", matchID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload match screenshot: %w", err)
	}

	if match.ScreenshotKey != nil && *match.ScreenshotKey != key {
		_ = s.uploader.Delete(ctx, *match.ScreenshotKey)
	}

	if err := s.matchRepo.UpdateScreenshotKey(ctx, matchID, &key); err != nil {
		return nil, err
	}

	match.ScreenshotKey = &key
	s.populateScreenshotURL(match)
	return match, nil
}

func (s *matchService) loadGroup(ctx context.Context, id int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *matchService) populateScreenshotURL(match *models.Match) {
	if match == nil || match.ScreenshotKey == nil || *match.ScreenshotKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*match.ScreenshotKey); url != "" {
		match.ScreenshotURL = &url
	}
}
