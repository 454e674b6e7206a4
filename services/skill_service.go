package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
	"github.com/Dosada05/league-platform/skill"
	"github.com/intinig/go-openskill/types"
	"golang.org/x/sync/errgroup"
)

type SkillService interface {
	// ApplyMatchResult вставляет новые рейтинговые строки для всех
	// участников завершённого матча. Вызывается внутри транзакции
	// финализации матча.
	ApplyMatchResult(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error
	Leaderboard(ctx context.Context, season int) (*Leaderboard, error)
	// RebuildSeason сносит журнал сезона и переигрывает все завершённые
	// матчи в хронологическом порядке.
	RebuildSeason(ctx context.Context, season int) error
}

// LeaderboardEntry - одна строка таблицы лидеров. Score - округлённое
// отображаемое значение; сортировка всегда по сырому ординалу.
type LeaderboardEntry struct {
	UserID       *int       `json:"user_id,omitempty"`
	Identifier   *string    `json:"identifier,omitempty"`
	Score        float64    `json:"score"`
	MatchesCount int        `json:"matches_count"`
	Tier         skill.Tier `json:"tier"`
}

type Leaderboard struct {
	Season        int                  `json:"season"`
	Users         []LeaderboardEntry   `json:"users"`
	Teams         []LeaderboardEntry   `json:"teams"`
	TierIntervals []skill.TierInterval `json:"tier_intervals"`
}

type skillService struct {
	db        *sql.DB
	skillRepo repositories.SkillRepository
	groupRepo repositories.GroupRepository
	matchRepo repositories.MatchRepository
}

func NewSkillService(
	db *sql.DB,
	skillRepo repositories.SkillRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
) SkillService {
	return &skillService{
		db:        db,
		skillRepo: skillRepo,
		groupRepo: groupRepo,
		matchRepo: matchRepo,
	}
}

func (s *skillService) ApplyMatchResult(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	if match.WinnerSide == nil {
		return ErrMatchNotInProgress
	}

	winnerGroupID, loserGroupID := match.AlphaGroupID, match.BravoGroupID
	if *match.WinnerSide == models.SideBravo {
		winnerGroupID, loserGroupID = loserGroupID, winnerGroupID
	}

	winnerGroup, err := s.groupRepo.GetByID(ctx, winnerGroupID)
	if err != nil {
		return fmt.Errorf("failed to load winner group: %w", err)
	}
	loserGroup, err := s.groupRepo.GetByID(ctx, loserGroupID)
	if err != nil {
		return fmt.Errorf("failed to load loser group: %w", err)
	}

	if err := s.applyUserRatings(ctx, exec, match, winnerGroup, loserGroup); err != nil {
		return err
	}
	return s.applyTeamRatings(ctx, exec, match, winnerGroup, loserGroup)
}

func (s *skillService) applyUserRatings(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, winnerGroup, loserGroup *models.Group) error {
	teams := make([][]types.Rating, 2)
	counts := make([][]int, 2)

	for i, group := range []*models.Group{winnerGroup, loserGroup} {
		teams[i] = make([]types.Rating, len(group.Members))
		counts[i] = make([]int, len(group.Members))
		for j, member := range group.Members {
			current, err := s.skillRepo.GetCurrentUserSkill(ctx, exec, member.UserID, match.Season)
			if err != nil {
				return err
			}
			if current == nil {
				teams[i][j] = skill.DefaultRating()
				counts[i][j] = 0
			} else {
				teams[i][j] = types.Rating{Mu: current.Mu, Sigma: current.Sigma}
				counts[i][j] = current.MatchesCount
			}
		}
	}

	rated := skill.Rate(teams, skill.Tau, true)

	for i, group := range []*models.Group{winnerGroup, loserGroup} {
		for j, member := range group.Members {
			userID := member.UserID
			row := &models.Skill{
				Mu:           rated[i][j].Mu,
				Sigma:        rated[i][j].Sigma,
				Ordinal:      skill.Ordinal(rated[i][j]),
				Season:       match.Season,
				MatchesCount: counts[i][j] + 1,
				UserID:       &userID,
				MatchID:      &match.ID,
			}
			if err := s.skillRepo.Create(ctx, exec, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyTeamRatings обновляет командные рейтинги, когда обе стороны вышли
// полным фиксированным составом. Неполные составы пропускаются молча:
// индивидуальные рейтинги уже обновлены.
func (s *skillService) applyTeamRatings(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, winnerGroup, loserGroup *models.Group) error {
	keys := make([]string, 2)
	for i, group := range []*models.Group{winnerGroup, loserGroup} {
		if group.MemberCount() != skill.TeamRosterSize {
			return nil
		}
		ids := make([]int, 0, skill.TeamRosterSize)
		for _, m := range group.Members {
			ids = append(ids, m.UserID)
		}
		keys[i] = skill.TeamKey(ids)
	}

	teams := make([][]types.Rating, 2)
	counts := make([]int, 2)
	for i, key := range keys {
		current, err := s.skillRepo.GetCurrentTeamSkill(ctx, exec, key, match.Season)
		if err != nil {
			return err
		}
		if current == nil {
			teams[i] = []types.Rating{skill.DefaultRating()}
		} else {
			teams[i] = []types.Rating{{Mu: current.Mu, Sigma: current.Sigma}}
			counts[i] = current.MatchesCount
		}
	}

	rated := skill.Rate(teams, skill.Tau, true)

	for i, key := range keys {
		identifier := key
		row := &models.Skill{
			Mu:           rated[i][0].Mu,
			Sigma:        rated[i][0].Sigma,
			Ordinal:      skill.Ordinal(rated[i][0]),
			Season:       match.Season,
			MatchesCount: counts[i] + 1,
			Identifier:   &identifier,
			MatchID:      &match.ID,
		}
		if err := s.skillRepo.Create(ctx, exec, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *skillService) Leaderboard(ctx context.Context, season int) (*Leaderboard, error) {
	var userSkills, teamSkills []*models.Skill

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userSkills, err = s.skillRepo.ListCurrentUserSkills(gctx, season)
		return err
	})
	g.Go(func() error {
		var err error
		teamSkills, err = s.skillRepo.ListCurrentTeamSkills(gctx, season)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Интервалы тиров считаются по распределению индивидуальных ординалов.
	ordinals := make([]float64, len(userSkills))
	for i, row := range userSkills {
		ordinals[i] = row.Ordinal
	}
	intervals := skill.TierIntervals(ordinals)

	board := &Leaderboard{
		Season:        season,
		Users:         s.toEntries(userSkills, intervals),
		Teams:         s.toEntries(teamSkills, intervals),
		TierIntervals: intervals,
	}
	return board, nil
}

func (s *skillService) toEntries(rows []*models.Skill, intervals []skill.TierInterval) []LeaderboardEntry {
	// ранжирование всегда по сырому ординалу, никогда по Score
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ordinal > rows[j].Ordinal })
	entries := make([]LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = LeaderboardEntry{
			UserID:       row.UserID,
			Identifier:   row.Identifier,
			Score:        skill.ToDisplayScore(row.Ordinal),
			MatchesCount: row.MatchesCount,
			Tier:         skill.TierOf(intervals, row.Ordinal),
		}
	}
	return entries
}

func (s *skillService) RebuildSeason(ctx context.Context, season int) error {
	matches, err := s.matchRepo.ListFinalizedBySeason(ctx, season)
	if err != nil {
		return err
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.skillRepo.DeleteSeason(ctx, tx, season); err != nil {
			return err
		}
		for _, match := range matches {
			if err := s.ApplyMatchResult(ctx, tx, match); err != nil {
				return fmt.Errorf("failed to replay match %d: %w", match.ID, err)
			}
		}
		return nil
	})
}
