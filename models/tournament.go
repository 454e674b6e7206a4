package models

import "time"

// BracketType представляет типы стадий турнира, соответствующие ENUM в БД.
type BracketType string

const (
	BracketSingleElimination BracketType = "single_elimination"
	BracketDoubleElimination BracketType = "double_elimination"
	BracketRoundRobin        BracketType = "round_robin"
	BracketSwiss             BracketType = "swiss"
)

func (t BracketType) Valid() bool {
	switch t {
	case BracketSingleElimination, BracketDoubleElimination, BracketRoundRobin, BracketSwiss:
		return true
	}
	return false
}

// CanResolveWinner reports whether a bracket of this type is able to
// produce a single champion on its own, without a follow-up stage.
func (t BracketType) CanResolveWinner() bool {
	return t == BracketSingleElimination || t == BracketDoubleElimination
}

// EliminationStyle reports whether the bracket eliminates teams round by
// round. Only elimination-style brackets have meaningful "bottom finisher"
// (negative) placements.
func (t BracketType) EliminationStyle() bool {
	return t == BracketSingleElimination || t == BracketDoubleElimination
}

type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// Tournament представляет турнир.
type Tournament struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	OrganizerID int              `json:"organizer_id"`
	StartDate   time.Time        `json:"start_date"`
	Status      TournamentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	LogoKey     *string          `json:"-"`
	LogoURL     *string          `json:"logo_url,omitempty"`

	Stages []Stage `json:"stages,omitempty"`
}

// Stage - одна материализованная стадия турнира. Создаётся только после
// успешной валидации прогрессии всего турнира.
type Stage struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	Name         string      `json:"name"`
	Type         BracketType `json:"type"`
	OrderIdx     int         `json:"order_idx"`
	// Настройки стадии (например, размер группы для round robin).
	TeamsPerGroup *int `json:"teams_per_group,omitempty"`
	GroupCount    *int `json:"group_count,omitempty"`
	// Разрешённые источники: из какой стадии и какие места приходят.
	Sources []StageSource `json:"sources,omitempty"`
}

// StageSource - разрешённая (валидированная) связь между стадиями.
type StageSource struct {
	StageID      int   `json:"stage_id"`
	FromStageIdx int   `json:"from_stage_idx"`
	Placements   []int `json:"placements"`
}

// StageMatch - матч внутри материализованной стадии.
type StageMatch struct {
	ID            int         `json:"id"`
	StageID       int         `json:"stage_id"`
	Round         int         `json:"round"`
	OrderInRound  int         `json:"order_in_round"`
	Team1ID       *int        `json:"team1_id,omitempty"`
	Team2ID       *int        `json:"team2_id,omitempty"`
	Status        MatchStatus `json:"status"`
	WinnerTeamID  *int        `json:"winner_team_id,omitempty"`
	NextMatchID   *int        `json:"next_match_id,omitempty"`
	WinnerToSlot  *int        `json:"winner_to_slot,omitempty"`
	ScheduledDate time.Time   `json:"scheduled_date"`
}
