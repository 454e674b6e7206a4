package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCanceled   MatchStatus = "canceled"
)

// Side identifies one of the two sides of a match.
type Side string

const (
	SideAlpha Side = "ALPHA"
	SideBravo Side = "BRAVO"
)

// Match - матч двух групп в рамках сезона. Счёт серии хранится
// помапно в MapResult, порядок карт - поле Order.
type Match struct {
	ID            int         `json:"id"`
	Season        int         `json:"season"`
	AlphaGroupID  int         `json:"alpha_group_id"`
	BravoGroupID  int         `json:"bravo_group_id"`
	BestOf        int         `json:"best_of"`
	Status        MatchStatus `json:"status"`
	WinnerSide    *Side       `json:"winner_side,omitempty"`
	ScreenshotKey *string     `json:"-"`
	ScreenshotURL *string     `json:"screenshot_url,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	ReportedAt    *time.Time  `json:"reported_at,omitempty"`

	MapResults []MapResult `json:"map_results,omitempty"`
}

// MapResult - результат одной карты серии.
type MapResult struct {
	MatchID    int       `json:"match_id"`
	Order      int       `json:"order"`
	WinnerSide Side      `json:"winner_side"`
	ReportedAt time.Time `json:"reported_at"`
}

// MapWinners returns per-map winner sides in report order.
func (m *Match) MapWinners() []Side {
	winners := make([]Side, 0, len(m.MapResults))
	for _, r := range m.MapResults {
		winners = append(winners, r.WinnerSide)
	}
	return winners
}
