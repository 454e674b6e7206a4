package models

import "time"

// GroupType определяет целевой размер состава группы.
type GroupType string

const (
	GroupTypeTwin   GroupType = "TWIN"
	GroupTypeQuad   GroupType = "QUAD"
	GroupTypeVersus GroupType = "VERSUS"
)

// MaxSize returns the target roster size for the group type.
func (t GroupType) MaxSize() int {
	if t == GroupTypeTwin {
		return 2
	}
	return 4
}

func (t GroupType) Valid() bool {
	switch t {
	case GroupTypeTwin, GroupTypeQuad, GroupTypeVersus:
		return true
	}
	return false
}

type GroupStatus string

const (
	GroupStatusPreparing GroupStatus = "preparing"
	GroupStatusLooking   GroupStatus = "looking"
	GroupStatusMatchedUp GroupStatus = "matched_up"
	GroupStatusDissolved GroupStatus = "dissolved"
)

// Group - временная группа игроков, ищущая матч.
type Group struct {
	ID             int         `json:"id"`
	Type           GroupType   `json:"type"`
	Status         GroupStatus `json:"status"`
	Season         int         `json:"season"`
	CreatedAt      time.Time   `json:"created_at"`
	LatestActionAt time.Time   `json:"latest_action_at"`

	Members []GroupMember `json:"members,omitempty"`
}

func (g *Group) MemberCount() int {
	return len(g.Members)
}

type GroupMember struct {
	GroupID   int       `json:"group_id"`
	UserID    int       `json:"user_id"`
	IsCaptain bool      `json:"is_captain"`
	JoinedAt  time.Time `json:"joined_at"`

	User *User `json:"user,omitempty"`
}
