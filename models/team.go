package models

import "time"

// Team - постоянная команда из четырёх игроков. Для рейтинга команда
// идентифицируется каноническим ключом (см. skill.TeamKey), а не ID,
// чтобы состав определял идентичность независимо от порядка.
type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CaptainID int       `json:"captain_id"`
	LogoKey   *string   `json:"-"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Members []User `json:"members,omitempty"`
}
