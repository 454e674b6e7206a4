package models

import "time"

// Skill - одна строка рейтинга. Строки никогда не обновляются на месте:
// после каждого матча вставляется новая, текущий рейтинг = последняя строка
// для (user_id | identifier, season).
type Skill struct {
	ID           int       `json:"id"`
	Mu           float64   `json:"mu"`
	Sigma        float64   `json:"sigma"`
	Ordinal      float64   `json:"ordinal"`
	Season       int       `json:"season"`
	MatchesCount int       `json:"matches_count"`
	// Ровно одно из двух полей заполнено: UserID для индивидуального
	// рейтинга, Identifier (канонический ключ команды) для командного.
	UserID     *int    `json:"user_id,omitempty"`
	Identifier *string `json:"identifier,omitempty"`
	// Матч, по итогам которого строка была создана.
	MatchID   *int      `json:"match_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
