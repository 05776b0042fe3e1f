// Package queue defines message payloads exchanged over the message broker.
package queue

// InningsCompletedEvent is published when an innings reaches a terminal
// state, whether by auto-progression, an explicit end or an admin
// override.  It carries the final scoreline so downstream consumers can
// notify or archive without querying the primary database.
type InningsCompletedEvent struct {
	MatchID       string  `json:"match_id"`
	InningsNumber int     `json:"innings_number"`
	BattingTeam   string  `json:"batting_team"`
	BowlingTeam   string  `json:"bowling_team"`
	Runs          int     `json:"runs"`
	Wickets       int     `json:"wickets"`
	Overs         float64 `json:"overs"`
	Status        string  `json:"status"`
	Result        string  `json:"result"`
	Description   string  `json:"description,omitempty"`
	CompletedAt   string  `json:"completed_at"`
}
