package model

import "time"

// Match holds the fixture configuration the scoring engine reads when it
// validates transitions.  The engine never mutates a match; matches are
// created by an admin before the first innings exists.
//
// Fields:
//  ID                   – opaque match identifier.
//  HomeTeam / AwayTeam  – the two competing teams (must differ).
//  Format               – limited-overs format label (e.g. "T20", "ODI").
//  MaxOvers             – configured maximum overs per innings.
//  AllowDeclarations    – whether the format permits declaring an innings.
//  DRSReviewsPerInnings – fixed DRS review allotment per innings.
//  Status               – current state of the match (SCHEDULED, LIVE,
//                         FINISHED).
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Match struct {
	ID                   string    `json:"matchId"`              // matches.id
	HomeTeam             string    `json:"homeTeam"`             // matches.home_team
	AwayTeam             string    `json:"awayTeam"`             // matches.away_team
	Format               string    `json:"format"`               // matches.format
	MaxOvers             int       `json:"maxOvers"`             // matches.max_overs
	AllowDeclarations    bool      `json:"allowDeclarations"`    // matches.allow_declarations
	DRSReviewsPerInnings int       `json:"drsReviewsPerInnings"` // matches.drs_reviews_per_innings
	Status               string    `json:"status"`               // matches.status
	CreatedAt            time.Time `json:"createdAt"`            // matches.created_at
	UpdatedAt            time.Time `json:"updatedAt"`            // matches.updated_at
}
