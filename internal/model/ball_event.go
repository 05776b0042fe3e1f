package model

// BallEvent describes a single delivery as submitted by the scorer.  The
// engine applies the counters and decides whether the event triggers an
// automatic end of the innings (all out, overs completed, target reached).
//
// Runs counts runs off the bat; Extras counts byes/leg byes/wides/no-balls
// conceded on the delivery.  Both feed the team total.  Illegal marks a
// wide or no-ball: an illegal delivery must be re-bowled and therefore
// does not advance the over count.  The over boundary is derived from the
// ball count, never trusted from the caller.
type BallEvent struct {
	MatchID       string `json:"matchId"`
	InningsNumber int    `json:"inningsNumber"`
	Runs          int    `json:"runs"`
	Extras        int    `json:"extras"`
	Wicket        bool   `json:"isWicket"`
	Boundary      bool   `json:"isBoundary"`
	Six           bool   `json:"isSix"`
	Illegal       bool   `json:"isIllegal"`
}
