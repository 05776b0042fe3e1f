package model

import "time"

// InningsStatus enumerates the lifecycle states of an innings.  COMPLETED
// and DECLARED are terminal; no transition may leave them.
type InningsStatus string

const (
	StatusNotStarted InningsStatus = "NOT_STARTED"
	StatusInProgress InningsStatus = "IN_PROGRESS"
	StatusPaused     InningsStatus = "PAUSED"
	StatusCompleted  InningsStatus = "COMPLETED"
	StatusDeclared   InningsStatus = "DECLARED"
)

// InningsResult records why an innings ended.  It is only meaningful once
// the status is COMPLETED or DECLARED.
type InningsResult string

const (
	ResultAllOut         InningsResult = "ALL_OUT"
	ResultTargetReached  InningsResult = "TARGET_REACHED"
	ResultOversCompleted InningsResult = "OVERS_COMPLETED"
	ResultDeclaration    InningsResult = "DECLARATION"
)

// CurrentPlayers names the three players on the field for the batting
// side's point of view.  Striker and non-striker must always differ; the
// bowler may not be either batter.
type CurrentPlayers struct {
	Striker     string    `json:"striker"`
	NonStriker  string    `json:"nonStriker"`
	Bowler      string    `json:"bowler"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// PowerPlay is one fielding-restriction period.  The power plays recorded
// for an innings form a non-overlapping sequence ordered by StartOver.
// Active marks the power play currently in force, if any.
type PowerPlay struct {
	Type               string `json:"type"` // e.g. "mandatory", "batting", "bowling"
	StartOver          int    `json:"startOver"`
	EndOver            int    `json:"endOver"`
	MaxFieldersOutside int    `json:"maxFieldersOutside"`
	Active             bool   `json:"isActive"`
}

// Innings is the authoritative snapshot of one team's batting turn.  It is
// pure data: every mutation goes through the lifecycle engine, which keeps
// the counters and the status machine consistent.  Run rate and required
// run rate are derived on demand and never stored.
//
// Fields:
//  MatchID        – match this innings belongs to (foreign key, not owned).
//  InningsNumber  – 1-based position within the match; innings N chases
//                   the total of innings N-1.
//  BattingTeam    – team at the crease (differs from BowlingTeam).
//  BowlingTeam    – fielding team.
//  Runs           – total runs including extras.
//  Wickets        – wickets fallen, 0–10.
//  Overs          – overs bowled; the single fractional digit counts balls
//                   within the current over (0–5).
//  Extras         – byes, leg byes, wides and no-balls.
//  Boundaries     – fours struck.
//  Sixes          – sixes struck.
//  Status         – lifecycle state, see InningsStatus.
//  Result         – why the innings ended, see InningsResult.
//  StartTime      – set when the innings first leaves NOT_STARTED.
//  EndTime        – set iff the status is COMPLETED or DECLARED.
//  DurationMins   – EndTime minus StartTime in whole minutes.
//  Players        – current striker/non-striker/bowler assignment.
//  DRSUsed        – DRS reviews consumed.
//  DRSRemaining   – DRS reviews left; Used+Remaining equals the match's
//                   per-innings allotment.
//  PowerPlays     – ordered, non-overlapping power play periods.
type Innings struct {
	MatchID           string         `json:"matchId"`           // innings.match_id
	InningsNumber     int            `json:"inningsNumber"`     // innings.innings_number
	BattingTeam       string         `json:"battingTeam"`       // innings.batting_team
	BowlingTeam       string         `json:"bowlingTeam"`       // innings.bowling_team
	Runs              int            `json:"runs"`              // innings.runs
	Wickets           int            `json:"wickets"`           // innings.wickets
	Overs             float64        `json:"overs"`             // innings.overs
	Extras            int            `json:"extras"`            // innings.extras
	Boundaries        int            `json:"boundaries"`        // innings.boundaries
	Sixes             int            `json:"sixes"`             // innings.sixes
	Status            InningsStatus  `json:"status"`            // innings.status
	Result            InningsResult  `json:"result,omitempty"`  // innings.result (empty until ended)
	ResultDescription string         `json:"resultDescription,omitempty"`
	StartTime         *time.Time     `json:"startTime,omitempty"` // innings.start_time (nullable)
	EndTime           *time.Time     `json:"endTime,omitempty"`   // innings.end_time (nullable)
	DurationMins      int            `json:"duration"`            // innings.duration_mins
	Players           CurrentPlayers `json:"currentPlayers"`
	DRSUsed           int            `json:"drsReviewsUsed"`      // innings.drs_used
	DRSRemaining      int            `json:"drsReviewsRemaining"` // innings.drs_remaining
	PowerPlays        []PowerPlay    `json:"powerPlays,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"` // innings.created_at
	UpdatedAt         time.Time      `json:"updatedAt"` // innings.updated_at
}

// Live reports whether the innings currently occupies the match: at most
// one innings per match may be live at a time.
func (i *Innings) Live() bool {
	return i.Status == StatusInProgress || i.Status == StatusPaused
}

// Terminal reports whether the innings has reached a state no transition
// may leave.
func (i *Innings) Terminal() bool {
	return i.Status == StatusCompleted || i.Status == StatusDeclared
}

// CurrentPowerPlay returns the power play currently in force, or nil.
func (i *Innings) CurrentPowerPlay() *PowerPlay {
	for idx := range i.PowerPlays {
		if i.PowerPlays[idx].Active {
			return &i.PowerPlays[idx]
		}
	}
	return nil
}

// Clone returns a deep copy.  The engine mutates copies and only a
// successful save publishes them, so failed commands leave the stored
// record untouched.
func (i *Innings) Clone() *Innings {
	out := *i
	if i.StartTime != nil {
		t := *i.StartTime
		out.StartTime = &t
	}
	if i.EndTime != nil {
		t := *i.EndTime
		out.EndTime = &t
	}
	if i.PowerPlays != nil {
		out.PowerPlays = make([]PowerPlay, len(i.PowerPlays))
		copy(out.PowerPlays, i.PowerPlays)
	}
	return &out
}
