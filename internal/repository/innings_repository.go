package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/live-cricket-scoring/internal/engine"
	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// InningsRepo persists innings snapshots keyed by (match_id,
// innings_number).  It implements engine.Store.  Power plays are stored
// as a JSON column rather than a separate table: they are a small ordered
// list that is always read and written with the innings row.  All
// timestamps are stored in UTC.
type InningsRepo struct {
	db *sql.DB
}

// NewInningsRepo returns a new InningsRepo bound to the given database.
func NewInningsRepo(db *sql.DB) *InningsRepo { return &InningsRepo{db: db} }

const inningsColumns = `match_id, innings_number, batting_team, bowling_team,
       runs, wickets, overs, extras, boundaries, sixes,
       status, result, result_description,
       start_time, end_time, duration_mins,
       striker, non_striker, bowler, players_updated_at,
       drs_used, drs_remaining, power_plays,
       created_at, updated_at`

// Get returns one innings.  Missing rows map to engine.ErrNotFound.
func (r *InningsRepo) Get(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error) {
	q := `SELECT ` + inningsColumns + ` FROM innings WHERE match_id = ? AND innings_number = ?`
	row := r.db.QueryRowContext(ctx, q, matchID, inningsNumber)
	in, err := scanInnings(row)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// ListByMatch returns every innings of a match ordered by innings number.
// A match with no innings yields an empty slice, not an error.
func (r *InningsRepo) ListByMatch(ctx context.Context, matchID string) ([]model.Innings, error) {
	q := `SELECT ` + inningsColumns + ` FROM innings WHERE match_id = ? ORDER BY innings_number`
	rows, err := r.db.QueryContext(ctx, q, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Innings, 0)
	for rows.Next() {
		in, err := scanInnings(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts the snapshot.  The engine owns all validation; the
// repository writes whatever it is handed in a single statement so a
// snapshot is never half-visible.
func (r *InningsRepo) Save(ctx context.Context, in *model.Innings) error {
	powerPlays, err := json.Marshal(in.PowerPlays)
	if err != nil {
		return fmt.Errorf("marshal power plays: %w", err)
	}
	const q = `INSERT INTO innings (` + `
       match_id, innings_number, batting_team, bowling_team,
       runs, wickets, overs, extras, boundaries, sixes,
       status, result, result_description,
       start_time, end_time, duration_mins,
       striker, non_striker, bowler, players_updated_at,
       drs_used, drs_remaining, power_plays,
       created_at, updated_at` + `
       ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
       ON DUPLICATE KEY UPDATE
       batting_team = VALUES(batting_team), bowling_team = VALUES(bowling_team),
       runs = VALUES(runs), wickets = VALUES(wickets), overs = VALUES(overs),
       extras = VALUES(extras), boundaries = VALUES(boundaries), sixes = VALUES(sixes),
       status = VALUES(status), result = VALUES(result),
       result_description = VALUES(result_description),
       start_time = VALUES(start_time), end_time = VALUES(end_time),
       duration_mins = VALUES(duration_mins),
       striker = VALUES(striker), non_striker = VALUES(non_striker),
       bowler = VALUES(bowler), players_updated_at = VALUES(players_updated_at),
       drs_used = VALUES(drs_used), drs_remaining = VALUES(drs_remaining),
       power_plays = VALUES(power_plays), updated_at = VALUES(updated_at)`

	var result sql.NullString
	if in.Result != "" {
		result = sql.NullString{String: string(in.Result), Valid: true}
	}
	var startTime, endTime, playersUpdated sql.NullTime
	if in.StartTime != nil {
		startTime = sql.NullTime{Time: *in.StartTime, Valid: true}
	}
	if in.EndTime != nil {
		endTime = sql.NullTime{Time: *in.EndTime, Valid: true}
	}
	if !in.Players.LastUpdated.IsZero() {
		playersUpdated = sql.NullTime{Time: in.Players.LastUpdated, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, q,
		in.MatchID, in.InningsNumber, in.BattingTeam, in.BowlingTeam,
		in.Runs, in.Wickets, in.Overs, in.Extras, in.Boundaries, in.Sixes,
		string(in.Status), result, in.ResultDescription,
		startTime, endTime, in.DurationMins,
		in.Players.Striker, in.Players.NonStriker, in.Players.Bowler, playersUpdated,
		in.DRSUsed, in.DRSRemaining, powerPlays,
		in.CreatedAt, in.UpdatedAt,
	)
	return err
}

// Delete removes one innings row.  Deleting a row that does not exist
// returns engine.ErrNotFound so the admin sees the stale reference.
func (r *InningsRepo) Delete(ctx context.Context, matchID string, inningsNumber int) error {
	const q = `DELETE FROM innings WHERE match_id = ? AND innings_number = ?`
	res, err := r.db.ExecContext(ctx, q, matchID, inningsNumber)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.ErrNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanInnings reads one row in inningsColumns order.
func scanInnings(row rowScanner) (*model.Innings, error) {
	var in model.Innings
	var status string
	var result, resultDesc, striker, nonStriker, bowler sql.NullString
	var startTime, endTime, playersUpdated sql.NullTime
	var powerPlays []byte

	err := row.Scan(
		&in.MatchID, &in.InningsNumber, &in.BattingTeam, &in.BowlingTeam,
		&in.Runs, &in.Wickets, &in.Overs, &in.Extras, &in.Boundaries, &in.Sixes,
		&status, &result, &resultDesc,
		&startTime, &endTime, &in.DurationMins,
		&striker, &nonStriker, &bowler, &playersUpdated,
		&in.DRSUsed, &in.DRSRemaining, &powerPlays,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	in.Status = model.InningsStatus(status)
	if result.Valid {
		in.Result = model.InningsResult(result.String)
	}
	if resultDesc.Valid {
		in.ResultDescription = resultDesc.String
	}
	if startTime.Valid {
		t := startTime.Time.UTC()
		in.StartTime = &t
	}
	if endTime.Valid {
		t := endTime.Time.UTC()
		in.EndTime = &t
	}
	if striker.Valid {
		in.Players.Striker = striker.String
	}
	if nonStriker.Valid {
		in.Players.NonStriker = nonStriker.String
	}
	if bowler.Valid {
		in.Players.Bowler = bowler.String
	}
	if playersUpdated.Valid {
		in.Players.LastUpdated = playersUpdated.Time.UTC()
	}
	if len(powerPlays) > 0 {
		if err := json.Unmarshal(powerPlays, &in.PowerPlays); err != nil {
			return nil, fmt.Errorf("unmarshal power plays: %w", err)
		}
	}
	return &in, nil
}
