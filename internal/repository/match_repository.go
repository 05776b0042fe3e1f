package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/live-cricket-scoring/internal/engine"
	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// MatchRepo manages the match fixtures the engine validates innings
// against.  It implements engine.MatchStore.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo returns a new MatchRepo bound to the given database.
func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

// Get returns the match with the given id, or engine.ErrNotFound.
func (r *MatchRepo) Get(ctx context.Context, id string) (*model.Match, error) {
	const q = `SELECT id, home_team, away_team, format, max_overs,
       allow_declarations, drs_reviews_per_innings, status, created_at, updated_at
       FROM matches WHERE id = ?`
	var m model.Match
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Format, &m.MaxOvers,
		&m.AllowDeclarations, &m.DRSReviewsPerInnings, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new fixture.  A duplicate id returns ErrConflict.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) error {
	const q = `INSERT INTO matches
       (id, home_team, away_team, format, max_overs,
        allow_declarations, drs_reviews_per_innings, status, created_at, updated_at)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.HomeTeam, m.AwayTeam, m.Format, m.MaxOvers,
		m.AllowDeclarations, m.DRSReviewsPerInnings, m.Status,
		m.CreatedAt, m.UpdatedAt,
	)
	if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
		return ErrConflict
	}
	return err
}

// List returns every fixture, newest first.
func (r *MatchRepo) List(ctx context.Context) ([]model.Match, error) {
	const q = `SELECT id, home_team, away_team, format, max_overs,
       allow_declarations, drs_reviews_per_innings, status, created_at, updated_at
       FROM matches ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Match, 0)
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(
			&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Format, &m.MaxOvers,
			&m.AllowDeclarations, &m.DRSReviewsPerInnings, &m.Status,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetStatus updates the fixture's lifecycle status (SCHEDULED, LIVE,
// FINISHED).  The engine does not gate on match status; this exists so
// listings can filter live matches cheaply.
func (r *MatchRepo) SetStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE matches SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
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
