package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// Store is the persistence capability the engine requires for innings.
// Implementations must return ErrNotFound for missing rows and must keep
// ListByMatch ordered by innings number.
type Store interface {
	Get(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error)
	ListByMatch(ctx context.Context, matchID string) ([]model.Innings, error)
	Save(ctx context.Context, in *model.Innings) error
	Delete(ctx context.Context, matchID string, inningsNumber int) error
}

// MatchStore resolves the match configuration (max overs, declaration
// rules, DRS allotment) the engine validates against.
type MatchStore interface {
	Get(ctx context.Context, id string) (*model.Match, error)
}

// Engine enforces the innings state machine.  All transitions for one
// match are serialized behind a per-match mutex: guard evaluation reads
// match-wide state (is another innings live?) and must not interleave with
// writes.  Every command loads the stored record, mutates a copy, and only
// a successful save publishes the copy, so a failed command leaves the
// record byte-for-byte unchanged.
type Engine struct {
	store   Store
	matches MatchStore
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New constructs an Engine.  Both stores must be non-nil.
func New(store Store, matches MatchStore) *Engine {
	if store == nil || matches == nil {
		panic("nil store passed to engine.New")
	}
	return &Engine{
		store:   store,
		matches: matches,
		now:     func() time.Time { return time.Now().UTC() },
		locks:   make(map[string]*sync.Mutex),
	}
}

// matchLock returns the mutex serializing all commands for one match.
func (e *Engine) matchLock(matchID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[matchID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[matchID] = l
	}
	return l
}

func (e *Engine) save(ctx context.Context, in *model.Innings) error {
	in.UpdatedAt = e.now()
	if err := e.store.Save(ctx, in); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return nil
}

// Create registers a new innings in NOT_STARTED.  Innings numbers must be
// contiguous from 1, the batting and bowling teams must differ, and teams
// must alternate with the previous innings.  The DRS allotment comes from
// the match configuration.
func (e *Engine) Create(ctx context.Context, matchID string, inningsNumber int, battingTeam, bowlingTeam string) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	m, err := e.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if battingTeam == "" || bowlingTeam == "" {
		return nil, fmt.Errorf("%w: batting and bowling teams are required", ErrInvalidValue)
	}
	if battingTeam == bowlingTeam {
		return nil, fmt.Errorf("%w: batting and bowling teams must differ", ErrInvalidValue)
	}
	existing, err := e.store.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if inningsNumber != len(existing)+1 {
		return nil, fmt.Errorf("%w: innings numbers must be contiguous, next is %d", ErrPreconditionFailed, len(existing)+1)
	}
	if len(existing) > 0 {
		prev := existing[len(existing)-1]
		if prev.BattingTeam != bowlingTeam || prev.BowlingTeam != battingTeam {
			return nil, fmt.Errorf("%w: batting and bowling teams must alternate between innings", ErrPreconditionFailed)
		}
	}

	in := &model.Innings{
		MatchID:       matchID,
		InningsNumber: inningsNumber,
		BattingTeam:   battingTeam,
		BowlingTeam:   bowlingTeam,
		Status:        model.StatusNotStarted,
		DRSRemaining:  m.DRSReviewsPerInnings,
		CreatedAt:     e.now(),
	}
	if err := e.save(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// Start moves a NOT_STARTED innings into IN_PROGRESS and stamps the start
// time.  At most one innings per match may be live, so starting while a
// sibling innings is IN_PROGRESS or PAUSED fails with
// ErrPreconditionFailed.
func (e *Engine) Start(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	if in.Status != model.StatusNotStarted {
		return nil, invalidTransition(in.Status, "start")
	}
	siblings, err := e.store.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	for idx := range siblings {
		if siblings[idx].InningsNumber != inningsNumber && siblings[idx].Live() {
			return nil, fmt.Errorf("%w: innings %d is already live for this match", ErrPreconditionFailed, siblings[idx].InningsNumber)
		}
	}

	next := in.Clone()
	next.Status = model.StatusInProgress
	started := e.now()
	next.StartTime = &started
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Pause suspends a live innings (rain delay, injury).
func (e *Engine) Pause(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error) {
	return e.shift(ctx, matchID, inningsNumber, "pause", model.StatusInProgress, model.StatusPaused)
}

// Resume returns a paused innings to IN_PROGRESS.
func (e *Engine) Resume(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error) {
	return e.shift(ctx, matchID, inningsNumber, "resume", model.StatusPaused, model.StatusInProgress)
}

// shift performs a simple guarded status change with no side effects.
func (e *Engine) shift(ctx context.Context, matchID string, inningsNumber int, event string, from, to model.InningsStatus) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	if in.Status != from {
		return nil, invalidTransition(in.Status, event)
	}
	next := in.Clone()
	next.Status = to
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// End completes a live innings with the given result.  TARGET_REACHED is
// only valid on a chasing innings (number > 1).
func (e *Engine) End(ctx context.Context, matchID string, inningsNumber int, result model.InningsResult, description string) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	if in.Status != model.StatusInProgress {
		return nil, invalidTransition(in.Status, "end")
	}
	switch result {
	case model.ResultAllOut, model.ResultTargetReached, model.ResultOversCompleted:
	default:
		return nil, fmt.Errorf("%w: result %q cannot end an innings", ErrInvalidValue, result)
	}
	if result == model.ResultTargetReached && inningsNumber <= 1 {
		return nil, fmt.Errorf("%w: the first innings has no target to reach", ErrPreconditionFailed)
	}

	next := in.Clone()
	e.complete(next, model.StatusCompleted, result, description)
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Declare ends a live innings voluntarily.  Only formats that permit
// declarations may use it.
func (e *Engine) Declare(ctx context.Context, matchID string, inningsNumber int, description string) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	if in.Status != model.StatusInProgress {
		return nil, invalidTransition(in.Status, "declare")
	}
	m, err := e.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.AllowDeclarations {
		return nil, fmt.Errorf("%w: format %q does not permit declarations", ErrPreconditionFailed, m.Format)
	}

	next := in.Clone()
	e.complete(next, model.StatusDeclared, model.ResultDeclaration, description)
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ForceEnd is the admin override: it completes an innings from any
// non-terminal state, bypassing the normal guards.  An empty result
// defaults to OVERS_COMPLETED.
func (e *Engine) ForceEnd(ctx context.Context, matchID string, inningsNumber int, result model.InningsResult, description string) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	if in.Terminal() {
		return nil, invalidTransition(in.Status, "force-end")
	}
	if result == "" {
		result = model.ResultOversCompleted
	}
	switch result {
	case model.ResultAllOut, model.ResultTargetReached, model.ResultOversCompleted:
	default:
		return nil, fmt.Errorf("%w: result %q cannot end an innings", ErrInvalidValue, result)
	}

	next := in.Clone()
	e.complete(next, model.StatusCompleted, result, description)
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// complete stamps the terminal state, result, end time and duration.
func (e *Engine) complete(in *model.Innings, status model.InningsStatus, result model.InningsResult, description string) {
	ended := e.now()
	in.Status = status
	in.Result = result
	in.ResultDescription = description
	in.EndTime = &ended
	if in.StartTime != nil {
		in.DurationMins = int(ended.Sub(*in.StartTime).Minutes())
	}
}

// Correction carries the admin score-correction fields.  Nil pointers are
// left untouched; set fields replace the stored counters after validation.
type Correction struct {
	Runs         *int     `json:"runs"`
	Wickets      *int     `json:"wickets"`
	Overs        *float64 `json:"overs"`
	Extras       *int     `json:"extras"`
	Boundaries   *int     `json:"boundaries"`
	Sixes        *int     `json:"sixes"`
	DRSUsed      *int     `json:"drsReviewsUsed"`
	DRSRemaining *int     `json:"drsReviewsRemaining"`
}

// Update is the admin correction path.  It applies any subset of the
// counters after validating each one: no negatives, wickets capped at ten,
// overs with a legal ball digit and within the match's maximum, and DRS
// counters that preserve the per-innings allotment.
func (e *Engine) Update(ctx context.Context, matchID string, inningsNumber int, c Correction) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	m, err := e.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	next := in.Clone()
	for _, f := range []struct {
		name string
		val  *int
		dst  *int
	}{
		{"runs", c.Runs, &next.Runs},
		{"wickets", c.Wickets, &next.Wickets},
		{"extras", c.Extras, &next.Extras},
		{"boundaries", c.Boundaries, &next.Boundaries},
		{"sixes", c.Sixes, &next.Sixes},
	} {
		if f.val == nil {
			continue
		}
		if *f.val < 0 {
			return nil, fmt.Errorf("%w: %s cannot be negative", ErrInvalidValue, f.name)
		}
		*f.dst = *f.val
	}
	if c.Wickets != nil && *c.Wickets > 10 {
		return nil, fmt.Errorf("%w: wickets cannot exceed 10", ErrInvalidValue)
	}
	if c.Overs != nil {
		balls, err := OversToBalls(*c.Overs)
		if err != nil {
			return nil, err
		}
		if balls > m.MaxOvers*6 {
			return nil, fmt.Errorf("%w: overs %.1f exceeds the match maximum of %d", ErrInvalidValue, *c.Overs, m.MaxOvers)
		}
		next.Overs = *c.Overs
	}
	if c.DRSUsed != nil || c.DRSRemaining != nil {
		used, remaining := next.DRSUsed, next.DRSRemaining
		if c.DRSUsed != nil {
			used = *c.DRSUsed
		}
		if c.DRSRemaining != nil {
			remaining = *c.DRSRemaining
		}
		if used < 0 || remaining < 0 || used+remaining != m.DRSReviewsPerInnings {
			return nil, fmt.Errorf("%w: DRS reviews must sum to the allotment of %d", ErrInvalidValue, m.DRSReviewsPerInnings)
		}
		next.DRSUsed, next.DRSRemaining = used, remaining
	}

	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// UpdatePlayers replaces the current striker, non-striker and bowler.  It
// does not require a live innings so assignments can be staged before the
// start.  The striker and non-striker must differ and the bowler may be
// neither batter.
func (e *Engine) UpdatePlayers(ctx context.Context, matchID string, inningsNumber int, striker, nonStriker, bowler string) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	if striker == "" || nonStriker == "" || bowler == "" {
		return nil, fmt.Errorf("%w: striker, nonStriker and bowler are required", ErrInvalidValue)
	}
	if striker == nonStriker {
		return nil, fmt.Errorf("%w: striker and non-striker must differ", ErrInvalidValue)
	}
	if bowler == striker || bowler == nonStriker {
		return nil, fmt.Errorf("%w: the bowler cannot also be batting", ErrInvalidValue)
	}
	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}

	next := in.Clone()
	next.Players = model.CurrentPlayers{
		Striker:     striker,
		NonStriker:  nonStriker,
		Bowler:      bowler,
		LastUpdated: e.now(),
	}
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// SwapStrike exchanges the striker and non-striker; the bowler is
// untouched.  Applying it twice restores the original assignment.
func (e *Engine) SwapStrike(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	next := in.Clone()
	next.Players.Striker, next.Players.NonStriker = next.Players.NonStriker, next.Players.Striker
	next.Players.LastUpdated = e.now()
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// SetPowerPlay records a new fielding-restriction period and marks it
// active.  Power plays must fall within the match's overs and may not
// overlap an existing period.
func (e *Engine) SetPowerPlay(ctx context.Context, matchID string, inningsNumber int, pp model.PowerPlay) (*model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	m, err := e.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if pp.Type == "" {
		return nil, fmt.Errorf("%w: power play type is required", ErrInvalidValue)
	}
	if pp.StartOver < 0 || pp.EndOver <= pp.StartOver || pp.EndOver > m.MaxOvers {
		return nil, fmt.Errorf("%w: power play overs %d-%d are outside the match", ErrInvalidValue, pp.StartOver, pp.EndOver)
	}
	for _, cur := range in.PowerPlays {
		if pp.StartOver < cur.EndOver && cur.StartOver < pp.EndOver {
			return nil, fmt.Errorf("%w: power play overlaps the %s period at overs %d-%d", ErrPreconditionFailed, cur.Type, cur.StartOver, cur.EndOver)
		}
	}

	next := in.Clone()
	for idx := range next.PowerPlays {
		next.PowerPlays[idx].Active = false
	}
	pp.Active = true
	next.PowerPlays = append(next.PowerPlays, pp)
	sort.Slice(next.PowerPlays, func(a, b int) bool {
		return next.PowerPlays[a].StartOver < next.PowerPlays[b].StartOver
	})
	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes an innings.  Deletion is explicit and admin-only; the
// remaining innings are returned sorted by number so the caller can move
// its selection to a record that still exists.
func (e *Engine) Delete(ctx context.Context, matchID string, inningsNumber int) ([]model.Innings, error) {
	lock := e.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.store.Delete(ctx, matchID, inningsNumber); err != nil {
		return nil, err
	}
	return e.listSorted(ctx, matchID)
}

// Get returns one innings snapshot.
func (e *Engine) Get(ctx context.Context, matchID string, inningsNumber int) (*model.Innings, error) {
	return e.store.Get(ctx, matchID, inningsNumber)
}

// List returns all innings for a match sorted by innings number.
func (e *Engine) List(ctx context.Context, matchID string) ([]model.Innings, error) {
	return e.listSorted(ctx, matchID)
}

func (e *Engine) listSorted(ctx context.Context, matchID string) ([]model.Innings, error) {
	list, err := e.store.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].InningsNumber < list[b].InningsNumber
	})
	return list, nil
}

// DerivedStats carries the read-only values computed from an innings
// snapshot on demand.  RequiredRunRate, Target and RemainingRuns are nil
// when no target exists (a first innings) — undefined, not an error.
type DerivedStats struct {
	RunRate         float64  `json:"runRate"`
	RequiredRunRate *float64 `json:"requiredRunRate,omitempty"`
	Target          *int     `json:"target,omitempty"`
	RemainingRuns   *int     `json:"remainingRuns,omitempty"`
	RemainingBalls  int      `json:"remainingBalls"`
	ProjectedScore  int      `json:"projectedScore"`
}

// Stats computes the derived statistics for one innings.  The target is
// the previous innings' final total; when the previous innings is missing
// the chase values are simply left undefined.
func (e *Engine) Stats(ctx context.Context, matchID string, inningsNumber int) (*DerivedStats, error) {
	in, err := e.store.Get(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, err
	}
	m, err := e.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	rate, err := RunRate(in.Runs, in.Overs)
	if err != nil {
		return nil, err
	}
	remainingBalls, err := RemainingBalls(in.Overs, m.MaxOvers)
	if err != nil {
		return nil, err
	}
	projected, err := ProjectedScore(in.Runs, in.Overs, m.MaxOvers)
	if err != nil {
		return nil, err
	}
	stats := &DerivedStats{
		RunRate:        rate,
		RemainingBalls: remainingBalls,
		ProjectedScore: projected,
	}

	if inningsNumber > 1 {
		prev, err := e.store.Get(ctx, matchID, inningsNumber-1)
		if err == nil {
			target := prev.Runs
			remaining := RemainingRuns(target, in.Runs)
			stats.Target = &target
			stats.RemainingRuns = &remaining
			if rrr, ok, err := RequiredRunRate(target, in.Runs, in.Overs, m.MaxOvers); err == nil && ok {
				stats.RequiredRunRate = &rrr
			}
		}
	}
	return stats, nil
}
