package engine

import (
	"context"
	"fmt"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// EvaluateBall is the automatic-progression entry point.  It applies the
// delivery's counters to the live innings and then evaluates the
// progression rules in order, firing at most one:
//
//  1. the wicket was the tenth                  -> end ALL_OUT
//  2. the over closed at the match maximum      -> end OVERS_COMPLETED
//  3. a chasing innings reached the target      -> end TARGET_REACHED
//
// First match wins, so the tenth wicket on the final ball of the final
// over resolves to ALL_OUT.  A failure inside rule evaluation (missing
// match row, missing previous innings) never blocks scoring: the counter
// update is still committed and the updated snapshot is returned together
// with the rule error for the caller to report.
func (e *Engine) EvaluateBall(ctx context.Context, ev model.BallEvent) (*model.Innings, error) {
	lock := e.matchLock(ev.MatchID)
	lock.Lock()
	defer lock.Unlock()

	in, err := e.store.Get(ctx, ev.MatchID, ev.InningsNumber)
	if err != nil {
		return nil, err
	}
	if in.Status != model.StatusInProgress {
		return nil, invalidTransition(in.Status, "score a ball against")
	}
	if ev.Runs < 0 || ev.Extras < 0 {
		return nil, fmt.Errorf("%w: ball runs and extras cannot be negative", ErrInvalidValue)
	}

	next := in.Clone()
	overClosed := false
	next.Runs += ev.Runs + ev.Extras
	next.Extras += ev.Extras
	if ev.Boundary {
		next.Boundaries++
	}
	if ev.Six {
		next.Sixes++
	}
	if ev.Wicket && next.Wickets < 10 {
		next.Wickets++
	}
	if !ev.Illegal {
		overs, closed, err := addBall(next.Overs)
		if err != nil {
			return nil, err
		}
		next.Overs = overs
		overClosed = closed
	}

	// Rule evaluation.  ruleErr is surfaced, never fatal.
	var ruleErr error
	switch {
	case ev.Wicket && next.Wickets >= 10:
		e.complete(next, model.StatusCompleted, model.ResultAllOut, "All out")
	case overClosed:
		m, err := e.matches.Get(ctx, ev.MatchID)
		if err != nil {
			ruleErr = fmt.Errorf("auto progression skipped: %w", err)
			break
		}
		if int(next.Overs) >= m.MaxOvers {
			e.complete(next, model.StatusCompleted, model.ResultOversCompleted, "Overs completed")
			break
		}
		fallthrough
	default:
		if ev.InningsNumber > 1 {
			prev, err := e.store.Get(ctx, ev.MatchID, ev.InningsNumber-1)
			if err != nil {
				ruleErr = fmt.Errorf("auto progression skipped: %w", err)
				break
			}
			// Reaching the previous innings' total suffices.
			if next.Runs >= prev.Runs {
				e.complete(next, model.StatusCompleted, model.ResultTargetReached, "Target reached")
			}
		}
	}

	if err := e.save(ctx, next); err != nil {
		return nil, err
	}
	return next, ruleErr
}
