package engine

import (
	"fmt"
	"math"
)

// Derived statistics are pure functions of the innings counters.  They are
// recomputed on every read and never stored, so a correction to runs or
// overs can never leave a stale rate behind.

// OversToBalls converts the overs notation (integer part = completed
// overs, single fractional digit = balls 0–5 within the current over)
// into a total ball count.  A fractional digit above five does not exist
// in cricket and is rejected as ErrInvalidValue.
func OversToBalls(overs float64) (int, error) {
	if overs < 0 {
		return 0, fmt.Errorf("%w: overs %.1f is negative", ErrInvalidValue, overs)
	}
	whole := int(overs)
	frac := int(math.Round((overs - float64(whole)) * 10))
	if frac > 5 {
		return 0, fmt.Errorf("%w: overs %.1f has %d balls in the current over", ErrInvalidValue, overs, frac)
	}
	return whole*6 + frac, nil
}

// BallsToOvers is the inverse of OversToBalls.
func BallsToOvers(balls int) float64 {
	return float64(balls/6) + float64(balls%6)/10
}

// RunRate returns runs scored per over.  It is zero before the first
// legal ball is bowled.
func RunRate(runs int, overs float64) (float64, error) {
	balls, err := OversToBalls(overs)
	if err != nil {
		return 0, err
	}
	if balls == 0 {
		return 0, nil
	}
	return float64(runs) / (float64(balls) / 6), nil
}

// RequiredRunRate returns the run rate the batting side needs over the
// remaining balls to reach target.  The second return is false when the
// value is undefined: no target exists or no balls remain.  Undefined is
// not an error; a first innings simply has no required rate.
func RequiredRunRate(target, runs int, overs float64, maxOvers int) (float64, bool, error) {
	remaining, err := RemainingBalls(overs, maxOvers)
	if err != nil {
		return 0, false, err
	}
	if target <= 0 || remaining <= 0 {
		return 0, false, nil
	}
	return float64(target-runs) / (float64(remaining) / 6), true, nil
}

// RemainingBalls returns how many legal balls are left in the innings.
func RemainingBalls(overs float64, maxOvers int) (int, error) {
	bowled, err := OversToBalls(overs)
	if err != nil {
		return 0, err
	}
	remaining := maxOvers*6 - bowled
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// RemainingRuns returns target minus runs.  A value of zero or below
// means the target has been reached or passed.
func RemainingRuns(target, runs int) int {
	return target - runs
}

// ProjectedScore extrapolates the current run rate across the full
// allotment of overs, rounded to the nearest run.  Before the first ball
// it projects the current total unchanged.
func ProjectedScore(runs int, overs float64, maxOvers int) (int, error) {
	rate, err := RunRate(runs, overs)
	if err != nil {
		return 0, err
	}
	if rate == 0 {
		return runs, nil
	}
	return int(math.Round(rate * float64(maxOvers))), nil
}

// addBall advances the overs notation by one legal delivery.  The second
// return reports whether the delivery closed an over.
func addBall(overs float64) (float64, bool, error) {
	balls, err := OversToBalls(overs)
	if err != nil {
		return 0, false, err
	}
	balls++
	return BallsToOvers(balls), balls%6 == 0, nil
}
