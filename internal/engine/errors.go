// Package engine owns the innings lifecycle: the legal state machine for
// admin commands, the automatic progression rules driven by ball events,
// and the derived statistics computed from an innings snapshot.  All
// mutations of an innings converge here; storage and transport are
// capability interfaces supplied by the caller.
package engine

import (
	"errors"
	"fmt"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// Sentinel errors form the engine's failure taxonomy.  Handlers branch on
// these with errors.Is to choose an HTTP status; implementations of Store
// and MatchStore return ErrNotFound for missing rows so the taxonomy stays
// uniform across storage backends.
var (
	// ErrNotFound is returned when the referenced innings or match does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when the requested state change is
	// illegal from the current state.  The concrete error is always a
	// *TransitionError carrying the from-state and the attempted event.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidValue is returned for malformed counters: negative values,
	// wickets above ten, an overs fractional digit above five, or a
	// duplicate player in striker/non-striker.
	ErrInvalidValue = errors.New("invalid value")

	// ErrPreconditionFailed is returned when a command is shaped correctly
	// but the match context forbids it, e.g. TARGET_REACHED on the first
	// innings or declaring in a format without declarations.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrPersistenceFailed is returned when the store rejected a validated
	// transition.  The in-memory record is rolled back; callers may retry.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// TransitionError reports an illegal lifecycle transition.  It unwraps to
// ErrInvalidTransition so callers can branch with errors.Is while still
// seeing which event was attempted from which state.
type TransitionError struct {
	From  model.InningsStatus
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s an innings in state %s", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func invalidTransition(from model.InningsStatus, event string) error {
	return &TransitionError{From: from, Event: event}
}
