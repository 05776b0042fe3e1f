package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// memStore is an in-memory Store used by the engine tests.  failSave lets
// tests simulate a storage rejection after a transition validates.
type memStore struct {
	mu       sync.Mutex
	innings  map[string]*model.Innings
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{innings: make(map[string]*model.Innings)}
}

func memKey(matchID string, n int) string { return fmt.Sprintf("%s#%d", matchID, n) }

func (s *memStore) Get(_ context.Context, matchID string, n int) (*model.Innings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.innings[memKey(matchID, n)]
	if !ok {
		return nil, ErrNotFound
	}
	return in.Clone(), nil
}

func (s *memStore) ListByMatch(_ context.Context, matchID string) ([]model.Innings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Innings{}
	for _, in := range s.innings {
		if in.MatchID == matchID {
			out = append(out, *in.Clone())
		}
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, in *model.Innings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("save rejected")
	}
	s.innings[memKey(in.MatchID, in.InningsNumber)] = in.Clone()
	return nil
}

func (s *memStore) Delete(_ context.Context, matchID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memKey(matchID, n)
	if _, ok := s.innings[key]; !ok {
		return ErrNotFound
	}
	delete(s.innings, key)
	return nil
}

// memMatches is a fixed-content MatchStore.
type memMatches struct {
	matches map[string]*model.Match
}

func (s *memMatches) Get(_ context.Context, id string) (*model.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

// newTestEngine builds an engine over in-memory stores with one T20 match
// preconfigured.
func newTestEngine() (*Engine, *memStore) {
	store := newMemStore()
	matches := &memMatches{matches: map[string]*model.Match{
		"m1": {
			ID:                   "m1",
			HomeTeam:             "A",
			AwayTeam:             "B",
			Format:               "T20",
			MaxOvers:             20,
			AllowDeclarations:    false,
			DRSReviewsPerInnings: 2,
		},
		"m2": {
			ID:                   "m2",
			HomeTeam:             "A",
			AwayTeam:             "B",
			Format:               "FC",
			MaxOvers:             90,
			AllowDeclarations:    true,
			DRSReviewsPerInnings: 3,
		},
	}}
	return New(store, matches), store
}
