package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/live-cricket-scoring/internal/engine"
	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// memStore is an in-memory engine.Store so handler tests run without
// MySQL.
type memStore struct {
	mu   sync.Mutex
	rows map[string]*model.Innings
}

func key(matchID string, n int) string { return fmt.Sprintf("%s#%d", matchID, n) }

func newMemStore() *memStore { return &memStore{rows: make(map[string]*model.Innings)} }

func (s *memStore) Get(_ context.Context, matchID string, n int) (*model.Innings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.rows[key(matchID, n)]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return in.Clone(), nil
}

func (s *memStore) ListByMatch(_ context.Context, matchID string) ([]model.Innings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Innings, 0)
	for _, in := range s.rows {
		if in.MatchID == matchID {
			out = append(out, *in.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InningsNumber < out[j].InningsNumber })
	return out, nil
}

func (s *memStore) Save(_ context.Context, in *model.Innings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key(in.MatchID, in.InningsNumber)] = in.Clone()
	return nil
}

func (s *memStore) Delete(_ context.Context, matchID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(matchID, n)
	if _, ok := s.rows[k]; !ok {
		return engine.ErrNotFound
	}
	delete(s.rows, k)
	return nil
}

type memMatches struct {
	rows map[string]*model.Match
}

func (s *memMatches) Get(_ context.Context, id string) (*model.Match, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, engine.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func newTestHandler() *ScorerHandler {
	matches := &memMatches{rows: map[string]*model.Match{
		"t20": {
			ID: "t20", HomeTeam: "India", AwayTeam: "Australia",
			Format: "T20", MaxOvers: 20, DRSReviewsPerInnings: 2,
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		},
	}}
	return &ScorerHandler{Engine: engine.New(newMemStore(), matches)}
}

// do runs one request through a bare echo instance and returns the
// recorder.  Path params are set directly so tests exercise the handler
// without the full router.
func do(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	return rec
}

func inningsParams(n string) map[string]string {
	return map[string]string{"matchId": "t20", "inningsNumber": n}
}

func TestCreateInnings(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h.CreateInnings, http.MethodPost, "/v1/matches/t20/innings",
		`{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`,
		map[string]string{"matchId": "t20"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"NOT_STARTED"`)
	assert.Contains(t, rec.Body.String(), `"battingTeam":"India"`)
}

func TestCreateInningsRejectsSameTeams(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h.CreateInnings, http.MethodPost, "/v1/matches/t20/innings",
		`{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"India"}`,
		map[string]string{"matchId": "t20"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartTwiceConflicts(t *testing.T) {
	h := newTestHandler()
	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})

	rec := do(t, h.StartInnings, http.MethodPost, "/", "", inningsParams("1"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.StartInnings, http.MethodPost, "/", "", inningsParams("1"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecordBallAppliesCounters(t *testing.T) {
	h := newTestHandler()
	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})
	do(t, h.StartInnings, http.MethodPost, "/", "", inningsParams("1"))

	rec := do(t, h.RecordBall, http.MethodPost, "/", `{"runs":4,"isBoundary":true}`, inningsParams("1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"runs":4`)
	assert.Contains(t, rec.Body.String(), `"overs":0.1`)
	assert.NotContains(t, rec.Body.String(), "warning")
}

func TestRecordBallAgainstIdleInningsConflicts(t *testing.T) {
	h := newTestHandler()
	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})

	rec := do(t, h.RecordBall, http.MethodPost, "/", `{"runs":1}`, inningsParams("1"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateRejectsInvalidOvers(t *testing.T) {
	h := newTestHandler()
	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})

	rec := do(t, h.UpdateInnings, http.MethodPatch, "/", `{"overs":4.7}`, inningsParams("1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMissingInningsIs404(t *testing.T) {
	h := newTestHandler()
	p := &PublicHandler{Engine: h.Engine}
	rec := do(t, p.GetInnings, http.MethodGet, "/", "", inningsParams("9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForceEndPublishesEvent(t *testing.T) {
	h := newTestHandler()
	var published *model.Innings
	h.Publish = func(_ context.Context, in *model.Innings) { published = in }

	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})
	rec := do(t, h.ForceEndInnings, http.MethodPost, "/", `{"description":"abandoned"}`, inningsParams("1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, published)
	assert.Equal(t, model.StatusCompleted, published.Status)
}

func TestAutoProgressionPublishesEvent(t *testing.T) {
	h := newTestHandler()
	var published *model.Innings
	h.Publish = func(_ context.Context, in *model.Innings) { published = in }

	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})
	do(t, h.StartInnings, http.MethodPost, "/", "", inningsParams("1"))
	for i := 0; i < 10; i++ {
		do(t, h.RecordBall, http.MethodPost, "/", `{"isWicket":true}`, inningsParams("1"))
	}

	require.NotNil(t, published)
	assert.Equal(t, model.ResultAllOut, published.Result)
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestHandler()
	p := &PublicHandler{Engine: h.Engine}
	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})
	do(t, h.StartInnings, http.MethodPost, "/", "", inningsParams("1"))
	do(t, h.UpdateInnings, http.MethodPatch, "/", `{"runs":60,"overs":10.0}`, inningsParams("1"))

	rec := do(t, p.GetStats, http.MethodGet, "/", "", inningsParams("1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"runRate":6`)
	assert.Contains(t, rec.Body.String(), `"remainingBalls":60`)
	// First innings has no chase, so chase fields are omitted.
	assert.NotContains(t, rec.Body.String(), "requiredRunRate")
}

func TestDeleteReturnsRemaining(t *testing.T) {
	h := newTestHandler()
	do(t, h.CreateInnings, http.MethodPost, "/", `{"inningsNumber":1,"battingTeam":"India","bowlingTeam":"Australia"}`, map[string]string{"matchId": "t20"})

	rec := do(t, h.DeleteInnings, http.MethodDelete, "/", "", inningsParams("1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"innings":[]`)

	rec = do(t, h.DeleteInnings, http.MethodDelete, "/", "", inningsParams("1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
