// Package handler wires the innings engine to HTTP. Scorer endpoints
// mutate innings state, public endpoints serve read-only scorecards, and
// every error leaving the engine is translated through one mapping so the
// API speaks a single vocabulary.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/engine"
	"github.com/iliyamo/live-cricket-scoring/internal/model"
	"github.com/iliyamo/live-cricket-scoring/internal/repository"
)

// ScorerHandler serves the authenticated scoring endpoints.  Publish is
// called after an innings reaches a terminal state; it is optional and a
// nil hook simply skips event publication (tests run without a broker).
type ScorerHandler struct {
	Engine  *engine.Engine
	Matches *repository.MatchRepo
	Publish func(ctx context.Context, in *model.Innings)
}

// PublicHandler serves the unauthenticated scorecard endpoints.
type PublicHandler struct {
	Engine  *engine.Engine
	Matches *repository.MatchRepo
}

// pathInnings extracts the match id and innings number from the route.
func pathInnings(c echo.Context) (string, int, error) {
	matchID := c.Param("matchId")
	n, err := strconv.Atoi(c.Param("inningsNumber"))
	if err != nil || matchID == "" {
		return "", 0, errors.New("invalid innings path")
	}
	return matchID, n, nil
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
// Validation failures are 400, missing records 404, state machine and
// guard rejections 409, and everything else a generic 500 so internal
// detail never leaks to clients.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidValue):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidTransition),
		errors.Is(err, engine.ErrPreconditionFailed),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrPersistenceFailed):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not persist innings"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// publishIfTerminal invokes the publish hook when the command left the
// innings in a terminal state.
func (h *ScorerHandler) publishIfTerminal(c echo.Context, in *model.Innings) {
	if h.Publish != nil && in != nil && in.Terminal() {
		h.Publish(c.Request().Context(), in)
	}
}
