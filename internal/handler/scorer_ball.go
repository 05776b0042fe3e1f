package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// RecordBall handles POST .../balls, the hot path of live scoring.  The
// engine commits the delivery's counters and then runs the progression
// rules; when a rule cannot be evaluated (for example the previous
// innings row is missing mid-chase) the ball is still committed and the
// response carries a warning instead of failing the delivery.
func (h *ScorerHandler) RecordBall(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var ev model.BallEvent
	if err := c.Bind(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	ev.MatchID = matchID
	ev.InningsNumber = n

	in, err := h.Engine.EvaluateBall(c.Request().Context(), ev)
	if err != nil && in == nil {
		// Nothing was committed: the innings was not live or the
		// delivery itself was invalid.
		return respondError(c, err)
	}
	h.publishIfTerminal(c, in)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{
			"innings": in,
			"warning": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"innings": in})
}
