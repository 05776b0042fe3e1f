package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// UpdatePlayers handles PUT .../players.  Player assignments are allowed
// in any innings state so scorers can prepare line-ups before the start.
func (h *ScorerHandler) UpdatePlayers(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body struct {
		Striker    string `json:"striker"`
		NonStriker string `json:"nonStriker"`
		Bowler     string `json:"bowler"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in, err := h.Engine.UpdatePlayers(c.Request().Context(), matchID, n,
		strings.TrimSpace(body.Striker), strings.TrimSpace(body.NonStriker), strings.TrimSpace(body.Bowler))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

// SwapStrike handles POST .../players/swap-strike, exchanging striker and
// non-striker after an odd run or at the end of an over.
func (h *ScorerHandler) SwapStrike(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	in, err := h.Engine.SwapStrike(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

// SetPowerPlay handles POST .../power-plays.  The engine activates the
// new window, deactivates any other, and rejects overlapping windows.
func (h *ScorerHandler) SetPowerPlay(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body model.PowerPlay
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in, err := h.Engine.SetPowerPlay(c.Request().Context(), matchID, n, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}
