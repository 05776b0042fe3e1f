package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/engine"
	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// CreateInnings handles POST /v1/matches/:matchId/innings.  The innings
// number is assigned by the engine, which enforces contiguous numbering
// and alternating batting teams.
func (h *ScorerHandler) CreateInnings(c echo.Context) error {
	matchID := c.Param("matchId")
	var body struct {
		InningsNumber int    `json:"inningsNumber"`
		BattingTeam   string `json:"battingTeam"`
		BowlingTeam   string `json:"bowlingTeam"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	body.BattingTeam = strings.TrimSpace(body.BattingTeam)
	body.BowlingTeam = strings.TrimSpace(body.BowlingTeam)

	in, err := h.Engine.Create(c.Request().Context(), matchID, body.InningsNumber, body.BattingTeam, body.BowlingTeam)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, in)
}

// StartInnings handles POST /v1/matches/:matchId/innings/:inningsNumber/start.
func (h *ScorerHandler) StartInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	in, err := h.Engine.Start(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

// PauseInnings handles POST .../pause (rain, bad light, injury).
func (h *ScorerHandler) PauseInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	in, err := h.Engine.Pause(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

// ResumeInnings handles POST .../resume.
func (h *ScorerHandler) ResumeInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	in, err := h.Engine.Resume(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

// EndInnings handles POST .../end with an explicit completion result.
func (h *ScorerHandler) EndInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body struct {
		Result      string `json:"result"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in, err := h.Engine.End(c.Request().Context(), matchID, n, model.InningsResult(body.Result), body.Description)
	if err != nil {
		return respondError(c, err)
	}
	h.publishIfTerminal(c, in)
	return c.JSON(http.StatusOK, in)
}

// DeclareInnings handles POST .../declare.  Only formats that allow
// declarations accept this; the engine checks the match configuration.
func (h *ScorerHandler) DeclareInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body struct {
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in, err := h.Engine.Declare(c.Request().Context(), matchID, n, body.Description)
	if err != nil {
		return respondError(c, err)
	}
	h.publishIfTerminal(c, in)
	return c.JSON(http.StatusOK, in)
}

// ForceEndInnings handles POST .../force-end.  This is the admin override
// that closes an innings from any non-terminal state, including one that
// never started.
func (h *ScorerHandler) ForceEndInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body struct {
		Result      string `json:"result"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in, err := h.Engine.ForceEnd(c.Request().Context(), matchID, n, model.InningsResult(body.Result), body.Description)
	if err != nil {
		return respondError(c, err)
	}
	h.publishIfTerminal(c, in)
	return c.JSON(http.StatusOK, in)
}

// UpdateInnings handles PATCH .../innings/:inningsNumber, the scorer's
// correction path.  Absent fields are left untouched.
func (h *ScorerHandler) UpdateInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body engine.Correction
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in, err := h.Engine.Update(c.Request().Context(), matchID, n, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

// DeleteInnings handles DELETE .../innings/:inningsNumber and returns the
// remaining innings of the match so the client can resync its list.
func (h *ScorerHandler) DeleteInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	remaining, err := h.Engine.Delete(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"innings": remaining})
}
