package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

// CreateMatch handles POST /v1/matches.  Fixtures carry the rules the
// engine validates innings against: the over limit, whether declarations
// are allowed and the DRS allotment per innings.
func (h *ScorerHandler) CreateMatch(c echo.Context) error {
	var body struct {
		ID                   string `json:"matchId"`
		HomeTeam             string `json:"homeTeam"`
		AwayTeam             string `json:"awayTeam"`
		Format               string `json:"format"`
		MaxOvers             int    `json:"maxOvers"`
		AllowDeclarations    bool   `json:"allowDeclarations"`
		DRSReviewsPerInnings int    `json:"drsReviewsPerInnings"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	body.ID = strings.TrimSpace(body.ID)
	body.HomeTeam = strings.TrimSpace(body.HomeTeam)
	body.AwayTeam = strings.TrimSpace(body.AwayTeam)
	if body.ID == "" || body.HomeTeam == "" || body.AwayTeam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "matchId, homeTeam and awayTeam are required"})
	}
	if body.HomeTeam == body.AwayTeam {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "teams must differ"})
	}
	if body.MaxOvers <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "maxOvers must be positive"})
	}
	if body.DRSReviewsPerInnings < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "drsReviewsPerInnings must not be negative"})
	}

	now := time.Now().UTC()
	m := &model.Match{
		ID:                   body.ID,
		HomeTeam:             body.HomeTeam,
		AwayTeam:             body.AwayTeam,
		Format:               body.Format,
		MaxOvers:             body.MaxOvers,
		AllowDeclarations:    body.AllowDeclarations,
		DRSReviewsPerInnings: body.DRSReviewsPerInnings,
		Status:               "SCHEDULED",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := h.Matches.Create(c.Request().Context(), m); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMatches handles GET /v1/matches for the public fixture list.
func (h *PublicHandler) ListMatches(c echo.Context) error {
	matches, err := h.Matches.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"matches": matches})
}

// GetMatch handles GET /v1/matches/:matchId.
func (h *ScorerHandler) GetMatch(c echo.Context) error {
	m, err := h.Matches.Get(c.Request().Context(), c.Param("matchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// SetMatchStatus handles PATCH /v1/matches/:matchId/status so admins can
// move a fixture between SCHEDULED, LIVE and FINISHED.
func (h *ScorerHandler) SetMatchStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	switch body.Status {
	case "SCHEDULED", "LIVE", "FINISHED":
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown match status"})
	}
	if err := h.Matches.SetStatus(c.Request().Context(), c.Param("matchId"), body.Status); err != nil {
		return respondError(c, err)
	}
	m, err := h.Matches.Get(c.Request().Context(), c.Param("matchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
