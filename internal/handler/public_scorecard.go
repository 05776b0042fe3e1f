package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListInnings handles GET /v1/matches/:matchId/innings, the public
// scorecard listing.  Innings are returned in playing order.
func (h *PublicHandler) ListInnings(c echo.Context) error {
	matchID := c.Param("matchId")
	innings, err := h.Engine.List(c.Request().Context(), matchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"innings": innings})
}

// GetInnings handles GET .../innings/:inningsNumber and returns the
// snapshot together with its derived statistics.  The statistics are
// computed on read and never stored, so a correction is reflected on the
// very next request.
func (h *PublicHandler) GetInnings(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	in, err := h.Engine.Get(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	stats, err := h.Engine.Stats(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"innings": in,
		"stats":   stats,
	})
}

// GetStats handles GET .../innings/:inningsNumber/stats for clients that
// poll the numbers without the full snapshot.
func (h *PublicHandler) GetStats(c echo.Context) error {
	matchID, n, err := pathInnings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	stats, err := h.Engine.Stats(c.Request().Context(), matchID, n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
