package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/utils"
)

// AuthHandler exchanges a pre-shared API key for a short-lived JWT.
// There are no user accounts: scoring clients are provisioned a key out
// of band and the key determines the role baked into the token.
type AuthHandler struct {
	Secret        string // JWT signing secret
	TTLMin        int    // access token lifetime in minutes
	ScorerKeyHash string // SHA-256 hex of the scorer API key
	AdminKeyHash  string // SHA-256 hex of the admin API key
}

// Token handles POST /v1/auth/token.  The response carries the signed
// token and its expiry so clients know when to re-authenticate.
func (h *AuthHandler) Token(c echo.Context) error {
	var body struct {
		APIKey string `json:"apiKey"`
		Client string `json:"client"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	body.APIKey = strings.TrimSpace(body.APIKey)
	if body.APIKey == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "apiKey is required"})
	}
	subject := strings.TrimSpace(body.Client)
	if subject == "" {
		subject = "scoring-client"
	}

	var role string
	switch {
	case utils.APIKeyMatches(body.APIKey, h.AdminKeyHash):
		role = "ADMIN"
	case utils.APIKeyMatches(body.APIKey, h.ScorerKeyHash):
		role = "SCORER"
	default:
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown api key"})
	}

	tok, err := utils.NewAccessToken(h.Secret, subject, role, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, tok)
}
