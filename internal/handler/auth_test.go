package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/live-cricket-scoring/internal/utils"
)

func newAuthHandler() *AuthHandler {
	return &AuthHandler{
		Secret:        "test-secret",
		TTLMin:        15,
		ScorerKeyHash: utils.HashAPIKey("scorer-key"),
		AdminKeyHash:  utils.HashAPIKey("admin-key"),
	}
}

func TestTokenExchange(t *testing.T) {
	a := newAuthHandler()
	rec := do(t, a.Token, http.MethodPost, "/v1/auth/token",
		`{"apiKey":"scorer-key","client":"press-box-1"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":`)
	assert.Contains(t, rec.Body.String(), `"expiresAt":`)
}

func TestTokenRejectsUnknownKey(t *testing.T) {
	a := newAuthHandler()
	rec := do(t, a.Token, http.MethodPost, "/v1/auth/token",
		`{"apiKey":"wrong"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenRequiresKey(t *testing.T) {
	a := newAuthHandler()
	rec := do(t, a.Token, http.MethodPost, "/v1/auth/token", `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
