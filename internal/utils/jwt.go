package utils // package utils provides token helpers for the scoring API

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT together with its expiry.  Scorer
// clients exchange their API key for one of these and present it in the
// Authorization header on every scoring call.
type AccessToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expiresAt"`
}

// NewAccessToken builds and signs an HS256 JWT for a scoring client.
// The claims carry the client name as subject, the granted role and the
// standard exp/iat timestamps.
func NewAccessToken(secret, subject, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// HashAPIKey returns the SHA-256 hash of an API key as a hex string.
// Configuration stores hashes, not raw keys.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// APIKeyMatches compares a presented key against a stored hash in
// constant time.
func APIKeyMatches(raw, storedHash string) bool {
	h := HashAPIKey(raw)
	return subtle.ConstantTimeCompare([]byte(h), []byte(storedHash)) == 1
}
