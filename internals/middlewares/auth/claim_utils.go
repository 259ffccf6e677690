package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	const prefix = "Bearer "
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, prefix) {
		if tok := strings.TrimSpace(authHeader[len(prefix):]); tok != "" {
			return tok, nil
		}
	}
	if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
		return tok, nil
	}
	return "", errors.New("missing bearer token")
}

// validateTokenExpiry checks exp manually with a small leeway; claims
// validation was skipped during parse so a precise error can be
// returned.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expVal, found := claims["exp"]
	if !found {
		return errors.New("token has no exp claim")
	}
	expFloat, ok := expVal.(float64)
	if !ok {
		return errors.New("exp claim malformed")
	}
	if time.Now().Add(-leeway).After(time.Unix(int64(expFloat), 0)) {
		return errors.New("token expired")
	}
	return nil
}

// extractUserID reads the subject claim; "sub" primary, "user_id"
// legacy fallback.
func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"sub", "user_id"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return uuid.Parse(v)
		}
	}
	return uuid.Nil, errors.New("missing user id claim")
}
