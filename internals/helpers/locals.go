package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware.
const (
	LocUserID = "user_id"
	LocOrgID  = "org_id"
	LocRole   = "role"
)

var ErrNoUserContext = errors.New("missing user context")

// GetUserID returns the authenticated user id stored by the auth middleware.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, LocUserID)
}

// GetOrgID returns the active organization scope of the request.
func GetOrgID(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, LocOrgID)
}

// GetRole returns the caller's role within the active organization
// ("member", "admin" or "owner"); empty when unresolved.
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return v
	}
	return ""
}

func localsUUID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	switch v := c.Locals(key).(type) {
	case uuid.UUID:
		if v != uuid.Nil {
			return v, nil
		}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			if id, err := uuid.Parse(s); err == nil {
				return id, nil
			}
		}
	}
	return uuid.Nil, ErrNoUserContext
}

// ParseUUIDParam reads a uuid path parameter.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, errors.New(name + " is required")
	}
	u, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errors.New(name + " is invalid uuid")
	}
	return u, nil
}
