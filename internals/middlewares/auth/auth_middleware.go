package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tuttiud_backend/internals/configs"
	orgModel "tuttiud_backend/internals/features/organizations/model"
	helper "tuttiud_backend/internals/helpers"
)

// AuthMiddleware validates the bearer JWT, resolves the active
// organization and the caller's role inside it, and stores
// user_id/org_id/role in Locals. Token issuance itself lives in the
// external auth service; this side only verifies.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET not configured")
			return helper.JsonError(c, fiber.StatusInternalServerError, "server_misconfigured")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid_token")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "token_expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid_token")
		}
		c.Locals(helper.LocUserID, userID)

		orgID, err := resolveOrgID(c, claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "missing_org_id")
		}

		var membership orgModel.OrgMembershipModel
		if err := db.
			Where("membership_org_id = ? AND membership_user_id = ?", orgID, userID).
			First(&membership).Error; err != nil {
			if helper.IsNotFound(err) {
				return helper.JsonError(c, fiber.StatusForbidden, "not_org_member")
			}
			return helper.JsonDBError(c, err)
		}

		c.Locals(helper.LocOrgID, orgID)
		c.Locals(helper.LocRole, membership.MembershipRole)
		return c.Next()
	}
}

// resolveOrgID prefers the explicit X-Org-ID header (multi-org users
// switching scope) and falls back to the org_id token claim.
func resolveOrgID(c *fiber.Ctx, claims jwt.MapClaims) (uuid.UUID, error) {
	if h := c.Get("X-Org-ID"); h != "" {
		return uuid.Parse(h)
	}
	if v, ok := claims["org_id"].(string); ok && v != "" {
		return uuid.Parse(v)
	}
	return uuid.Nil, errors.New("org scope unresolved")
}
