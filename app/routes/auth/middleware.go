package auth

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// AssociationHeader names the header carrying the caller's association code.
const AssociationHeader = "X-ASSOCIATION-IDENTIFIER"

// AuthMiddleware validates the bearer token and sets the principal context.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "No token found")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	user := &models.PortalUser{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Status:    models.StatusActive,
	}

	c.Locals("user_id", user.ID)
	c.Locals("user", user)

	return c.Next()
}

// AssociationContextMiddleware resolves the association named by the
// X-ASSOCIATION-IDENTIFIER header together with the principal's membership of
// it, and rejects callers of associations that are not active.
func AssociationContextMiddleware(db func() *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Get(AssociationHeader)
		if code == "" {
			return apperrors.Validation("%s header is required", AssociationHeader)
		}

		association, err := database.GetAssociationByCode(db(), code)
		if err == sql.ErrNoRows {
			return apperrors.NotFound("association with code %s cannot be found", code)
		}
		if err != nil {
			return err
		}
		if association.Status != models.StatusActive {
			return apperrors.NotActive("association %s is not active", code)
		}

		user := c.Locals("user").(*models.PortalUser)
		membership, err := database.GetMembership(db(), user.ID, association.ID)
		if err == sql.ErrNoRows {
			return apperrors.NotFound("caller has no membership of association %s", code)
		}
		if err != nil {
			return err
		}
		if membership.Status != models.StatusActive {
			return apperrors.NotActive("membership is not active")
		}

		c.Locals("association", association)
		c.Locals("membership", membership)
		return c.Next()
	}
}

// Association returns the association resolved by the context middleware.
func Association(c *fiber.Ctx) *models.Association {
	return c.Locals("association").(*models.Association)
}

// Membership returns the caller's membership resolved by the middleware.
func Membership(c *fiber.Ctx) *models.Membership {
	return c.Locals("membership").(*models.Membership)
}

// User returns the authenticated principal.
func User(c *fiber.Ctx) *models.PortalUser {
	return c.Locals("user").(*models.PortalUser)
}
