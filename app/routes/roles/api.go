package roles

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/services"
)

// CreateRoleAPI creates an association-scoped role.
func CreateRoleAPI(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(request.Name) == "" {
		return apperrors.Validation("role name is required")
	}

	role := &models.Role{
		Code:          services.NewReference("ROL"),
		Name:          request.Name,
		AssociationID: auth.Association(c).ID,
		Status:        models.StatusActive,
	}
	if err := database.CreateRole(db, role); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": role,
		"code": fiber.StatusCreated,
	})
}

// GetRoleAPI fetches a role by code within the caller's association.
func GetRoleAPI(c *fiber.Ctx, db *sql.DB) error {
	code := c.Params("code")

	role, err := database.GetRoleByCodeAndAssociation(db, code, auth.Association(c).ID)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("role with code %s cannot be found", code)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": role,
		"code": fiber.StatusOK,
	})
}

// DeleteRoleAPI deactivates a role; the row is kept.
func DeleteRoleAPI(c *fiber.Ctx, db *sql.DB) error {
	code := c.Params("code")

	role, err := database.GetRoleByCodeAndAssociation(db, code, auth.Association(c).ID)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("role with code %s cannot be found", code)
	}
	if err != nil {
		return err
	}

	if err := database.DeactivateRole(db, role.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMembershipRolesAPI lists role assignments for the caller's
// association, optionally filtered by membership account type.
func ListMembershipRolesAPI(c *fiber.Ctx, db *sql.DB) error {
	accountType := models.AccountType(c.Query("accountType"))

	rows, err := database.GetMembershipRolesByAssociation(db, auth.Association(c).ID, accountType)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"items": rows,
			"total": len(rows),
		},
		"code": fiber.StatusOK,
	})
}
