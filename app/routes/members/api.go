package members

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/services"
)

const defaultPageSize = 20

// EnrollMemberAPI gives a person a member account in the caller's
// association, assigning the requested roles.
func EnrollMemberAPI(c *fiber.Ctx, db *sql.DB) error {
	var request services.EnrollMemberRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	membership, err := services.EnrollMember(db, config.AppConfig.SMTP, auth.Association(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"membershipReference": membership.Reference,
			"email":               membership.PortalUser.Email,
		},
		"code": fiber.StatusCreated,
	})
}

// ListMembersAPI lists the association's active members, paginated.
func ListMembersAPI(c *fiber.Ctx, db *sql.DB) error {
	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)

	members, total, err := database.GetMemberRowsByAssociation(db, auth.Association(c).ID, limit, offset)
	if err != nil {
		return err
	}
	if members == nil {
		members = []*database.MemberRow{}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"items":        members,
			"total":        total,
			"offset":       offset,
			"itemsPerPage": limit,
		},
		"code": fiber.StatusOK,
	})
}
