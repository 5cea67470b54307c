package auth

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/services"
)

// SignUpAPI registers a new principal user with their pending association.
func SignUpAPI(c *fiber.Ctx, db *sql.DB) error {
	var request services.SignUpRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	membership, err := services.SignUp(db, config.AppConfig.SMTP, request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"associationCode":     membership.Association.Code,
			"membershipReference": membership.Reference,
			"email":               membership.PortalUser.Email,
		},
		"code": fiber.StatusCreated,
	})
}

// ChangePasswordAPI lets an authenticated user replace their password. New
// members enroll with a placeholder password and come through here first.
func ChangePasswordAPI(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(request.NewPassword) < 8 {
		return apperrors.Validation("newPassword must be at least 8 characters")
	}

	user, err := database.GetPortalUserByID(db, User(c).ID)
	if err != nil {
		return err
	}
	if !CheckPasswordHash(request.CurrentPassword, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), 14)
	if err != nil {
		return err
	}
	if err := database.UpdatePortalUserPassword(db, user.ID, string(hashedPassword)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"email": user.Email},
		"code": fiber.StatusOK,
	})
}

// LoginAPI exchanges credentials for a bearer token.
func LoginAPI(c *fiber.Ctx, db *sql.DB) error {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&credentials); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := database.GetPortalUserByEmail(db, credentials.Email)
	if err != nil || !CheckPasswordHash(credentials.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"token":     token,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
		},
		"code": fiber.StatusOK,
	})
}
