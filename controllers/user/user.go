package userController

import (
	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"
	userValidator "devcamper/validators/user"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Admin-only user management.

// GetUsers lists users through the generic query builder
func GetUsers(c *fiber.Ctx) error {
	query := utils.ParseListQuery(c)

	var users []models.User
	_, pagination, err := query.Run(database.Database.Db, &models.User{}, &users)
	if err != nil {
		return err
	}

	return middleware.ListResponse(c, len(users), pagination, users)
}

// GetUser returns a single user by id
func GetUser(c *fiber.Ctx) error {
	user, err := findUser(c.Params("id"))
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, user)
}

// CreateUser creates an account on behalf of someone else
func CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.CreateUserRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process your request")
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Role:     role,
		Password: string(hashedPassword),
	}

	if err := database.Database.Db.Create(&user).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, user)
}

// UpdateUser changes account fields; the password is only re-hashed
// when a new one is supplied.
func UpdateUser(c *fiber.Ctx) error {
	user, err := findUser(c.Params("id"))
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedUser").(*userValidator.UpdateUserRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if reqData.Name != "" {
		updates["name"] = reqData.Name
	}
	if reqData.Email != "" {
		updates["email"] = reqData.Email
	}
	if reqData.Role != "" {
		updates["role"] = reqData.Role
	}
	if reqData.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to process your request")
		}
		updates["password"] = string(hashedPassword)
	}

	if len(updates) > 0 {
		if err := database.Database.Db.Model(user).Updates(updates).Error; err != nil {
			return err
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, user)
}

// DeleteUser removes an account
func DeleteUser(c *fiber.Ctx) error {
	user, err := findUser(c.Params("id"))
	if err != nil {
		return err
	}

	if err := database.Database.Db.Delete(user).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

func findUser(idParam string) (*models.User, error) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("User not found with id of %s", idParam))
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("User not found with id of %s", idParam))
	}

	return &user, nil
}
