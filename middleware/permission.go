package middleware

import (
	"devcamper/models"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Authorize returns a middleware that permits only the listed roles.
// It must run after Protect.
func Authorize(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized to access this route")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("User role %s is not authorized to access this route", user.Role))
	}
}

// OwnerOrAdmin reports whether the caller may mutate a resource owned by
// ownerID. Applied before every update, delete and nested create.
func OwnerOrAdmin(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID || user.IsAdmin()
}
