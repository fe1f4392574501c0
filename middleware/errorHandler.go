package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandler is the terminal translator for every error a handler
// returns. Handlers never build error responses themselves; they return
// *fiber.Error values (or raw storage errors) and this maps them to an
// HTTP status plus the {success:false, error:message} body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server Error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = fiber.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		code = fiber.StatusConflict
		message = "Duplicate field value entered"
	default:
		log.Printf("Unhandled error [%v]: %v", c.Locals("requestid"), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
