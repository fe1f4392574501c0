package userRoutes

import (
	userControllers "devcamper/controllers/user"
	"devcamper/middleware"
	"devcamper/models"
	userValidators "devcamper/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/v1/users",
		middleware.Protect, middleware.Authorize(models.RoleAdmin))

	userGroup.Get("/", userControllers.GetUsers)
	userGroup.Post("/", userValidators.CreateUser(), userControllers.CreateUser)
	userGroup.Get("/:id", userControllers.GetUser)
	userGroup.Put("/:id", userValidators.UpdateUser(), userControllers.UpdateUser)
	userGroup.Delete("/:id", userControllers.DeleteUser)
}
