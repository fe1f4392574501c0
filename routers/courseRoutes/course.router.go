package courseRoutes

import (
	courseControllers "devcamper/controllers/course"
	"devcamper/middleware"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/v1/courses")

	courseGroup.Get("/", courseControllers.GetCourses)
	courseGroup.Get("/:id", courseControllers.GetCourse)
	courseGroup.Put("/:id", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		courseControllers.DeleteCourse)
}
