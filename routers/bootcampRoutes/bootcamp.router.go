package bootcampRoutes

import (
	bootcampControllers "devcamper/controllers/bootcamp"
	courseControllers "devcamper/controllers/course"
	"devcamper/middleware"
	"devcamper/models"
	bootcampValidators "devcamper/validators/bootcamp"
	courseValidators "devcamper/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupBootcampRoutes(app *fiber.App) {
	bootcampGroup := app.Group("/api/v1/bootcamps")

	// Registered before /:id so the literal segment wins.
	bootcampGroup.Get("/radius/:zipcode/:distance", bootcampControllers.GetBootcampsInRadius)

	bootcampGroup.Get("/", bootcampControllers.GetBootcamps)
	bootcampGroup.Post("/", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		bootcampValidators.CreateBootcamp(), bootcampControllers.CreateBootcamp)

	bootcampGroup.Get("/:id", bootcampControllers.GetBootcamp)
	bootcampGroup.Put("/:id", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		bootcampControllers.UpdateBootcamp)
	bootcampGroup.Delete("/:id", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		bootcampControllers.DeleteBootcamp)
	bootcampGroup.Put("/:id/photo", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		bootcampControllers.UploadBootcampPhoto)

	// Courses nested under their bootcamp
	bootcampGroup.Get("/:bootcampId/courses", courseControllers.GetCourses)
	bootcampGroup.Post("/:bootcampId/courses", middleware.Protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin),
		courseValidators.CreateCourse(), courseControllers.CreateCourse)
}
