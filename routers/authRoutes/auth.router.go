package authRoutes

import (
	authControllers "devcamper/controllers/auth"
	"devcamper/middleware"
	authValidators "devcamper/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/v1/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/logout", authControllers.Logout)
	authGroup.Get("/me", middleware.Protect, authControllers.GetMe)
	authGroup.Put("/updatedetails", middleware.Protect, authValidators.UpdateDetails(), authControllers.UpdateDetails)
	authGroup.Put("/updatepassword", middleware.Protect, authValidators.UpdatePassword(), authControllers.UpdatePassword)
	authGroup.Post("/forgotpassword", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Put("/resetpassword/:resettoken", authValidators.ResetPassword(), authControllers.ResetPassword)
}
