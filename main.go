package main

import (
	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	authRoutes "devcamper/routers/authRoutes"
	bootcampRoutes "devcamper/routers/bootcampRoutes"
	courseRoutes "devcamper/routers/courseRoutes"
	userRoutes "devcamper/routers/userRoutes"
	"devcamper/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	utils.InitializeResetTokenScheduler()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	// Panics stay scoped to the request that caused them.
	app.Use(recover.New())
	app.Use(middleware.RequestID)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (uploaded photos) from the public folder
	app.Static("/", "./public")

	bootcampRoutes.SetupBootcampRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
