package routes

import (
	api "topluluk.link/handlers/api"
	"topluluk.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App) {
	authHandler := api.NewAuthHandler()
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", middlewares.AuthMiddleware, authHandler.Me)
}

func registerProfileRoutes(app *fiber.App) {
	profileHandler := api.NewProfileHandler()

	app.Get("/api/profiles/:userID", middlewares.OptionalAuthMiddleware, profileHandler.GetByUserID)

	profileGroup := app.Group("/api/profile", middlewares.AuthMiddleware)
	profileGroup.Get("/", profileHandler.GetOwn)
	profileGroup.Put("/", profileHandler.Update)
	profileGroup.Post("/picture", profileHandler.UploadPicture)

	app.Post("/api/uploads", middlewares.AuthMiddleware, profileHandler.UploadImage)
}
