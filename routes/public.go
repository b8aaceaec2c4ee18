package routes

import (
	public "topluluk.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes paylaşım anahtarıyla açılan sayfaları tanımlar.
func registerPublicRoutes(app *fiber.App) {
	eventPageHandler := public.NewEventPageHandler()
	app.Get("/e/:key", eventPageHandler.Show)
}
