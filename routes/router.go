package routes

import (
	"topluluk.link/configs"
	"topluluk.link/realtime"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
// hub kanal canlı akışının dağıtıcısıdır; mesaj servisi ona bağlanır.
func SetupRoutes(app *fiber.App, hub *realtime.Hub) {
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(cors.New(cors.Config{
		AllowOrigins: configs.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	channelService := services.NewChannelService(hub)

	registerAuthRoutes(app)
	registerProfileRoutes(app)
	registerEventRoutes(app)
	registerSectionRoutes(app)
	registerChannelRoutes(app, hub, channelService)
	registerPublicRoutes(app)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "text/html":
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kaynak bulunamadı"})
	}
}
