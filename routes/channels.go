package routes

import (
	api "topluluk.link/handlers/api"
	"topluluk.link/middlewares"
	"topluluk.link/realtime"
	"topluluk.link/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func registerChannelRoutes(app *fiber.App, hub *realtime.Hub, channelService services.IChannelService) {
	channelHandler := api.NewChannelHandler(channelService)
	wsHandler := api.NewWSHandler(hub, channelService)

	channels := app.Group("/api/channels")

	// WS kimliğini query token'dan alır; Bearer middleware'inden geçmez.
	channels.Get("/:id/ws", wsHandler.Upgrade, websocket.New(wsHandler.Serve))

	authed := channels.Group("", middlewares.AuthMiddleware)
	authed.Get("/", channelHandler.List)
	authed.Get("/categories", channelHandler.Categories)
	authed.Post("/", channelHandler.Create)
	authed.Get("/:id", channelHandler.Get)
	authed.Delete("/:id", channelHandler.Delete)
	authed.Post("/:id/join", channelHandler.Join)
	authed.Post("/:id/leave", channelHandler.Leave)
	authed.Get("/:id/messages", channelHandler.Messages)
	authed.Post("/:id/messages", channelHandler.PostMessage)
	authed.Delete("/:id/messages/:messageID", channelHandler.DeleteMessage)

	app.Get("/api/sections/:id/channels", middlewares.AuthMiddleware, channelHandler.ListForSection)
}
