package routes

import (
	api "topluluk.link/handlers/api"
	"topluluk.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerEventRoutes etkinlik, LCV ve davet rotalarını tanımlar. Listeleme ve
// detay isteği anonim yapılabilir; taslaklar ve özel etkinlikler servis
// katmanında yetkiye göre filtrelenir.
func registerEventRoutes(app *fiber.App) {
	eventHandler := api.NewEventHandler()
	rsvpHandler := api.NewRSVPHandler()
	invitationHandler := api.NewInvitationHandler()

	events := app.Group("/api/events")

	events.Get("/", middlewares.OptionalAuthMiddleware, eventHandler.List)
	events.Get("/mine", middlewares.AuthMiddleware, eventHandler.ListOwn)
	events.Get("/:id", middlewares.OptionalAuthMiddleware, eventHandler.Get)
	events.Get("/:id/attendance", middlewares.OptionalAuthMiddleware, rsvpHandler.Attendance)
	events.Get("/:id/guests", middlewares.OptionalAuthMiddleware, rsvpHandler.GuestList)
	events.Get("/:id/waitlist", middlewares.OptionalAuthMiddleware, rsvpHandler.Waitlist)

	authed := events.Group("", middlewares.AuthMiddleware)
	authed.Post("/", eventHandler.Create)
	authed.Put("/:id", eventHandler.Update)
	authed.Patch("/:id/status", eventHandler.SetStatus)
	authed.Delete("/:id", eventHandler.Delete)
	authed.Post("/:id/cohosts", eventHandler.AddCohost)
	authed.Delete("/:id/cohosts/:userID", eventHandler.RemoveCohost)

	authed.Post("/:id/rsvp", rsvpHandler.Submit)
	authed.Delete("/:id/rsvp", rsvpHandler.Cancel)
	authed.Delete("/:id/waitlist", rsvpHandler.LeaveWaitlist)

	authed.Post("/:id/invitations", invitationHandler.InviteToEvent)
	authed.Post("/:id/section-invitations", invitationHandler.InviteSectionToEvent)
	authed.Get("/:id/section-invitations", invitationHandler.ListSectionInvites)

	app.Get("/api/rsvps", middlewares.AuthMiddleware, rsvpHandler.MyRSVPs)

	invites := app.Group("/api/invitations", middlewares.AuthMiddleware)
	invites.Get("/", invitationHandler.MyInvites)
	invites.Post("/events/:id/respond", invitationHandler.RespondToEventInvite)
	invites.Post("/sections/:id/respond", invitationHandler.RespondToSectionInvite)
}
