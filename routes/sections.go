package routes

import (
	api "topluluk.link/handlers/api"
	"topluluk.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerSectionRoutes(app *fiber.App) {
	sectionHandler := api.NewSectionHandler()
	invitationHandler := api.NewInvitationHandler()

	sections := app.Group("/api/sections")

	sections.Get("/", middlewares.OptionalAuthMiddleware, sectionHandler.List)
	sections.Get("/mine", middlewares.AuthMiddleware, sectionHandler.ListOwn)
	sections.Get("/:id", middlewares.OptionalAuthMiddleware, sectionHandler.Get)
	sections.Get("/:id/events", middlewares.OptionalAuthMiddleware, sectionHandler.ListEvents)
	sections.Get("/:id/members", middlewares.OptionalAuthMiddleware, sectionHandler.Members)
	sections.Get("/:id/profile-fields", middlewares.OptionalAuthMiddleware, sectionHandler.ProfileFields)

	authed := sections.Group("", middlewares.AuthMiddleware)
	authed.Post("/", sectionHandler.Create)
	authed.Put("/:id", sectionHandler.Update)
	authed.Delete("/:id", sectionHandler.Delete)

	authed.Post("/:id/join", sectionHandler.Join)
	authed.Post("/:id/leave", sectionHandler.Leave)
	authed.Get("/:id/members/pending", sectionHandler.PendingMembers)
	authed.Post("/:id/members/:userID/review", sectionHandler.ReviewMember)
	authed.Patch("/:id/members/:userID/admin", sectionHandler.SetMemberAdmin)
	authed.Patch("/:id/visibility", sectionHandler.SetVisibility)

	authed.Post("/:id/profile-fields", sectionHandler.CreateProfileField)
	authed.Delete("/:id/profile-fields/:fieldID", sectionHandler.DeleteProfileField)
	authed.Put("/:id/profile-data", sectionHandler.SubmitProfileData)

	authed.Get("/:id/invitable-users", invitationHandler.SearchInvitableUsers)
	authed.Post("/:id/invitations", invitationHandler.InviteToSection)
}
