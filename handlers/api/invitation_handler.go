package handlers

import (
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// InvitationHandler etkinlik ve bölüm davetlerini yönetir.
type InvitationHandler struct {
	eventInviteService   services.IEventInvitationService
	sectionInviteService services.ISectionInvitationService
	userService          services.IUserService
}

func NewInvitationHandler() *InvitationHandler {
	return &InvitationHandler{
		eventInviteService:   services.NewEventInvitationService(),
		sectionInviteService: services.NewSectionInvitationService(),
		userService:          services.NewUserService(),
	}
}

type inviteRequest struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// resolveInvitee davet edilecek kullanıcıyı ID'den ya da e-postadan bulur.
func (h *InvitationHandler) resolveInvitee(c *fiber.Ctx, req inviteRequest) (uint, error) {
	if req.UserID != 0 {
		return req.UserID, nil
	}
	if req.Email == "" {
		return 0, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz davet isteği"})
	}
	user, err := h.userService.GetUserByEmail(c.UserContext(), req.Email)
	if err != nil {
		return 0, respondError(c, err)
	}
	return user.ID, nil
}

// InviteToEvent POST /api/events/:id/invitations
func (h *InvitationHandler) InviteToEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz davet isteği"})
	}
	inviteeID, err := h.resolveInvitee(c, req)
	if inviteeID == 0 {
		return err
	}
	invite, err := h.eventInviteService.InviteUser(c.UserContext(), eventID, inviteeID, currentUserID(c), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invitation": invite})
}

// InviteSectionToEvent POST /api/events/:id/section-invitations
func (h *InvitationHandler) InviteSectionToEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		SectionID uint `json:"section_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.SectionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz bölüm"})
	}
	invite, err := h.eventInviteService.InviteSection(c.UserContext(), eventID, req.SectionID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invitation": invite})
}

// ListSectionInvites GET /api/events/:id/section-invitations
func (h *InvitationHandler) ListSectionInvites(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	invites, err := h.eventInviteService.GetSectionInvitesForEvent(c.UserContext(), eventID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"invitations": invites})
}

// MyInvites GET /api/invitations — bekleyen etkinlik ve bölüm davetleri.
func (h *InvitationHandler) MyInvites(c *fiber.Ctx) error {
	userID := currentUserID(c)
	eventInvites, err := h.eventInviteService.GetPendingInvitesForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	sectionInvites, err := h.sectionInviteService.GetPendingInvitesForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"event_invitations":   eventInvites,
		"section_invitations": sectionInvites,
	})
}

type inviteResponse struct {
	Accept bool `json:"accept"`
}

// RespondToEventInvite POST /api/invitations/events/:id/respond — kabul
// "going" LCV'sine dönüşür; kapasite doluysa cevap bekleme listesini gösterir.
func (h *InvitationHandler) RespondToEventInvite(c *fiber.Ctx) error {
	inviteID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req inviteResponse
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	result, err := h.eventInviteService.RespondToInvite(c.UserContext(), inviteID, currentUserID(c), req.Accept)
	if err != nil {
		return respondError(c, err)
	}
	if result == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(result)
}

// RespondToSectionInvite POST /api/invitations/sections/:id/respond
func (h *InvitationHandler) RespondToSectionInvite(c *fiber.Ctx) error {
	inviteID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req inviteResponse
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.sectionInviteService.RespondToInvite(c.UserContext(), inviteID, currentUserID(c), req.Accept); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchInvitableUsers GET /api/sections/:id/invitable-users?q=...
func (h *InvitationHandler) SearchInvitableUsers(c *fiber.Ctx) error {
	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.userService.SearchAvailableForInvite(c.UserContext(), sectionID, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// InviteToSection POST /api/sections/:id/invitations
func (h *InvitationHandler) InviteToSection(c *fiber.Ctx) error {
	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz davet isteği"})
	}
	inviteeID, err := h.resolveInvitee(c, req)
	if inviteeID == 0 {
		return err
	}
	invite, err := h.sectionInviteService.InviteUser(c.UserContext(), sectionID, inviteeID, currentUserID(c), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invitation": invite})
}
