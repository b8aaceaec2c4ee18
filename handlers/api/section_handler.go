package handlers

import (
	"topluluk.link/models"
	"topluluk.link/pkg/queryparams"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// SectionHandler bölüm, üyelik ve bölüme özel profil isteklerini yönetir.
type SectionHandler struct {
	sectionService services.ISectionService
	eventService   services.IEventService
}

func NewSectionHandler() *SectionHandler {
	return &SectionHandler{
		sectionService: services.NewSectionService(),
		eventService:   services.NewEventService(),
	}
}

type sectionRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	IsPublic         bool   `json:"is_public"`
	RequiresApproval bool   `json:"requires_approval"`
}

func (r sectionRequest) toModel() models.Section {
	return models.Section{
		Name:             r.Name,
		Description:      r.Description,
		ImageURL:         r.ImageURL,
		IsPublic:         r.IsPublic,
		RequiresApproval: r.RequiresApproval,
	}
}

// List GET /api/sections — açık bölümler.
func (h *SectionHandler) List(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("name")
	}
	result, err := h.sectionService.GetPublicSections(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListOwn GET /api/sections/mine — üyesi olunan bölümler.
func (h *SectionHandler) ListOwn(c *fiber.Ctx) error {
	sections, err := h.sectionService.GetSectionsForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sections": sections})
}

// Get GET /api/sections/:id
func (h *SectionHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	section, err := h.sectionService.GetSectionByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"section":      section,
		"is_admin":     h.sectionService.IsAdmin(c.UserContext(), id, currentUserID(c)),
		"member_count": h.sectionService.GetMemberCount(c.UserContext(), id),
	})
}

// Create POST /api/sections
func (h *SectionHandler) Create(c *fiber.Ctx) error {
	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	section, err := h.sectionService.CreateSection(c.UserContext(), currentUserID(c), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"section": section})
}

// Update PUT /api/sections/:id
func (h *SectionHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.sectionService.UpdateSection(c.UserContext(), id, currentUserID(c), req.toModel()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/sections/:id
func (h *SectionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.sectionService.DeleteSection(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEvents GET /api/sections/:id/events
func (h *SectionHandler) ListEvents(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.sectionService.GetSectionByID(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	events, err := h.eventService.GetEventsForSection(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// Join POST /api/sections/:id/join
func (h *SectionHandler) Join(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	member, err := h.sectionService.JoinSection(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"membership": member})
}

// Leave POST /api/sections/:id/leave
func (h *SectionHandler) Leave(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.sectionService.LeaveSection(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Members GET /api/sections/:id/members
func (h *SectionHandler) Members(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	members, err := h.sectionService.GetMembers(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

// PendingMembers GET /api/sections/:id/members/pending
func (h *SectionHandler) PendingMembers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	members, err := h.sectionService.GetPendingMembers(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

// ReviewMember POST /api/sections/:id/members/:userID/review
func (h *SectionHandler) ReviewMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "userID")
	if err != nil {
		return err
	}
	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.sectionService.ReviewMembership(c.UserContext(), id, targetID, currentUserID(c), req.Approve); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetMemberAdmin PATCH /api/sections/:id/members/:userID/admin
func (h *SectionHandler) SetMemberAdmin(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "userID")
	if err != nil {
		return err
	}
	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.sectionService.SetMemberAdmin(c.UserContext(), id, targetID, currentUserID(c), req.IsAdmin); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetVisibility PATCH /api/sections/:id/visibility — kendi liste görünürlüğü.
func (h *SectionHandler) SetVisibility(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Hidden bool `json:"hidden"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.sectionService.SetMembershipVisibility(c.UserContext(), id, currentUserID(c), req.Hidden); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProfileFields GET /api/sections/:id/profile-fields
func (h *SectionHandler) ProfileFields(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	fields, err := h.sectionService.GetProfileFields(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"fields": fields})
}

// CreateProfileField POST /api/sections/:id/profile-fields
func (h *SectionHandler) CreateProfileField(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Label     string `json:"label"`
		Required  bool   `json:"required"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	field, err := h.sectionService.CreateProfileField(c.UserContext(), id, currentUserID(c), models.SectionProfileField{
		Label: req.Label, Required: req.Required, SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"field": field})
}

// DeleteProfileField DELETE /api/sections/:id/profile-fields/:fieldID
func (h *SectionHandler) DeleteProfileField(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	fieldID, err := parseIDParam(c, "fieldID")
	if err != nil {
		return err
	}
	if err := h.sectionService.DeleteProfileField(c.UserContext(), id, fieldID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitProfileData PUT /api/sections/:id/profile-data — kendi cevapları.
func (h *SectionHandler) SubmitProfileData(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Answers map[uint]string `json:"answers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.sectionService.SubmitProfileData(c.UserContext(), id, currentUserID(c), req.Answers); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
