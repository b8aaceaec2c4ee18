package handlers

import (
	"topluluk.link/models"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// ChannelHandler kanal ve mesaj isteklerini yönetir.
type ChannelHandler struct {
	channelService services.IChannelService
}

func NewChannelHandler(channelService services.IChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

type channelRequest struct {
	Name       string `json:"name"`
	SectionID  *uint  `json:"section_id"`
	EventID    *uint  `json:"event_id"`
	CategoryID *uint  `json:"category_id"`
}

// List GET /api/channels — üyesi olunan kanallar.
func (h *ChannelHandler) List(c *fiber.Ctx) error {
	channels, err := h.channelService.GetChannelsForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"channels": channels})
}

// ListForSection GET /api/sections/:id/channels
func (h *ChannelHandler) ListForSection(c *fiber.Ctx) error {
	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	channels, err := h.channelService.GetChannelsForSection(c.UserContext(), sectionID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"channels": channels})
}

// Categories GET /api/channels/categories
func (h *ChannelHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.channelService.GetCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// Create POST /api/channels
func (h *ChannelHandler) Create(c *fiber.Ctx) error {
	var req channelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	channel, err := h.channelService.CreateChannel(c.UserContext(), currentUserID(c), models.Channel{
		Name:       req.Name,
		SectionID:  req.SectionID,
		EventID:    req.EventID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"channel": channel})
}

// Get GET /api/channels/:id
func (h *ChannelHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	channel, err := h.channelService.GetChannelByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	isMember, _ := h.channelService.IsMember(c.UserContext(), id, currentUserID(c))
	return c.JSON(fiber.Map{"channel": channel, "is_member": isMember})
}

// Delete DELETE /api/channels/:id
func (h *ChannelHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.channelService.DeleteChannel(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Join POST /api/channels/:id/join
func (h *ChannelHandler) Join(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.channelService.JoinChannel(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Leave POST /api/channels/:id/leave
func (h *ChannelHandler) Leave(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.channelService.LeaveChannel(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Messages GET /api/channels/:id/messages?limit=&before_id=
func (h *ChannelHandler) Messages(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	messages, err := h.channelService.GetMessages(c.UserContext(), id, currentUserID(c),
		c.QueryInt("limit"), c.QueryInt("before_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// PostMessage POST /api/channels/:id/messages
func (h *ChannelHandler) PostMessage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	message, err := h.channelService.PostMessage(c.UserContext(), id, currentUserID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}

// DeleteMessage DELETE /api/channels/:id/messages/:messageID
func (h *ChannelHandler) DeleteMessage(c *fiber.Ctx) error {
	messageID, err := parseIDParam(c, "messageID")
	if err != nil {
		return err
	}
	if err := h.channelService.DeleteMessage(c.UserContext(), messageID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
