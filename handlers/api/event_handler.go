package handlers

import (
	"time"

	"topluluk.link/models"
	"topluluk.link/pkg/queryparams"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler etkinlik CRUD ve durum isteklerini yönetir.
type EventHandler struct {
	eventService services.IEventService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{eventService: services.NewEventService()}
}

// eventRequest istemciden gelen düzenlenebilir etkinlik alanları.
type eventRequest struct {
	Title               string                     `json:"title"`
	Description         string                     `json:"description"`
	StartsAt            *time.Time                 `json:"starts_at"`
	EndsAt              *time.Time                 `json:"ends_at"`
	Date                string                     `json:"date"`
	Time                string                     `json:"time"`
	Location            string                     `json:"location"`
	IsVirtual           bool                       `json:"is_virtual"`
	VirtualLink         string                     `json:"virtual_link"`
	ImageURL            string                     `json:"image_url"`
	Tags                string                     `json:"tags"`
	GroupName           string                     `json:"group_name"`
	Published           bool                       `json:"published"`
	IsPrivate           bool                       `json:"is_private"`
	GuestListVisibility models.GuestListVisibility `json:"guest_list_visibility"`
	RSVPDeadline        *time.Time                 `json:"rsvp_deadline"`
	MaxCapacity         *int                       `json:"max_capacity"`
	WaitlistEnabled     bool                       `json:"waitlist_enabled"`
	SectionID           *uint                      `json:"section_id"`
}

func (r eventRequest) toModel() models.Event {
	return models.Event{
		Title:               r.Title,
		Description:         r.Description,
		StartsAt:            r.StartsAt,
		EndsAt:              r.EndsAt,
		LegacyDate:          r.Date,
		LegacyTime:          r.Time,
		Location:            r.Location,
		IsVirtual:           r.IsVirtual,
		VirtualLink:         r.VirtualLink,
		ImageURL:            r.ImageURL,
		Tags:                r.Tags,
		GroupName:           r.GroupName,
		Published:           r.Published,
		IsPrivate:           r.IsPrivate,
		GuestListVisibility: r.GuestListVisibility,
		RSVPDeadline:        r.RSVPDeadline,
		MaxCapacity:         r.MaxCapacity,
		WaitlistEnabled:     r.WaitlistEnabled,
		SectionID:           r.SectionID,
	}
}

// eventResponse etkinliği hesaplanmış durum ve rozet bilgisiyle sarar.
func eventResponse(event *models.Event, now time.Time) fiber.Map {
	status := services.ResolveStatus(event, now)
	return fiber.Map{
		"event":    event,
		"status":   status,
		"display":  models.DisplayFor(status),
		"can_rsvp": services.CanRSVP(event, now),
	}
}

// List GET /api/events — yayınlanmış açık etkinlikler.
func (h *EventHandler) List(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("starts_at")
	}
	result, err := h.eventService.GetPublicEvents(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListOwn GET /api/events/mine — oturum sahibinin etkinlikleri (taslaklar dahil).
func (h *EventHandler) ListOwn(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("starts_at")
	}
	result, err := h.eventService.GetEventsForUser(c.UserContext(), currentUserID(c), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	event, err := h.eventService.GetEventByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(eventResponse(event, time.Now().UTC()))
}

// Create POST /api/events
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	event, err := h.eventService.CreateEvent(c.UserContext(), currentUserID(c), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(eventResponse(event, time.Now().UTC()))
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.eventService.UpdateEvent(c.UserContext(), id, currentUserID(c), req.toModel()); err != nil {
		return respondError(c, err)
	}
	event, err := h.eventService.GetEventByID(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(eventResponse(event, time.Now().UTC()))
}

// SetStatus PATCH /api/events/:id/status — publish/cancel/postpone/complete.
func (h *EventHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Status models.EventStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	if err := h.eventService.SetEventStatus(c.UserContext(), id, currentUserID(c), req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": req.Status})
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.eventService.DeleteEvent(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddCohost POST /api/events/:id/cohosts
func (h *EventHandler) AddCohost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz kullanıcı"})
	}
	if err := h.eventService.AddCohost(c.UserContext(), id, req.UserID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveCohost DELETE /api/events/:id/cohosts/:userID
func (h *EventHandler) RemoveCohost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseIDParam(c, "userID")
	if err != nil {
		return err
	}
	if err := h.eventService.RemoveCohost(c.UserContext(), id, userID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
