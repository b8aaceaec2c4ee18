package handlers

import (
	"topluluk.link/models"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
)

// RSVPHandler LCV, katılımcı listesi ve bekleme listesi isteklerini yönetir.
type RSVPHandler struct {
	rsvpService services.IRSVPService
}

func NewRSVPHandler() *RSVPHandler {
	return &RSVPHandler{rsvpService: services.NewRSVPService()}
}

// Submit POST /api/events/:id/rsvp — durum verir veya günceller. Kapasite
// doluysa ve bekleme listesi açıksa cevapta placed_on_waitlist döner.
func (h *RSVPHandler) Submit(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Status models.RSVPStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "istek gövdesi okunamadı"})
	}
	result, err := h.rsvpService.SubmitRSVP(c.UserContext(), eventID, currentUserID(c), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Cancel DELETE /api/events/:id/rsvp
func (h *RSVPHandler) Cancel(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.rsvpService.CancelRSVP(c.UserContext(), eventID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Attendance GET /api/events/:id/attendance — sayımlar ve kendi kaydı.
func (h *RSVPHandler) Attendance(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	attendance, err := h.rsvpService.GetAttendance(c.UserContext(), eventID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(attendance)
}

// GuestList GET /api/events/:id/guests — görünürlük kuralına tabidir.
func (h *RSVPHandler) GuestList(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	guests, err := h.rsvpService.GetGuestList(c.UserContext(), eventID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"guests": guests})
}

// Waitlist GET /api/events/:id/waitlist
func (h *RSVPHandler) Waitlist(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.rsvpService.GetWaitlist(c.UserContext(), eventID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"waitlist": entries})
}

// LeaveWaitlist DELETE /api/events/:id/waitlist
func (h *RSVPHandler) LeaveWaitlist(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.rsvpService.LeaveWaitlist(c.UserContext(), eventID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MyRSVPs GET /api/rsvps — oturum sahibinin tüm LCV kayıtları.
func (h *RSVPHandler) MyRSVPs(c *fiber.Ctx) error {
	rsvps, err := h.rsvpService.GetRSVPsForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"rsvps": rsvps})
}
