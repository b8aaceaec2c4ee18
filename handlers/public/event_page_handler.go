package handlers

import (
	"errors"
	"time"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EventPageHandler /e/:key public etkinlik sayfasını yönetir. Bu sayfa oturum
// gerektirmez; paylaşım anahtarını bilen herkes açabilir.
type EventPageHandler struct {
	eventService services.IEventService
	rsvpService  services.IRSVPService
}

func NewEventPageHandler() *EventPageHandler {
	return &EventPageHandler{
		eventService: services.NewEventService(),
		rsvpService:  services.NewRSVPService(),
	}
}

// Show GET /e/:key
func (h *EventPageHandler) Show(c *fiber.Ctx) error {
	key := c.Params("key")
	if len(key) != 11 {
		configslog.SLog.Warnf("Geçersiz formatta paylaşım anahtarı denendi: %s", key)
		return h.renderNotFound(c, "Geçersiz Bağlantı")
	}

	ctx := c.UserContext()
	event, err := h.eventService.GetEventByShareKey(ctx, key)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return h.renderNotFound(c, "Etkinlik Bulunamadı")
		}
		configslog.Log.Error("EventPage.Show: GetEventByShareKey error", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Etkinlik bilgileri alınırken bir sorun oluştu.")
	}

	now := time.Now().UTC()
	status := services.ResolveStatus(event, now)
	data := fiber.Map{
		"Event":   event,
		"Status":  status,
		"Display": models.DisplayFor(status),
		"CanRSVP": services.CanRSVP(event, now),
	}

	// Eski kayıtlarda StartsAt boş olabilir; başlangıç anı her iki şemadan da
	// tek fonksiyonla çözülür. Çözülemeyen kayıt tarihsiz gösterilir.
	if start, startErr := h.eventService.NormalizedStart(event); startErr == nil {
		data["StartsAt"] = start
	}

	// Katılımcı listesi public ise sayım ve isimler gösterilir; diğer
	// görünürlüklerde sayfa yalnızca etkinlik detayını verir.
	if event.GuestListVisibility == models.GuestListPublic {
		if attendance, attErr := h.rsvpService.GetAttendance(ctx, event.ID, 0); attErr == nil {
			data["GoingCount"] = attendance.Counts[models.RSVPStatusGoing]
			data["WaitlistCount"] = attendance.WaitlistCount
			data["ShowCounts"] = true
		}
	}
	return c.Render("public/event", data)
}

func (h *EventPageHandler) renderNotFound(c *fiber.Ctx, title string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": title})
}

func (h *EventPageHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/404", fiber.Map{
		"Title":   "Bir Sorun Oluştu",
		"Message": message,
	})
}
