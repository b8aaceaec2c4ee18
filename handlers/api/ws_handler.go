package handlers

import (
	"context"
	"encoding/json"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/realtime"
	"topluluk.link/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WSHandler kanal canlı akış bağlantılarını yönetir. İstemci bağlandıktan
// sonra hub olaylarını JSON zarf olarak alır; gönderdiği {"content": "..."}
// mesajları normal mesaj akışından geçer (kalıcı yaz, sonra duyur).
type WSHandler struct {
	hub            *realtime.Hub
	channelService services.IChannelService
	authService    services.IAuthService
}

func NewWSHandler(hub *realtime.Hub, channelService services.IChannelService) *WSHandler {
	return &WSHandler{
		hub:            hub,
		channelService: channelService,
		authService:    services.NewAuthService(),
	}
}

// Upgrade GET /api/channels/:id/ws ön kontrolü: token (tarayıcı WS başlık
// gönderemediği için query'de taşınır) ve kanal üyeliği doğrulanır.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	channelID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := h.authService.ParseToken(c.Query("token"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	isMember, err := h.channelService.IsMember(c.UserContext(), channelID, userID)
	if err != nil {
		return respondError(c, err)
	}
	if !isMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": string(services.ErrChannelNotMember)})
	}
	c.Locals("channelID", channelID)
	c.Locals("userID", userID)
	return c.Next()
}

// Serve websocket.New ile sarılarak rotaya bağlanır.
func (h *WSHandler) Serve(conn *websocket.Conn) {
	channelID, _ := conn.Locals("channelID").(uint)
	userID, _ := conn.Locals("userID").(uint)
	if channelID == 0 || userID == 0 {
		conn.Close()
		return
	}

	sub := h.hub.Subscribe(channelID, userID)
	defer h.hub.Unsubscribe(sub)
	configslog.SLog.Debugf("WS bağlandı: kanal %d, kullanıcı %d", channelID, userID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for payload := range sub.Send {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var incoming struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(data, &incoming); err != nil || incoming.Content == "" {
			continue
		}
		ctx := models.ContextWithUserID(context.Background(), userID)
		if _, err := h.channelService.PostMessage(ctx, channelID, userID, incoming.Content); err != nil {
			configslog.Log.Warn("WS: mesaj gönderilemedi",
				zap.Uint("channelID", channelID), zap.Uint("userID", userID), zap.Error(err))
			// Hata zarfı da yazma döngüsünden geçer; bağlantıya yalnızca o
			// goroutine yazar. Tampon doluysa zarf düşürülür.
			errPayload, _ := json.Marshal(fiber.Map{"type": "error", "error": err.Error()})
			sub.TrySend(errPayload)
		}
	}

	// Abonelik önce düşürülür ki yazma döngüsü kapanan kanaldan çıksın.
	h.hub.Unsubscribe(sub)
	conn.Close()
	<-done
}
