package realtime

import (
	"encoding/json"
	"sync"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Olay tipleri; istemci "type" alanına bakarak ayrıştırır.
const (
	EventTypeMessage        = "message.created"
	EventTypeMessageDeleted = "message.deleted"
)

// Envelope kanal akışındaki tek olay zarfıdır. Origin hangi sunucu
// örneğinden çıktığını taşır; Redis köprüsü kendi yayınını geri almaz.
type Envelope struct {
	Type      string                 `json:"type"`
	ChannelID uint                   `json:"channel_id"`
	Message   *models.ChannelMessage `json:"message,omitempty"`
	MessageID uint                   `json:"message_id,omitempty"`
	Origin    string                 `json:"-"`
}

// Subscriber tek bir açık bağlantıyı temsil eder. Send kanalı dolarsa olay
// düşürülür; yavaş istemci diğerlerini bekletmez.
type Subscriber struct {
	ChannelID uint
	UserID    uint
	Send      chan []byte
}

// TrySend yükü bloklamadan kuyruğa ekler; tampon doluysa false döner.
// Bağlantıya tüm yazımlar bu kuyruk üzerinden tek goroutine'de yapılır.
func (s *Subscriber) TrySend(payload []byte) bool {
	select {
	case s.Send <- payload:
		return true
	default:
		return false
	}
}

// Hub kanal bazlı abone kayıtlarını tutar ve olayları dağıtır. Bridge
// ayarlanmışsa olaylar diğer sunucu örneklerine de iletilir.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint]map[*Subscriber]bool
	instanceID  string
	bridge      *RedisBridge
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint]map[*Subscriber]bool),
		instanceID:  uuid.NewString(),
	}
}

// SetBridge Redis köprüsünü bağlar (tek sunucu kurulumunda nil kalır).
func (h *Hub) SetBridge(bridge *RedisBridge) {
	h.bridge = bridge
}

func (h *Hub) InstanceID() string { return h.instanceID }

// Subscribe bağlantıyı kanala kaydeder.
func (h *Hub) Subscribe(channelID, userID uint) *Subscriber {
	sub := &Subscriber{
		ChannelID: channelID,
		UserID:    userID,
		Send:      make(chan []byte, 32),
	}
	h.mu.Lock()
	if h.subscribers[channelID] == nil {
		h.subscribers[channelID] = make(map[*Subscriber]bool)
	}
	h.subscribers[channelID][sub] = true
	h.mu.Unlock()
	return sub
}

// Unsubscribe kaydı düşürür ve Send kanalını kapatır. İkinci çağrı zararsızdır.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[sub.ChannelID]
	if subs == nil || !subs[sub] {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.ChannelID)
	}
	close(sub.Send)
}

// SubscriberCount test ve tanılama içindir.
func (h *Hub) SubscriberCount(channelID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channelID])
}

// deliverLocal olayı bu örnekteki abonelere yazar.
func (h *Hub) deliverLocal(envelope Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		configslog.Log.Error("Hub: envelope marshal error", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[envelope.ChannelID] {
		// Tampon doluysa olay bu aboneye düşürülür.
		sub.TrySend(payload)
	}
}

func (h *Hub) publish(envelope Envelope) {
	envelope.Origin = h.instanceID
	h.deliverLocal(envelope)
	if h.bridge != nil {
		h.bridge.Publish(envelope)
	}
}

// BroadcastMessage yeni mesajı kanal abonelerine duyurur.
func (h *Hub) BroadcastMessage(channelID uint, message *models.ChannelMessage) {
	h.publish(Envelope{Type: EventTypeMessage, ChannelID: channelID, Message: message})
}

// BroadcastDeletion silinen mesajı kanal abonelerine duyurur.
func (h *Hub) BroadcastDeletion(channelID, messageID uint) {
	h.publish(Envelope{Type: EventTypeMessageDeleted, ChannelID: channelID, MessageID: messageID})
}
