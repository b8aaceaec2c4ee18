package realtime

import (
	"context"
	"encoding/json"
	"os"

	"topluluk.link/configs/configslog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisSubject tüm kanal olaylarının aktığı pub/sub konusudur.
const redisSubject = "topluluk:channel-events"

// wireEnvelope Redis üzerinden taşınan zarftır; Origin burada açık yazılır.
type wireEnvelope struct {
	Envelope
	Origin string `json:"origin"`
}

// RedisBridge kanal olaylarını sunucu örnekleri arasında taşır. REDIS_ADDR
// tanımlı değilse köprü kurulmaz ve dağıtım tek örnekle sınırlı kalır.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
}

// NewRedisBridgeFromEnv ortam değişkenlerinden köprü kurar; REDIS_ADDR boşsa
// nil döner.
func NewRedisBridgeFromEnv(hub *Hub) *RedisBridge {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	bridge := &RedisBridge{client: client, hub: hub}
	hub.SetBridge(bridge)
	return bridge
}

// Publish olayı diğer örneklere gönderir; hata yayını durdurmaz.
func (b *RedisBridge) Publish(envelope Envelope) {
	payload, err := json.Marshal(wireEnvelope{Envelope: envelope, Origin: envelope.Origin})
	if err != nil {
		configslog.Log.Error("RedisBridge: marshal error", zap.Error(err))
		return
	}
	if err := b.client.Publish(context.Background(), redisSubject, payload).Err(); err != nil {
		configslog.Log.Warn("RedisBridge: publish error", zap.Error(err))
	}
}

// Run abone döngüsünü çalıştırır; ctx iptaline kadar bloklar. Kendi örneğimizin
// yayınları Origin kontrolüyle atlanır.
func (b *RedisBridge) Run(ctx context.Context) {
	pubsub := b.client.Subscribe(ctx, redisSubject)
	defer pubsub.Close()

	configslog.SLog.Infof("Redis köprüsü dinlemede: %s", redisSubject)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var wire wireEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &wire); err != nil {
				configslog.Log.Warn("RedisBridge: unmarshal error", zap.Error(err))
				continue
			}
			if wire.Origin == b.hub.InstanceID() {
				continue
			}
			b.hub.deliverLocal(wire.Envelope)
		}
	}
}

// Close bağlantıyı kapatır.
func (b *RedisBridge) Close() error {
	return b.client.Close()
}
