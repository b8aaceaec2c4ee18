package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"topluluk.link/models"
)

func receiveOrFail(t *testing.T, sub *Subscriber) []byte {
	t.Helper()
	select {
	case payload := <-sub.Send:
		return payload
	case <-time.After(time.Second):
		t.Fatal("olay beklenirken zaman aşımı")
		return nil
	}
}

func TestHubBroadcastMessage(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe(7, 1)
	second := hub.Subscribe(7, 2)
	other := hub.Subscribe(8, 3)
	defer hub.Unsubscribe(other)

	message := &models.ChannelMessage{ChannelID: 7, UserID: 1, Content: "merhaba"}
	message.ID = 42
	hub.BroadcastMessage(7, message)

	for _, sub := range []*Subscriber{first, second} {
		var envelope Envelope
		if err := json.Unmarshal(receiveOrFail(t, sub), &envelope); err != nil {
			t.Fatalf("zarf çözülemedi: %v", err)
		}
		if envelope.Type != EventTypeMessage {
			t.Errorf("tip = %q, beklenen %q", envelope.Type, EventTypeMessage)
		}
		if envelope.ChannelID != 7 || envelope.Message == nil || envelope.Message.ID != 42 {
			t.Errorf("zarf içeriği beklenenden farklı: %+v", envelope)
		}
	}

	// Başka kanalın abonesine olay gitmemeli.
	select {
	case payload := <-other.Send:
		t.Errorf("diğer kanal abonesine olay gitti: %s", payload)
	default:
	}

	hub.Unsubscribe(first)
	hub.Unsubscribe(second)
}

func TestHubBroadcastDeletion(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(3, 9)
	defer hub.Unsubscribe(sub)

	hub.BroadcastDeletion(3, 100)

	var envelope Envelope
	if err := json.Unmarshal(receiveOrFail(t, sub), &envelope); err != nil {
		t.Fatalf("zarf çözülemedi: %v", err)
	}
	if envelope.Type != EventTypeMessageDeleted || envelope.MessageID != 100 {
		t.Errorf("zarf içeriği beklenenden farklı: %+v", envelope)
	}
}

func TestHubUnsubscribeClosesSend(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(1, 1)
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub) // ikinci çağrı panic'lememeli

	if _, ok := <-sub.Send; ok {
		t.Error("Send kanalı kapatılmış olmalıydı")
	}
	if got := hub.SubscriberCount(1); got != 0 {
		t.Errorf("SubscriberCount = %d, beklenen 0", got)
	}
}

// Hata zarfları da hub olaylarıyla aynı kuyruktan akar; TrySend kuyruk
// doluyken bloklamadan false dönmeli, yer açılınca sırayı korumalı.
func TestSubscriberTrySend(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(2, 4)
	defer hub.Unsubscribe(sub)

	hub.BroadcastDeletion(2, 1)
	if !sub.TrySend([]byte(`{"type":"error"}`)) {
		t.Fatal("boş yeri olan kuyruğa ekleme başarısız oldu")
	}

	// Kuyruk ağzına kadar doldurulur; sonraki deneme düşmeli.
	for sub.TrySend([]byte("x")) {
	}
	if sub.TrySend([]byte("y")) {
		t.Error("dolu kuyruğa ekleme başarılı görünmemeli")
	}

	// İlk iki öğe yayın sırasını korur: önce hub olayı, sonra hata zarfı.
	var envelope Envelope
	if err := json.Unmarshal(receiveOrFail(t, sub), &envelope); err != nil {
		t.Fatalf("zarf çözülemedi: %v", err)
	}
	if envelope.Type != EventTypeMessageDeleted {
		t.Errorf("ilk öğe = %q, beklenen %q", envelope.Type, EventTypeMessageDeleted)
	}
	if got := string(receiveOrFail(t, sub)); got != `{"type":"error"}` {
		t.Errorf("ikinci öğe = %s", got)
	}
}

// Yavaş abonenin dolu tamponu yayını bloklamamalı.
func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe(5, 1)
	defer hub.Unsubscribe(slow)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.BroadcastDeletion(5, uint(i+1))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("yayın yavaş abonede bloklandı")
	}
}
