package services

import (
	"context"
	"errors"
	"testing"

	"topluluk.link/models"
)

// Kabul edilen davet LCV akışından geçer; bekleme listesi kapalı dolu
// etkinlikte LCV reddedilir ve davet beklemede kalmalıdır (yarım kabul yok).
func TestRespondToInviteFullEventKeepsInvitePending(t *testing.T) {
	db := setupIntegrationDB(t)
	creator := createIntegrationUser(t, db, "kurucu")
	event := createCapacityEvent(t, db, creator.ID, 1, false)
	ctx := context.Background()

	occupant := createIntegrationUser(t, db, "ilk")
	if _, err := NewRSVPService().SubmitRSVP(ctx, event.ID, occupant.ID, models.RSVPStatusGoing); err != nil {
		t.Fatalf("kapasite altındaki LCV başarısız oldu: %v", err)
	}

	invited := createIntegrationUser(t, db, "davetli")
	invite := models.EventInvitation{
		EventID:   event.ID,
		UserID:    invited.ID,
		InvitedBy: creator.ID,
		Status:    models.InviteStatusPending,
	}
	if err := db.Create(&invite).Error; err != nil {
		t.Fatalf("davet oluşturulamadı: %v", err)
	}

	svc := NewEventInvitationService()
	if _, err := svc.RespondToInvite(ctx, invite.ID, invited.ID, true); !errors.Is(err, ErrRSVPEventFull) {
		t.Fatalf("dolu etkinlik hatası = %v, beklenen %v", err, ErrRSVPEventFull)
	}

	var reloaded models.EventInvitation
	if err := db.First(&reloaded, invite.ID).Error; err != nil {
		t.Fatalf("davet okunamadı: %v", err)
	}
	if reloaded.Status != models.InviteStatusPending {
		t.Errorf("davet durumu = %q, beklemede kalmalıydı", reloaded.Status)
	}

	// Davetli daha sonra reddedebilmeli.
	if _, err := svc.RespondToInvite(ctx, invite.ID, invited.ID, false); err != nil {
		t.Fatalf("red yanıtı başarısız oldu: %v", err)
	}
	if err := db.First(&reloaded, invite.ID).Error; err != nil {
		t.Fatalf("davet okunamadı: %v", err)
	}
	if reloaded.Status != models.InviteStatusDeclined {
		t.Errorf("davet durumu = %q, beklenen %q", reloaded.Status, models.InviteStatusDeclined)
	}
}
