package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"topluluk.link/configs/configsdatabase"
	"topluluk.link/configs/configslog"
	"topluluk.link/database/migrations"
	"topluluk.link/models"

	"gorm.io/gorm"
)

// setupIntegrationDB PostgreSQL'e bağlanır ve gerekli tabloları hazırlar.
// Veritabanına erişilemeyen ortamlarda test atlanır.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if configslog.Log == nil {
		configslog.InitLogger()
	}
	db, err := configsdatabase.Connect()
	if err != nil {
		t.Skipf("PostgreSQL erişilemedi, test atlandı: %v", err)
	}
	if err := migrations.MigrateUsersTables(db); err != nil {
		t.Fatalf("users tabloları hazırlanamadı: %v", err)
	}
	if err := migrations.MigrateSectionsTables(db); err != nil {
		t.Fatalf("sections tabloları hazırlanamadı: %v", err)
	}
	if err := migrations.MigrateEventsTables(db); err != nil {
		t.Fatalf("events tabloları hazırlanamadı: %v", err)
	}
	return db
}

func createIntegrationUser(t *testing.T, db *gorm.DB, label string) *models.User {
	t.Helper()
	user := models.User{
		Email:        fmt.Sprintf("%s-%d@test.invalid", label, time.Now().UnixNano()),
		PasswordHash: "test-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("test kullanıcısı oluşturulamadı: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Delete(&models.User{}, user.ID)
	})
	return &user
}

// createCapacityEvent yayınlanmış, kapasiteli ve bekleme listeli bir etkinlik
// oluşturur; bağlı LCV ve bekleme kayıtları test sonunda temizlenir.
func createCapacityEvent(t *testing.T, db *gorm.DB, creatorID uint, capacity int, waitlist bool) *models.Event {
	t.Helper()
	starts := time.Now().UTC().Add(48 * time.Hour)
	event := models.Event{
		Title:           "Kapasite denemesi",
		StartsAt:        &starts,
		Published:       true,
		Status:          models.EventStatusScheduled,
		MaxCapacity:     &capacity,
		WaitlistEnabled: waitlist,
		ShareKey:        generateShareKey(),
		CreatedByUserID: creatorID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("test etkinliği oluşturulamadı: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("event_id = ?", event.ID).Delete(&models.EventWaitlistEntry{})
		db.Unscoped().Where("event_id = ?", event.ID).Delete(&models.EventRSVP{})
		db.Unscoped().Where("event_id = ?", event.ID).Delete(&models.EventInvitation{})
		db.Unscoped().Delete(&models.Event{}, event.ID)
	})
	return &event
}

// Kapasite 2 + bekleme listesi açık: üçüncü "going" 1. pozisyona, dördüncü
// 2. pozisyona düşmeli; tekrar gönderim pozisyonu değiştirmemeli; listeden
// ayrılan silinir ve kalanlar yeniden numaralandırılmaz.
func TestSubmitRSVPWaitlistAllocation(t *testing.T) {
	db := setupIntegrationDB(t)
	creator := createIntegrationUser(t, db, "kurucu")
	event := createCapacityEvent(t, db, creator.ID, 2, true)
	svc := NewRSVPService()
	ctx := context.Background()

	first := createIntegrationUser(t, db, "birinci")
	second := createIntegrationUser(t, db, "ikinci")
	for _, u := range []*models.User{first, second} {
		result, err := svc.SubmitRSVP(ctx, event.ID, u.ID, models.RSVPStatusGoing)
		if err != nil {
			t.Fatalf("kapasite altındaki LCV başarısız oldu: %v", err)
		}
		if result.PlacedOnWaitlist || result.RSVP == nil {
			t.Fatalf("kapasite altındaki LCV doğrudan kaydedilmeliydi: %+v", result)
		}
	}

	third := createIntegrationUser(t, db, "üçüncü")
	result, err := svc.SubmitRSVP(ctx, event.ID, third.ID, models.RSVPStatusGoing)
	if err != nil {
		t.Fatalf("bekleme listesi kaydı başarısız oldu: %v", err)
	}
	if !result.PlacedOnWaitlist || result.WaitlistEntry == nil {
		t.Fatalf("dolu etkinlikte LCV bekleme listesine düşmeliydi: %+v", result)
	}
	if result.WaitlistEntry.Position != 1 {
		t.Errorf("ilk bekleme pozisyonu = %d, beklenen 1", result.WaitlistEntry.Position)
	}

	// Aynı kullanıcının tekrar denemesi pozisyonu korumalı.
	again, err := svc.SubmitRSVP(ctx, event.ID, third.ID, models.RSVPStatusGoing)
	if err != nil {
		t.Fatalf("tekrar gönderim başarısız oldu: %v", err)
	}
	if !again.PlacedOnWaitlist || again.WaitlistEntry.Position != 1 {
		t.Errorf("tekrar gönderimde pozisyon = %d, beklenen 1", again.WaitlistEntry.Position)
	}

	fourth := createIntegrationUser(t, db, "dördüncü")
	result, err = svc.SubmitRSVP(ctx, event.ID, fourth.ID, models.RSVPStatusGoing)
	if err != nil {
		t.Fatalf("ikinci bekleme kaydı başarısız oldu: %v", err)
	}
	if result.WaitlistEntry.Position != 2 {
		t.Errorf("ikinci bekleme pozisyonu = %d, beklenen 2", result.WaitlistEntry.Position)
	}

	if err := svc.LeaveWaitlist(ctx, event.ID, third.ID); err != nil {
		t.Fatalf("listeden ayrılma başarısız oldu: %v", err)
	}
	remaining, err := svc.GetWaitlist(ctx, event.ID, creator.ID)
	if err != nil {
		t.Fatalf("bekleme listesi okunamadı: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("kalan kayıt sayısı = %d, beklenen 1", len(remaining))
	}
	if remaining[0].UserID != fourth.ID || remaining[0].Position != 2 {
		t.Errorf("kalan kayıt yeniden numaralandırılmamalıydı: %+v", remaining[0])
	}
}

// Bekleme listesi kapalı dolu etkinlikte LCV yerel olarak reddedilir ve
// hiçbir satır yazılmaz.
func TestSubmitRSVPRejectWritesNothing(t *testing.T) {
	db := setupIntegrationDB(t)
	creator := createIntegrationUser(t, db, "kurucu")
	event := createCapacityEvent(t, db, creator.ID, 1, false)
	svc := NewRSVPService()
	ctx := context.Background()

	occupant := createIntegrationUser(t, db, "ilk")
	if _, err := svc.SubmitRSVP(ctx, event.ID, occupant.ID, models.RSVPStatusGoing); err != nil {
		t.Fatalf("kapasite altındaki LCV başarısız oldu: %v", err)
	}

	late := createIntegrationUser(t, db, "geciken")
	if _, err := svc.SubmitRSVP(ctx, event.ID, late.ID, models.RSVPStatusGoing); !errors.Is(err, ErrRSVPEventFull) {
		t.Fatalf("dolu etkinlik hatası = %v, beklenen %v", err, ErrRSVPEventFull)
	}

	var rsvpCount, waitlistCount int64
	db.Model(&models.EventRSVP{}).Where("event_id = ? AND user_id = ?", event.ID, late.ID).Count(&rsvpCount)
	db.Model(&models.EventWaitlistEntry{}).Where("event_id = ?", event.ID).Count(&waitlistCount)
	if rsvpCount != 0 || waitlistCount != 0 {
		t.Errorf("ret sonrası satır yazılmamalıydı: rsvp=%d, bekleme=%d", rsvpCount, waitlistCount)
	}
}
