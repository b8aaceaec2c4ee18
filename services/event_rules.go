package services

import (
	"time"

	"topluluk.link/models"
)

// Bu dosya etkinlik yaşam döngüsü ve LCV/kapasite kurallarının tek yetkili
// yeridir. Eski istemcide bu mantık sayfalara dağılmıştı ve saklanan durum ile
// tarihten türetilen upcoming/past birbirinden kopabiliyordu; burada yazarın
// atadığı durumlar (draft/cancelled/postponed/completed) her zaman kazanır,
// yayınlanmış etkinliğin zaman fazı ise tek fonksiyonda tarihten türetilir.

// ResolveStatus etkinliğin gösterilecek durumunu hesaplar.
func ResolveStatus(event *models.Event, now time.Time) models.EventStatus {
	switch event.Status {
	case models.EventStatusDraft, models.EventStatusCancelled,
		models.EventStatusPostponed, models.EventStatusCompleted:
		return event.Status
	}
	if !event.Published {
		return models.EventStatusDraft
	}

	starts := event.StartsAt
	if starts == nil {
		// Eski kayıt: zaman fazı türetilemez, olduğu gibi "scheduled" kabul edilir.
		if event.Status != "" {
			return event.Status
		}
		return models.EventStatusScheduled
	}

	if event.EndsAt != nil && now.After(*event.EndsAt) {
		return models.EventStatusCompleted
	}
	if !now.Before(*starts) {
		// Başladı; bitiş saati yoksa başlangıçtan 24 saat sonrası bitiş sayılır.
		end := starts.Add(24 * time.Hour)
		if event.EndsAt != nil {
			end = *event.EndsAt
		}
		if now.Before(end) {
			return models.EventStatusLive
		}
		return models.EventStatusCompleted
	}
	if event.RSVPDeadline != nil && now.After(*event.RSVPDeadline) {
		return models.EventStatusPending
	}
	if event.Status == models.EventStatusActive {
		return models.EventStatusActive
	}
	return models.EventStatusScheduled
}

// CanRSVP etkinliğin mevcut durumunda LCV verilebilir mi sorusunu yanıtlar.
// Kapasite kuralları ayrıdır (DecideRSVP); burada yalnızca durum bakılır.
// Durum alanı hiç olmayan eski kayıtlar her zaman LCV kabul eder.
func CanRSVP(event *models.Event, now time.Time) bool {
	if event.Status == "" && event.StartsAt == nil {
		return true // Eski kayıt politikası
	}
	switch ResolveStatus(event, now) {
	case models.EventStatusDraft, models.EventStatusCompleted,
		models.EventStatusCancelled, models.EventStatusPostponed,
		models.EventStatusPending, models.EventStatusLive:
		return false
	}
	return true
}

// RSVPAction LCV isteği için karar sonucudur.
type RSVPAction int

const (
	RSVPActionApply RSVPAction = iota // Doğrudan upsert
	RSVPActionWaitlist                // Bekleme listesine yönlendir
	RSVPActionReject                  // Yerel ret, sunucuya gidilmez
)

// DecideRSVP kapasite kuralını uygular:
//   - going dışındaki durumlar her zaman doğrudan upsert'tir,
//   - kapasite tanımsızsa doğrudan upsert,
//   - doluysa ve bekleme listesi açıksa listeye yönlendirilir,
//   - doluysa ve liste kapalıysa yerel olarak reddedilir.
//
// goingCount çağıranın sorumluluğundadır; yarışsız sonuç için kilitli
// transaction içindeki sayım verilmelidir.
func DecideRSVP(event *models.Event, goingCount int64, desired models.RSVPStatus) RSVPAction {
	if desired != models.RSVPStatusGoing {
		return RSVPActionApply
	}
	if event.MaxCapacity == nil {
		return RSVPActionApply
	}
	if goingCount < int64(*event.MaxCapacity) {
		return RSVPActionApply
	}
	if event.WaitlistEnabled {
		return RSVPActionWaitlist
	}
	return RSVPActionReject
}
