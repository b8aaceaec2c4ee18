package services

import (
	"testing"
	"time"

	"topluluk.link/models"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestResolveStatus(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event models.Event
		want  models.EventStatus
	}{
		{
			name:  "yazar durumu her zaman kazanır: cancelled",
			event: models.Event{Published: true, Status: models.EventStatusCancelled, StartsAt: timePtr(now.Add(time.Hour))},
			want:  models.EventStatusCancelled,
		},
		{
			name:  "yazar durumu her zaman kazanır: postponed gelecek tarihli olsa bile",
			event: models.Event{Published: true, Status: models.EventStatusPostponed, StartsAt: timePtr(now.Add(48 * time.Hour))},
			want:  models.EventStatusPostponed,
		},
		{
			name:  "yayınlanmamış etkinlik taslaktır",
			event: models.Event{Published: false, Status: models.EventStatusScheduled, StartsAt: timePtr(now.Add(time.Hour))},
			want:  models.EventStatusDraft,
		},
		{
			name:  "gelecekteki yayınlanmış etkinlik scheduled",
			event: models.Event{Published: true, Status: models.EventStatusScheduled, StartsAt: timePtr(now.Add(2 * time.Hour))},
			want:  models.EventStatusScheduled,
		},
		{
			name: "LCV son tarihi geçti, etkinlik başlamadı: pending",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt:     timePtr(now.Add(2 * time.Hour)),
				RSVPDeadline: timePtr(now.Add(-time.Hour)),
			},
			want: models.EventStatusPending,
		},
		{
			name: "başladı, bitiş saatine kadar live",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt: timePtr(now.Add(-time.Hour)),
				EndsAt:   timePtr(now.Add(time.Hour)),
			},
			want: models.EventStatusLive,
		},
		{
			name: "bitiş saati yoksa başlangıçtan 24 saat boyunca live",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt: timePtr(now.Add(-23 * time.Hour)),
			},
			want: models.EventStatusLive,
		},
		{
			name: "bitiş saati yoksa 24 saat sonra completed",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt: timePtr(now.Add(-25 * time.Hour)),
			},
			want: models.EventStatusCompleted,
		},
		{
			name: "bitiş saati geçmiş: completed",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt: timePtr(now.Add(-3 * time.Hour)),
				EndsAt:   timePtr(now.Add(-time.Hour)),
			},
			want: models.EventStatusCompleted,
		},
		{
			name:  "eski kayıt: başlangıç yok, saklanan durum korunur",
			event: models.Event{Published: true, Status: models.EventStatusActive},
			want:  models.EventStatusActive,
		},
		{
			name:  "eski kayıt: durum da yoksa scheduled kabul edilir",
			event: models.Event{Published: true},
			want:  models.EventStatusScheduled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(&tt.event, now)
			if got != tt.want {
				t.Errorf("ResolveStatus() = %q, beklenen %q", got, tt.want)
			}
		})
	}
}

func TestCanRSVP(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event models.Event
		want  bool
	}{
		{
			name:  "scheduled etkinlik LCV kabul eder",
			event: models.Event{Published: true, Status: models.EventStatusScheduled, StartsAt: timePtr(now.Add(time.Hour))},
			want:  true,
		},
		{
			name:  "taslak LCV kabul etmez",
			event: models.Event{Published: false, StartsAt: timePtr(now.Add(time.Hour))},
			want:  false,
		},
		{
			name:  "iptal edilen LCV kabul etmez",
			event: models.Event{Published: true, Status: models.EventStatusCancelled, StartsAt: timePtr(now.Add(time.Hour))},
			want:  false,
		},
		{
			name:  "ertelenen LCV kabul etmez",
			event: models.Event{Published: true, Status: models.EventStatusPostponed, StartsAt: timePtr(now.Add(time.Hour))},
			want:  false,
		},
		{
			name: "son tarihi geçen (pending) LCV kabul etmez",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt:     timePtr(now.Add(time.Hour)),
				RSVPDeadline: timePtr(now.Add(-time.Minute)),
			},
			want: false,
		},
		{
			name: "başlamış (live) etkinlik LCV kabul etmez",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt: timePtr(now.Add(-time.Hour)),
				EndsAt:   timePtr(now.Add(time.Hour)),
			},
			want: false,
		},
		{
			name: "bitmiş etkinlik LCV kabul etmez",
			event: models.Event{
				Published: true, Status: models.EventStatusScheduled,
				StartsAt: timePtr(now.Add(-4 * time.Hour)),
				EndsAt:   timePtr(now.Add(-2 * time.Hour)),
			},
			want: false,
		},
		{
			name:  "durumu ve başlangıcı olmayan eski kayıt her zaman kabul eder",
			event: models.Event{Published: true},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanRSVP(&tt.event, now)
			if got != tt.want {
				t.Errorf("CanRSVP() = %t, beklenen %t", got, tt.want)
			}
		})
	}
}

func TestDecideRSVP(t *testing.T) {
	tests := []struct {
		name       string
		event      models.Event
		goingCount int64
		desired    models.RSVPStatus
		want       RSVPAction
	}{
		{
			name:    "kapasite tanımsızsa her zaman doğrudan kayıt",
			event:   models.Event{},
			desired: models.RSVPStatusGoing,
			want:    RSVPActionApply,
		},
		{
			name:       "kapasite altında doğrudan kayıt",
			event:      models.Event{MaxCapacity: intPtr(10)},
			goingCount: 9,
			desired:    models.RSVPStatusGoing,
			want:       RSVPActionApply,
		},
		{
			name:       "kapasite dolu ve bekleme listesi açık: listeye",
			event:      models.Event{MaxCapacity: intPtr(2), WaitlistEnabled: true},
			goingCount: 2,
			desired:    models.RSVPStatusGoing,
			want:       RSVPActionWaitlist,
		},
		{
			name:       "kapasite dolu ve bekleme listesi kapalı: ret",
			event:      models.Event{MaxCapacity: intPtr(2)},
			goingCount: 2,
			desired:    models.RSVPStatusGoing,
			want:       RSVPActionReject,
		},
		{
			name:       "maybe kapasiteden bağımsız doğrudan kayıt",
			event:      models.Event{MaxCapacity: intPtr(1)},
			goingCount: 5,
			desired:    models.RSVPStatusMaybe,
			want:       RSVPActionApply,
		},
		{
			name:       "not_going kapasiteden bağımsız doğrudan kayıt",
			event:      models.Event{MaxCapacity: intPtr(1)},
			goingCount: 5,
			desired:    models.RSVPStatusNotGoing,
			want:       RSVPActionApply,
		},
		{
			name:       "kapasite aşılmışsa da (eski veri) liste açıkken listeye",
			event:      models.Event{MaxCapacity: intPtr(2), WaitlistEnabled: true},
			goingCount: 5,
			desired:    models.RSVPStatusGoing,
			want:       RSVPActionWaitlist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideRSVP(&tt.event, tt.goingCount, tt.desired)
			if got != tt.want {
				t.Errorf("DecideRSVP() = %d, beklenen %d", got, tt.want)
			}
		})
	}
}
