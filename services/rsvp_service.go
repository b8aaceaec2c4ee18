package services

import (
	"context"
	"errors"
	"time"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause" // Lock için
)

// RSVPServiceError özel servis hataları
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPInvalidStatus   RSVPServiceError = "geçersiz LCV durumu"
	ErrRSVPClosed          RSVPServiceError = "bu etkinlik şu anda LCV kabul etmiyor"
	ErrRSVPEventFull       RSVPServiceError = "etkinlik kapasitesi dolu"
	ErrRSVPNotFound        RSVPServiceError = "LCV kaydı bulunamadı"
	ErrRSVPGuestListHidden RSVPServiceError = "katılımcı listesi gizli"
	ErrWaitlistNotFound    RSVPServiceError = "bekleme listesi kaydı bulunamadı"
	ErrWaitlistDisabled    RSVPServiceError = "bu etkinlikte bekleme listesi yok"
)

// RSVPResult LCV isteğinin sonucunu taşır: doğrudan kayıt mı yapıldı,
// bekleme listesine mi alındı.
type RSVPResult struct {
	RSVP             *models.EventRSVP         `json:"rsvp,omitempty"`
	WaitlistEntry    *models.EventWaitlistEntry `json:"waitlist_entry,omitempty"`
	PlacedOnWaitlist bool                       `json:"placed_on_waitlist"`
}

// EventAttendance durum bazında sayımlar ve kullanıcının kendi kaydı.
type EventAttendance struct {
	Counts        map[models.RSVPStatus]int64 `json:"counts"`
	WaitlistCount int64                       `json:"waitlist_count"`
	OwnRSVP       *models.EventRSVP           `json:"own_rsvp,omitempty"`
	OwnWaitlist   *models.EventWaitlistEntry  `json:"own_waitlist,omitempty"`
}

// IRSVPService LCV ve bekleme listesi işlemleri için arayüz.
type IRSVPService interface {
	SubmitRSVP(ctx context.Context, eventID, userID uint, desired models.RSVPStatus) (*RSVPResult, error)
	CancelRSVP(ctx context.Context, eventID, userID uint) error
	GetAttendance(ctx context.Context, eventID, userID uint) (*EventAttendance, error)
	GetGuestList(ctx context.Context, eventID, requestingUserID uint) ([]models.EventRSVP, error)
	GetWaitlist(ctx context.Context, eventID, requestingUserID uint) ([]models.EventWaitlistEntry, error)
	LeaveWaitlist(ctx context.Context, eventID, userID uint) error
	GetRSVPsForUser(ctx context.Context, userID uint) ([]models.EventRSVP, error)
}

type RSVPService struct {
	eventService IEventService
	rsvpRepo     repositories.IEventRSVPRepository
	waitlistRepo repositories.IEventWaitlistRepository
	db           *gorm.DB
}

func NewRSVPService() IRSVPService {
	return &RSVPService{
		eventService: NewEventService(),
		rsvpRepo:     repositories.NewEventRSVPRepository(),
		waitlistRepo: repositories.NewEventWaitlistRepository(),
		db:           configs.GetDB(),
	}
}

// SubmitRSVP LCV verir veya günceller. Kapasite kararı etkinlik satırı
// FOR UPDATE kilitliyken, going sayımı aynı transaction içinde yeniden
// yapılarak verilir; iki istemci aynı son koltuğu alamaz.
func (s *RSVPService) SubmitRSVP(ctx context.Context, eventID, userID uint, desired models.RSVPStatus) (*RSVPResult, error) {
	if !models.ValidRSVPStatus(desired) {
		return nil, ErrRSVPInvalidStatus
	}
	if eventID == 0 || userID == 0 {
		return nil, ErrRSVPInvalidStatus
	}

	var result RSVPResult
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		rsvpRepoTx := repositories.NewEventRSVPRepositoryTx(tx)
		waitlistRepoTx := repositories.NewEventWaitlistRepositoryTx(tx)

		var event models.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if !event.Published || !CanRSVP(&event, now) {
			return ErrRSVPClosed
		}

		goingCount, err := rsvpRepoTx.CountGoing(txCtx, eventID)
		if err != nil {
			return err
		}
		// Mevcut going kaydını güncelleyen kullanıcı kendi koltuğunu saymaz.
		if existing, err := rsvpRepoTx.FindByEventAndUser(txCtx, eventID, userID); err == nil {
			if existing.Status == models.RSVPStatusGoing && goingCount > 0 {
				goingCount--
			}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		switch DecideRSVP(&event, goingCount, desired) {
		case RSVPActionApply:
			rsvp := models.EventRSVP{EventID: eventID, UserID: userID, Status: desired, RespondedAt: &now}
			if err := rsvpRepoTx.CreateOrUpdate(txCtx, &rsvp); err != nil {
				return err
			}
			// Going'den dönen kullanıcı bekleme listesinde olamaz; upsert
			// sonrası olası eski kaydı temizle.
			if err := waitlistRepoTx.Delete(txCtx, eventID, userID); err != nil &&
				!errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			result.RSVP = &rsvp

		case RSVPActionWaitlist:
			if entry, err := waitlistRepoTx.FindByEventAndUser(txCtx, eventID, userID); err == nil {
				// Zaten listede; pozisyon korunur.
				result.WaitlistEntry = entry
				result.PlacedOnWaitlist = true
				return nil
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			maxPos, err := waitlistRepoTx.MaxPosition(txCtx, eventID)
			if err != nil {
				return err
			}
			entry := models.EventWaitlistEntry{EventID: eventID, UserID: userID, Position: maxPos + 1}
			if err := waitlistRepoTx.Create(txCtx, &entry); err != nil {
				return err
			}
			result.WaitlistEntry = &entry
			result.PlacedOnWaitlist = true

		case RSVPActionReject:
			return ErrRSVPEventFull
		}
		return nil
	})

	if txErr != nil {
		if isKnownRSVPError(txErr) {
			return nil, txErr
		}
		configslog.Log.Error("SubmitRSVP transaction failed",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(txErr))
		return nil, txErr
	}
	configslog.SLog.Infof("LCV işlendi: etkinlik %d, kullanıcı %d, durum %s (bekleme: %t)",
		eventID, userID, desired, result.PlacedOnWaitlist)
	return &result, nil
}

func isKnownRSVPError(err error) bool {
	var rsvpErr RSVPServiceError
	var eventErr EventServiceError
	return errors.As(err, &rsvpErr) || errors.As(err, &eventErr)
}

// CancelRSVP kullanıcının LCV kaydını kalıcı siler; aynı çift daha sonra
// yeniden LCV verebilir.
func (s *RSVPService) CancelRSVP(ctx context.Context, eventID, userID uint) error {
	err := s.rsvpRepo.Delete(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRSVPNotFound
		}
		configslog.Log.Error("CancelRSVP: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

// GetAttendance etkinliğin durum bazlı sayımlarını ve istek sahibinin kendi
// kayıtlarını döndürür. Sayımlar liste gizli olsa da görünür.
func (s *RSVPService) GetAttendance(ctx context.Context, eventID, userID uint) (*EventAttendance, error) {
	counts, err := s.rsvpRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}
	waitlistCount, err := s.waitlistRepo.Count(ctx, eventID)
	if err != nil {
		return nil, err
	}
	attendance := &EventAttendance{Counts: counts, WaitlistCount: waitlistCount}
	if userID != 0 {
		if own, err := s.rsvpRepo.FindByEventAndUser(ctx, eventID, userID); err == nil {
			attendance.OwnRSVP = own
		}
		if entry, err := s.waitlistRepo.FindByEventAndUser(ctx, eventID, userID); err == nil {
			attendance.OwnWaitlist = entry
		}
	}
	return attendance, nil
}

// canSeeGuestList katılımcı listesi görünürlük kuralını uygular.
func (s *RSVPService) canSeeGuestList(ctx context.Context, event *models.Event, userID uint) bool {
	switch event.GuestListVisibility {
	case models.GuestListHidden:
		return s.eventService.CanManage(ctx, event, userID)
	case models.GuestListRSVPOnly:
		if s.eventService.CanManage(ctx, event, userID) {
			return true
		}
		if userID == 0 {
			return false
		}
		_, err := s.rsvpRepo.FindByEventAndUser(ctx, event.ID, userID)
		return err == nil
	default: // public
		return true
	}
}

// GetGuestList katılımcıları görünürlük kuralına göre döndürür.
func (s *RSVPService) GetGuestList(ctx context.Context, eventID, requestingUserID uint) ([]models.EventRSVP, error) {
	event, err := s.eventService.GetEventByID(ctx, eventID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !s.canSeeGuestList(ctx, event, requestingUserID) {
		return nil, ErrRSVPGuestListHidden
	}
	return s.rsvpRepo.FindByEventID(ctx, eventID)
}

// GetWaitlist bekleme listesini pozisyon sırasında döndürür; katılımcı listesi
// ile aynı görünürlük kuralına tabidir.
func (s *RSVPService) GetWaitlist(ctx context.Context, eventID, requestingUserID uint) ([]models.EventWaitlistEntry, error) {
	event, err := s.eventService.GetEventByID(ctx, eventID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !event.WaitlistEnabled {
		return nil, ErrWaitlistDisabled
	}
	if !s.canSeeGuestList(ctx, event, requestingUserID) {
		return nil, ErrRSVPGuestListHidden
	}
	return s.waitlistRepo.FindByEventID(ctx, eventID)
}

// LeaveWaitlist kullanıcıyı listeden çıkarır. Kalan pozisyonlar yeniden
// numaralandırılmaz; sıra numaraları atama anındaki yeri gösterir.
func (s *RSVPService) LeaveWaitlist(ctx context.Context, eventID, userID uint) error {
	err := s.waitlistRepo.Delete(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrWaitlistNotFound
		}
		configslog.Log.Error("LeaveWaitlist: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *RSVPService) GetRSVPsForUser(ctx context.Context, userID uint) ([]models.EventRSVP, error) {
	return s.rsvpRepo.FindByUserID(ctx, userID)
}

var _ IRSVPService = (*RSVPService)(nil)
