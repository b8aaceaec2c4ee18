package services

import (
	"context"
	"errors"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/repositories"

	"go.uber.org/zap"
)

// EventInvitationServiceError özel servis hataları
type EventInvitationServiceError string

func (e EventInvitationServiceError) Error() string { return string(e) }

const (
	ErrEventInviteNotFound      EventInvitationServiceError = "etkinlik daveti bulunamadı"
	ErrEventInviteExists        EventInvitationServiceError = "kullanıcı zaten davet edilmiş"
	ErrEventInviteNotYours      EventInvitationServiceError = "bu davet size ait değil"
	ErrEventInviteAlreadyClosed EventInvitationServiceError = "davet zaten yanıtlanmış"
)

// IEventInvitationService etkinlik davetleri için arayüz.
type IEventInvitationService interface {
	InviteUser(ctx context.Context, eventID, targetUserID, invitedBy uint, message string) (*models.EventInvitation, error)
	InviteSection(ctx context.Context, eventID, sectionID, invitedBy uint) (*models.EventSectionInvite, error)
	RespondToInvite(ctx context.Context, inviteID, userID uint, accept bool) (*RSVPResult, error)
	GetPendingInvitesForUser(ctx context.Context, userID uint) ([]models.EventInvitation, error)
	GetSectionInvitesForEvent(ctx context.Context, eventID, requestingUserID uint) ([]models.EventSectionInvite, error)
}

type EventInvitationService struct {
	repo           repositories.IEventInvitationRepository
	eventService   IEventService
	rsvpService    IRSVPService
	sectionService ISectionService
	mailService    IMailService
	userService    IUserService
}

func NewEventInvitationService() IEventInvitationService {
	return &EventInvitationService{
		repo:           repositories.NewEventInvitationRepository(),
		eventService:   NewEventService(),
		rsvpService:    NewRSVPService(),
		sectionService: NewSectionService(),
		mailService:    NewMailService(),
		userService:    NewUserService(),
	}
}

// InviteUser bir kullanıcıyı etkinliğe davet eder. Davet e-postası en iyi
// çaba ile gönderilir; gönderim hatası daveti geri almaz.
func (s *EventInvitationService) InviteUser(ctx context.Context, eventID, targetUserID, invitedBy uint, message string) (*models.EventInvitation, error) {
	event, err := s.eventService.GetEventByID(ctx, eventID, invitedBy)
	if err != nil {
		return nil, err
	}
	if !s.eventService.CanManage(ctx, event, invitedBy) {
		return nil, ErrEventForbidden
	}
	if _, err := s.repo.FindByEventAndUser(ctx, eventID, targetUserID); err == nil {
		return nil, ErrEventInviteExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	target, err := s.userService.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	invite := models.EventInvitation{
		EventID:   eventID,
		UserID:    targetUserID,
		InvitedBy: invitedBy,
		Status:    models.InviteStatusPending,
		Message:   message,
	}
	txCtx := models.ContextWithUserID(ctx, invitedBy)
	if err := s.repo.Create(txCtx, &invite); err != nil {
		configslog.Log.Error("InviteUser: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", targetUserID), zap.Error(err))
		return nil, err
	}

	go s.mailService.SendEventInvite(target.Email, event, message)

	configslog.SLog.Infof("Etkinlik daveti gönderildi: etkinlik %d -> kullanıcı %d", eventID, targetUserID)
	return &invite, nil
}

// InviteSection bölümün tamamını etkinliğe davet eder.
func (s *EventInvitationService) InviteSection(ctx context.Context, eventID, sectionID, invitedBy uint) (*models.EventSectionInvite, error) {
	event, err := s.eventService.GetEventByID(ctx, eventID, invitedBy)
	if err != nil {
		return nil, err
	}
	if !s.eventService.CanManage(ctx, event, invitedBy) {
		return nil, ErrEventForbidden
	}
	if _, err := s.sectionService.GetSectionByID(ctx, sectionID, invitedBy); err != nil {
		return nil, err
	}

	invite := models.EventSectionInvite{
		EventID:   eventID,
		SectionID: sectionID,
		InvitedBy: invitedBy,
		Status:    models.InviteStatusPending,
	}
	txCtx := models.ContextWithUserID(ctx, invitedBy)
	if err := s.repo.CreateSectionInvite(txCtx, &invite); err != nil {
		configslog.Log.Error("InviteSection: DB error", zap.Uint("eventID", eventID), zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return &invite, nil
}

// RespondToInvite daveti yanıtlar. Kabul "going" LCV'sine dönüşür ve kapasite
// kuralı normal LCV akışıyla aynı şekilde uygulanır: yer yoksa davetli de
// bekleme listesine düşer veya reddedilir.
func (s *EventInvitationService) RespondToInvite(ctx context.Context, inviteID, userID uint, accept bool) (*RSVPResult, error) {
	invite, err := s.repo.FindByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventInviteNotFound
		}
		return nil, err
	}
	if invite.UserID != userID {
		return nil, ErrEventInviteNotYours
	}
	if invite.Status != models.InviteStatusPending {
		return nil, ErrEventInviteAlreadyClosed
	}

	txCtx := models.ContextWithUserID(ctx, userID)
	if !accept {
		if err := s.repo.UpdateStatus(txCtx, inviteID, models.InviteStatusDeclined); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrEventInviteAlreadyClosed
			}
			return nil, err
		}
		return nil, nil
	}

	// Önce LCV yazılır: etkinlik doluysa davet beklemede kalır ve kullanıcı
	// daha sonra reddedebilir. Kabul ancak LCV başarılıysa işlenir.
	result, err := s.rsvpService.SubmitRSVP(ctx, invite.EventID, userID, models.RSVPStatusGoing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(txCtx, inviteID, models.InviteStatusAccepted); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventInviteAlreadyClosed
		}
		return nil, err
	}
	return result, nil
}

func (s *EventInvitationService) GetPendingInvitesForUser(ctx context.Context, userID uint) ([]models.EventInvitation, error) {
	return s.repo.FindPendingByUserID(ctx, userID)
}

func (s *EventInvitationService) GetSectionInvitesForEvent(ctx context.Context, eventID, requestingUserID uint) ([]models.EventSectionInvite, error) {
	event, err := s.eventService.GetEventByID(ctx, eventID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !s.eventService.CanManage(ctx, event, requestingUserID) {
		return nil, ErrEventForbidden
	}
	return s.repo.FindSectionInvitesByEventID(ctx, eventID)
}

var _ IEventInvitationService = (*EventInvitationService)(nil)
