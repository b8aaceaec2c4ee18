package services

import (
	"context"
	"errors"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/repositories"

	"go.uber.org/zap"
)

// SectionInvitationServiceError özel servis hataları
type SectionInvitationServiceError string

func (e SectionInvitationServiceError) Error() string { return string(e) }

const (
	ErrSectionInviteNotFound      SectionInvitationServiceError = "bölüm daveti bulunamadı"
	ErrSectionInviteExists        SectionInvitationServiceError = "kullanıcı zaten davet edilmiş"
	ErrSectionInviteNotYours      SectionInvitationServiceError = "bu davet size ait değil"
	ErrSectionInviteAlreadyClosed SectionInvitationServiceError = "davet zaten yanıtlanmış"
)

// ISectionInvitationService bölüm davetleri için arayüz.
type ISectionInvitationService interface {
	InviteUser(ctx context.Context, sectionID, targetUserID, invitedBy uint, message string) (*models.SectionInvitation, error)
	RespondToInvite(ctx context.Context, inviteID, userID uint, accept bool) error
	GetPendingInvitesForUser(ctx context.Context, userID uint) ([]models.SectionInvitation, error)
}

type SectionInvitationService struct {
	repo           repositories.ISectionInvitationRepository
	memberRepo     repositories.ISectionMemberRepository
	sectionService ISectionService
	userService    IUserService
	mailService    IMailService
}

func NewSectionInvitationService() ISectionInvitationService {
	return &SectionInvitationService{
		repo:           repositories.NewSectionInvitationRepository(),
		memberRepo:     repositories.NewSectionMemberRepository(),
		sectionService: NewSectionService(),
		userService:    NewUserService(),
		mailService:    NewMailService(),
	}
}

// InviteUser bir kullanıcıyı bölüme davet eder (yalnızca yönetici). Davet
// e-postası en iyi çaba ile gönderilir.
func (s *SectionInvitationService) InviteUser(ctx context.Context, sectionID, targetUserID, invitedBy uint, message string) (*models.SectionInvitation, error) {
	if !s.sectionService.IsAdmin(ctx, sectionID, invitedBy) {
		return nil, ErrSectionForbidden
	}
	if s.sectionService.IsApprovedMember(ctx, sectionID, targetUserID) {
		return nil, ErrSectionAlreadyMember
	}
	if _, err := s.repo.FindBySectionAndUser(ctx, sectionID, targetUserID); err == nil {
		return nil, ErrSectionInviteExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	target, err := s.userService.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	section, err := s.sectionService.GetSectionByID(ctx, sectionID, invitedBy)
	if err != nil {
		return nil, err
	}

	invite := models.SectionInvitation{
		SectionID: sectionID,
		UserID:    targetUserID,
		InvitedBy: invitedBy,
		Status:    models.InviteStatusPending,
		Message:   message,
	}
	txCtx := models.ContextWithUserID(ctx, invitedBy)
	if err := s.repo.Create(txCtx, &invite); err != nil {
		configslog.Log.Error("SectionInvitation.InviteUser: DB error",
			zap.Uint("sectionID", sectionID), zap.Uint("userID", targetUserID), zap.Error(err))
		return nil, err
	}

	go s.mailService.SendSectionInvite(target.Email, section, message)

	configslog.SLog.Infof("Bölüm daveti gönderildi: bölüm %d -> kullanıcı %d", sectionID, targetUserID)
	return &invite, nil
}

// RespondToInvite daveti yanıtlar. Kabul, onay ayarından bağımsız olarak
// doğrudan onaylı üyelik yazar; davet yöneticiden geldiği için ikinci bir
// onay turu gerekmez.
func (s *SectionInvitationService) RespondToInvite(ctx context.Context, inviteID, userID uint, accept bool) error {
	invite, err := s.repo.FindByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionInviteNotFound
		}
		return err
	}
	if invite.UserID != userID {
		return ErrSectionInviteNotYours
	}
	if invite.Status != models.InviteStatusPending {
		return ErrSectionInviteAlreadyClosed
	}

	status := models.InviteStatusDeclined
	if accept {
		status = models.InviteStatusAccepted
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.repo.UpdateStatus(txCtx, inviteID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSectionInviteAlreadyClosed
		}
		return err
	}
	if !accept {
		return nil
	}

	if existing, err := s.memberRepo.FindBySectionAndUser(txCtx, invite.SectionID, userID); err == nil {
		existing.Status = models.MembershipStatusApproved
		return s.memberRepo.Update(txCtx, existing)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	member := models.SectionMember{
		SectionID: invite.SectionID,
		UserID:    userID,
		Status:    models.MembershipStatusApproved,
	}
	return s.memberRepo.Create(txCtx, &member)
}

func (s *SectionInvitationService) GetPendingInvitesForUser(ctx context.Context, userID uint) ([]models.SectionInvitation, error) {
	return s.repo.FindPendingByUserID(ctx, userID)
}

var _ ISectionInvitationService = (*SectionInvitationService)(nil)
