package repositories

import (
	"context"
	"errors"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventInvitationRepository etkinlik davetleri (kullanıcı ve bölüm) için arayüz.
type IEventInvitationRepository interface {
	Create(ctx context.Context, invite *models.EventInvitation) error
	FindByID(ctx context.Context, id uint) (*models.EventInvitation, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventInvitation, error)
	FindPendingByUserID(ctx context.Context, userID uint) ([]models.EventInvitation, error)
	UpdateStatus(ctx context.Context, id uint, status models.InviteStatus) error
	CreateSectionInvite(ctx context.Context, invite *models.EventSectionInvite) error
	FindSectionInvitesByEventID(ctx context.Context, eventID uint) ([]models.EventSectionInvite, error)
}

type EventInvitationRepository struct {
	db *gorm.DB
}

func NewEventInvitationRepository() IEventInvitationRepository {
	return &EventInvitationRepository{db: configs.GetDB()}
}

func (r *EventInvitationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *EventInvitationRepository) Create(ctx context.Context, invite *models.EventInvitation) error {
	if invite == nil || invite.EventID == 0 || invite.UserID == 0 {
		return errors.New("geçersiz etkinlik daveti")
	}
	return r.getDB(ctx).Create(invite).Error
}

func (r *EventInvitationRepository) FindByID(ctx context.Context, id uint) (*models.EventInvitation, error) {
	if id == 0 {
		return nil, errors.New("geçersiz davet ID")
	}
	var invite models.EventInvitation
	err := r.getDB(ctx).Preload("Event").First(&invite, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventInvitationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &invite, nil
}

func (r *EventInvitationRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventInvitation, error) {
	if eventID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var invite models.EventInvitation
	err := r.getDB(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventInvitationRepository.FindByEventAndUser: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &invite, nil
}

func (r *EventInvitationRepository) FindPendingByUserID(ctx context.Context, userID uint) ([]models.EventInvitation, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var invites []models.EventInvitation
	err := r.getDB(ctx).
		Where("user_id = ? AND status = ?", userID, models.InviteStatusPending).
		Preload("Event").
		Order("created_at desc").
		Find(&invites).Error
	if err != nil {
		configslog.Log.Error("EventInvitationRepository.FindPendingByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return invites, nil
}

func (r *EventInvitationRepository) UpdateStatus(ctx context.Context, id uint, status models.InviteStatus) error {
	if id == 0 {
		return errors.New("geçersiz davet ID")
	}
	result := r.getDB(ctx).Model(&models.EventInvitation{}).
		Where("id = ? AND status = ?", id, models.InviteStatusPending).
		Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("EventInvitationRepository.UpdateStatus: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound // Davet yok veya zaten yanıtlanmış
	}
	return nil
}

func (r *EventInvitationRepository) CreateSectionInvite(ctx context.Context, invite *models.EventSectionInvite) error {
	if invite == nil || invite.EventID == 0 || invite.SectionID == 0 {
		return errors.New("geçersiz bölüm daveti")
	}
	return r.getDB(ctx).Create(invite).Error
}

func (r *EventInvitationRepository) FindSectionInvitesByEventID(ctx context.Context, eventID uint) ([]models.EventSectionInvite, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var invites []models.EventSectionInvite
	err := r.getDB(ctx).Where("event_id = ?", eventID).Preload("Section").Find(&invites).Error
	if err != nil {
		configslog.Log.Error("EventInvitationRepository.FindSectionInvitesByEventID: DB error",
			zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return invites, nil
}

var _ IEventInvitationRepository = (*EventInvitationRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewEventInvitationRepositoryTx(tx *gorm.DB) IEventInvitationRepository {
	return &EventInvitationRepository{db: tx}
}
