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

// ISectionInvitationRepository bölüm davetleri için arayüz.
type ISectionInvitationRepository interface {
	Create(ctx context.Context, invite *models.SectionInvitation) error
	FindByID(ctx context.Context, id uint) (*models.SectionInvitation, error)
	FindBySectionAndUser(ctx context.Context, sectionID, userID uint) (*models.SectionInvitation, error)
	FindPendingByUserID(ctx context.Context, userID uint) ([]models.SectionInvitation, error)
	UpdateStatus(ctx context.Context, id uint, status models.InviteStatus) error
}

type SectionInvitationRepository struct {
	db *gorm.DB
}

func NewSectionInvitationRepository() ISectionInvitationRepository {
	return &SectionInvitationRepository{db: configs.GetDB()}
}

func (r *SectionInvitationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *SectionInvitationRepository) Create(ctx context.Context, invite *models.SectionInvitation) error {
	if invite == nil || invite.SectionID == 0 || invite.UserID == 0 {
		return errors.New("geçersiz bölüm daveti")
	}
	return r.getDB(ctx).Create(invite).Error
}

func (r *SectionInvitationRepository) FindByID(ctx context.Context, id uint) (*models.SectionInvitation, error) {
	if id == 0 {
		return nil, errors.New("geçersiz davet ID")
	}
	var invite models.SectionInvitation
	err := r.getDB(ctx).Preload("Section").First(&invite, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SectionInvitationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &invite, nil
}

func (r *SectionInvitationRepository) FindBySectionAndUser(ctx context.Context, sectionID, userID uint) (*models.SectionInvitation, error) {
	if sectionID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var invite models.SectionInvitation
	err := r.getDB(ctx).Where("section_id = ? AND user_id = ?", sectionID, userID).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SectionInvitationRepository.FindBySectionAndUser: DB error",
			zap.Uint("sectionID", sectionID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &invite, nil
}

func (r *SectionInvitationRepository) FindPendingByUserID(ctx context.Context, userID uint) ([]models.SectionInvitation, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var invites []models.SectionInvitation
	err := r.getDB(ctx).
		Where("user_id = ? AND status = ?", userID, models.InviteStatusPending).
		Preload("Section").
		Order("created_at desc").
		Find(&invites).Error
	if err != nil {
		configslog.Log.Error("SectionInvitationRepository.FindPendingByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return invites, nil
}

// UpdateStatus sadece hâlâ beklemede olan daveti günceller; yanıtlanmış davet
// için ErrNotFound döner.
func (r *SectionInvitationRepository) UpdateStatus(ctx context.Context, id uint, status models.InviteStatus) error {
	if id == 0 {
		return errors.New("geçersiz davet ID")
	}
	result := r.getDB(ctx).Model(&models.SectionInvitation{}).
		Where("id = ? AND status = ?", id, models.InviteStatusPending).
		Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("SectionInvitationRepository.UpdateStatus: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ISectionInvitationRepository = (*SectionInvitationRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewSectionInvitationRepositoryTx(tx *gorm.DB) ISectionInvitationRepository {
	return &SectionInvitationRepository{db: tx}
}
