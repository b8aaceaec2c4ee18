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

// ISectionMemberRepository bölüm üyelikleri için arayüz.
type ISectionMemberRepository interface {
	Create(ctx context.Context, member *models.SectionMember) error
	FindBySectionAndUser(ctx context.Context, sectionID, userID uint) (*models.SectionMember, error)
	FindBySectionID(ctx context.Context, sectionID uint, onlyApproved bool) ([]models.SectionMember, error)
	FindPendingBySectionID(ctx context.Context, sectionID uint) ([]models.SectionMember, error)
	Update(ctx context.Context, member *models.SectionMember) error
	Delete(ctx context.Context, sectionID, userID uint) error
	CountApproved(ctx context.Context, sectionID uint) (int64, error)
	SetVisibility(ctx context.Context, sectionID, userID uint, hidden bool) error
	HiddenUserIDs(ctx context.Context, sectionID uint) (map[uint]bool, error)
}

type SectionMemberRepository struct {
	db *gorm.DB
}

func NewSectionMemberRepository() ISectionMemberRepository {
	return &SectionMemberRepository{db: configs.GetDB()}
}

func (r *SectionMemberRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *SectionMemberRepository) Create(ctx context.Context, member *models.SectionMember) error {
	if member == nil || member.SectionID == 0 || member.UserID == 0 {
		return errors.New("geçersiz üyelik verisi")
	}
	return r.getDB(ctx).Create(member).Error
}

func (r *SectionMemberRepository) FindBySectionAndUser(ctx context.Context, sectionID, userID uint) (*models.SectionMember, error) {
	if sectionID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var member models.SectionMember
	err := r.getDB(ctx).Where("section_id = ? AND user_id = ?", sectionID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SectionMemberRepository.FindBySectionAndUser: DB error",
			zap.Uint("sectionID", sectionID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &member, nil
}

func (r *SectionMemberRepository) FindBySectionID(ctx context.Context, sectionID uint, onlyApproved bool) ([]models.SectionMember, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var members []models.SectionMember
	query := r.getDB(ctx).Where("section_id = ?", sectionID).Preload("User.Profile")
	if onlyApproved {
		query = query.Where("status = ?", models.MembershipStatusApproved)
	}
	err := query.Order("created_at asc").Find(&members).Error
	if err != nil {
		configslog.Log.Error("SectionMemberRepository.FindBySectionID: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return members, nil
}

func (r *SectionMemberRepository) FindPendingBySectionID(ctx context.Context, sectionID uint) ([]models.SectionMember, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var members []models.SectionMember
	err := r.getDB(ctx).
		Where("section_id = ? AND status = ?", sectionID, models.MembershipStatusPending).
		Preload("User.Profile").
		Order("created_at asc").
		Find(&members).Error
	if err != nil {
		configslog.Log.Error("SectionMemberRepository.FindPendingBySectionID: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return members, nil
}

func (r *SectionMemberRepository) Update(ctx context.Context, member *models.SectionMember) error {
	if member == nil || member.ID == 0 {
		return errors.New("güncellenecek üyelik geçerli değil")
	}
	return r.getDB(ctx).Save(member).Error
}

// Delete üyeliği kalıcı siler; kullanıcı bölüme yeniden katılabilmelidir
// ((section_id, user_id) tekilliği soft delete satırına takılmamalı).
func (r *SectionMemberRepository) Delete(ctx context.Context, sectionID, userID uint) error {
	if sectionID == 0 || userID == 0 {
		return errors.New("geçersiz ID")
	}
	result := r.getDB(ctx).Unscoped().
		Where("section_id = ? AND user_id = ?", sectionID, userID).
		Delete(&models.SectionMember{})
	if result.Error != nil {
		configslog.Log.Error("SectionMemberRepository.Delete: DB error",
			zap.Uint("sectionID", sectionID), zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SectionMemberRepository) CountApproved(ctx context.Context, sectionID uint) (int64, error) {
	if sectionID == 0 {
		return 0, errors.New("geçersiz Section ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.SectionMember{}).
		Where("section_id = ? AND status = ?", sectionID, models.MembershipStatusApproved).
		Count(&count).Error
	return count, err
}

// SetVisibility üyenin üye listesinde gizlenme tercihini upsert eder.
func (r *SectionMemberRepository) SetVisibility(ctx context.Context, sectionID, userID uint, hidden bool) error {
	if sectionID == 0 || userID == 0 {
		return errors.New("geçersiz ID")
	}
	db := r.getDB(ctx)
	var vis models.SectionMembershipVisibility
	return db.Where(models.SectionMembershipVisibility{
		SectionID: sectionID,
		UserID:    userID,
	}).Assign(models.SectionMembershipVisibility{Hidden: hidden}).FirstOrCreate(&vis).Error
}

// HiddenUserIDs üye listesinden gizlenmeyi seçen kullanıcıları döndürür.
func (r *SectionMemberRepository) HiddenUserIDs(ctx context.Context, sectionID uint) (map[uint]bool, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var rows []models.SectionMembershipVisibility
	err := r.getDB(ctx).Where("section_id = ? AND hidden = ?", sectionID, true).Find(&rows).Error
	if err != nil {
		configslog.Log.Error("SectionMemberRepository.HiddenUserIDs: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	hidden := make(map[uint]bool, len(rows))
	for _, row := range rows {
		hidden[row.UserID] = true
	}
	return hidden, nil
}

var _ ISectionMemberRepository = (*SectionMemberRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewSectionMemberRepositoryTx(tx *gorm.DB) ISectionMemberRepository {
	return &SectionMemberRepository{db: tx}
}
