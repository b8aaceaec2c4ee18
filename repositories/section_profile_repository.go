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

// ISectionProfileRepository bölüme özel profil soruları ve cevapları için arayüz.
type ISectionProfileRepository interface {
	CreateField(ctx context.Context, field *models.SectionProfileField) error
	FindFieldsBySectionID(ctx context.Context, sectionID uint) ([]models.SectionProfileField, error)
	FindFieldByID(ctx context.Context, id uint) (*models.SectionProfileField, error)
	DeleteField(ctx context.Context, fieldID uint) error
	UpsertData(ctx context.Context, data *models.SectionProfileData) error
	FindDataByUser(ctx context.Context, sectionID, userID uint) ([]models.SectionProfileData, error)
}

type SectionProfileRepository struct {
	db *gorm.DB
}

func NewSectionProfileRepository() ISectionProfileRepository {
	return &SectionProfileRepository{db: configs.GetDB()}
}

func (r *SectionProfileRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *SectionProfileRepository) CreateField(ctx context.Context, field *models.SectionProfileField) error {
	if field == nil || field.SectionID == 0 || field.Label == "" {
		return errors.New("geçersiz profil sorusu")
	}
	return r.getDB(ctx).Create(field).Error
}

func (r *SectionProfileRepository) FindFieldsBySectionID(ctx context.Context, sectionID uint) ([]models.SectionProfileField, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var fields []models.SectionProfileField
	err := r.getDB(ctx).Where("section_id = ?", sectionID).Order("sort_order asc, id asc").Find(&fields).Error
	if err != nil {
		configslog.Log.Error("SectionProfileRepository.FindFieldsBySectionID: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return fields, nil
}

func (r *SectionProfileRepository) FindFieldByID(ctx context.Context, id uint) (*models.SectionProfileField, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Field ID")
	}
	var field models.SectionProfileField
	err := r.getDB(ctx).First(&field, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SectionProfileRepository.FindFieldByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &field, nil
}

// DeleteField soruyu ve cevaplarını kalıcı siler.
func (r *SectionProfileRepository) DeleteField(ctx context.Context, fieldID uint) error {
	if fieldID == 0 {
		return errors.New("geçersiz Field ID")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("field_id = ?", fieldID).Delete(&models.SectionProfileData{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.SectionProfileField{}, fieldID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpsertData üyenin cevabını (field_id, user_id) çifti üzerinden upsert eder.
func (r *SectionProfileRepository) UpsertData(ctx context.Context, data *models.SectionProfileData) error {
	if data == nil || data.FieldID == 0 || data.UserID == 0 {
		return errors.New("geçersiz profil cevabı")
	}
	db := r.getDB(ctx)
	return db.Where(models.SectionProfileData{
		FieldID: data.FieldID,
		UserID:  data.UserID,
	}).Assign(models.SectionProfileData{Value: data.Value}).FirstOrCreate(data).Error
}

func (r *SectionProfileRepository) FindDataByUser(ctx context.Context, sectionID, userID uint) ([]models.SectionProfileData, error) {
	if sectionID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var data []models.SectionProfileData
	err := r.getDB(ctx).
		Joins("JOIN section_profile_fields ON section_profile_fields.id = section_profile_data.field_id").
		Where("section_profile_fields.section_id = ? AND section_profile_data.user_id = ?", sectionID, userID).
		Preload("Field").
		Find(&data).Error
	if err != nil {
		configslog.Log.Error("SectionProfileRepository.FindDataByUser: DB error",
			zap.Uint("sectionID", sectionID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return data, nil
}

var _ ISectionProfileRepository = (*SectionProfileRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewSectionProfileRepositoryTx(tx *gorm.DB) ISectionProfileRepository {
	return &SectionProfileRepository{db: tx}
}
