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

// IProfileRepository profil veritabanı işlemleri için arayüz.
type IProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdatePictureURL(ctx context.Context, userID uint, url string) error
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository() IProfileRepository {
	return &ProfileRepository{db: configs.GetDB()}
}

func (r *ProfileRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var profile models.Profile
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ProfileRepository.FindByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if profile == nil || profile.ID == 0 {
		return errors.New("güncellenecek profil geçerli değil")
	}
	return r.getDB(ctx).Save(profile).Error
}

// UpdatePictureURL sadece profil fotoğrafı sütununu günceller (yükleme sonrası).
func (r *ProfileRepository) UpdatePictureURL(ctx context.Context, userID uint, url string) error {
	if userID == 0 {
		return errors.New("geçersiz User ID")
	}
	result := r.getDB(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("profile_picture_url", url)
	if result.Error != nil {
		configslog.Log.Error("ProfileRepository.UpdatePictureURL: DB error", zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepositoryTx(tx *gorm.DB) IProfileRepository {
	return &ProfileRepository{db: tx}
}
