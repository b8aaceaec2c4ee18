package repositories

import (
	"context"
	"errors"
	"strings"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAvailableForInvite(ctx context.Context, sectionID uint, term string) ([]models.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository() IUserRepository {
	return &UserRepository{db: configs.GetDB()}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return errors.New("geçersiz kullanıcı verisi")
	}
	return r.getDB(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var user models.User
	err := r.getDB(ctx).Preload("Profile").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("geçersiz e-posta")
	}
	var user models.User
	err := r.getDB(ctx).Preload("Profile").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindAvailableForInvite bölüme henüz üye veya davetli olmayan kullanıcıları
// listeler (davet ekranındaki arama kutusu için).
func (r *UserRepository) FindAvailableForInvite(ctx context.Context, sectionID uint, term string) ([]models.User, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var users []models.User
	query := r.getDB(ctx).
		Preload("Profile").
		Where("users.is_system = ?", false).
		Where("users.id NOT IN (?)",
			r.db.Model(&models.SectionMember{}).Select("user_id").Where("section_id = ?", sectionID)).
		Where("users.id NOT IN (?)",
			r.db.Model(&models.SectionInvitation{}).Select("user_id").
				Where("section_id = ? AND status = ?", sectionID, models.InviteStatusPending))
	if term != "" {
		query = query.Where("users.email ILIKE ?", "%"+term+"%")
	}
	err := query.Limit(50).Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindAvailableForInvite: DB error",
			zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return users, nil
}

var _ IUserRepository = (*UserRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx}
}
