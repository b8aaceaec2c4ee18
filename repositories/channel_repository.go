package repositories

import (
	"context"
	"errors"
	"time"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IChannelRepository kanal veritabanı işlemleri için arayüz.
type IChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	FindByID(ctx context.Context, id uint) (*models.Channel, error)
	FindAllForUser(ctx context.Context, userID uint) ([]models.Channel, error)
	FindBySectionID(ctx context.Context, sectionID uint) ([]models.Channel, error)
	Delete(ctx context.Context, channel *models.Channel, deletedByUserID uint) error

	AddMember(ctx context.Context, member *models.ChannelMember) error
	RemoveMember(ctx context.Context, channelID, userID uint) error
	IsMember(ctx context.Context, channelID, userID uint) (bool, error)
	FindCategories(ctx context.Context) ([]models.ChannelCategory, error)
}

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository() IChannelRepository {
	return &ChannelRepository{db: configs.GetDB()}
}

func (r *ChannelRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ChannelRepository) Create(ctx context.Context, channel *models.Channel) error {
	if channel == nil || channel.Name == "" {
		return errors.New("geçersiz kanal verisi")
	}
	if channel.SectionID != nil && channel.EventID != nil {
		return errors.New("kanal aynı anda hem bölüme hem etkinliğe bağlanamaz")
	}
	return r.getDB(ctx).Create(channel).Error
}

func (r *ChannelRepository) FindByID(ctx context.Context, id uint) (*models.Channel, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Channel ID")
	}
	var channel models.Channel
	err := r.getDB(ctx).Preload("Category").First(&channel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ChannelRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &channel, nil
}

// FindAllForUser kullanıcının üyesi olduğu kanalları getirir.
func (r *ChannelRepository) FindAllForUser(ctx context.Context, userID uint) ([]models.Channel, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var channels []models.Channel
	err := r.getDB(ctx).
		Joins("JOIN channel_members ON channel_members.channel_id = channels.id").
		Where("channel_members.user_id = ? AND channel_members.deleted_at IS NULL", userID).
		Preload("Category").
		Find(&channels).Error
	if err != nil {
		configslog.Log.Error("ChannelRepository.FindAllForUser: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) FindBySectionID(ctx context.Context, sectionID uint) ([]models.Channel, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var channels []models.Channel
	err := r.getDB(ctx).Where("section_id = ?", sectionID).Preload("Category").Find(&channels).Error
	if err != nil {
		configslog.Log.Error("ChannelRepository.FindBySectionID: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) Delete(ctx context.Context, channel *models.Channel, deletedByUserID uint) error {
	if channel == nil || channel.ID == 0 {
		return errors.New("silinecek kanal geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(channel).Where("id = ? AND deleted_at IS NULL", channel.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("ChannelRepository.Delete: DB error", zap.Uint("id", channel.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ChannelRepository) AddMember(ctx context.Context, member *models.ChannelMember) error {
	if member == nil || member.ChannelID == 0 || member.UserID == 0 {
		return errors.New("geçersiz kanal üyeliği")
	}
	db := r.getDB(ctx)
	// Yeniden katılma: aynı çift için kayıt varsa dokunma, yoksa oluştur.
	return db.Where(models.ChannelMember{
		ChannelID: member.ChannelID,
		UserID:    member.UserID,
	}).FirstOrCreate(member).Error
}

func (r *ChannelRepository) RemoveMember(ctx context.Context, channelID, userID uint) error {
	if channelID == 0 || userID == 0 {
		return errors.New("geçersiz ID")
	}
	result := r.getDB(ctx).Unscoped().
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&models.ChannelMember{})
	if result.Error != nil {
		configslog.Log.Error("ChannelRepository.RemoveMember: DB error",
			zap.Uint("channelID", channelID), zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChannelRepository) IsMember(ctx context.Context, channelID, userID uint) (bool, error) {
	if channelID == 0 || userID == 0 {
		return false, errors.New("geçersiz ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ChannelRepository) FindCategories(ctx context.Context) ([]models.ChannelCategory, error) {
	var categories []models.ChannelCategory
	err := r.getDB(ctx).Order("sort_order asc").Find(&categories).Error
	if err != nil {
		configslog.Log.Error("ChannelRepository.FindCategories: DB error", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

var _ IChannelRepository = (*ChannelRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewChannelRepositoryTx(tx *gorm.DB) IChannelRepository {
	return &ChannelRepository{db: tx}
}
