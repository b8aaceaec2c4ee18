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

// IChannelMessageRepository kanal mesajları için arayüz.
type IChannelMessageRepository interface {
	Create(ctx context.Context, message *models.ChannelMessage) error
	FindByID(ctx context.Context, id uint) (*models.ChannelMessage, error)
	FindByChannelID(ctx context.Context, channelID uint, limit, beforeID int) ([]models.ChannelMessage, error)
	Delete(ctx context.Context, message *models.ChannelMessage, deletedByUserID uint) error
}

type ChannelMessageRepository struct {
	db *gorm.DB
}

func NewChannelMessageRepository() IChannelMessageRepository {
	return &ChannelMessageRepository{db: configs.GetDB()}
}

func (r *ChannelMessageRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ChannelMessageRepository) Create(ctx context.Context, message *models.ChannelMessage) error {
	if message == nil || message.ChannelID == 0 || message.UserID == 0 || message.Content == "" {
		return errors.New("geçersiz mesaj verisi")
	}
	return r.getDB(ctx).Create(message).Error
}

func (r *ChannelMessageRepository) FindByID(ctx context.Context, id uint) (*models.ChannelMessage, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Message ID")
	}
	var message models.ChannelMessage
	err := r.getDB(ctx).First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ChannelMessageRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &message, nil
}

// FindByChannelID mesajları created_at artan sırada getirir. beforeID verilirse
// ondan eski mesajlar döner (yukarı kaydırarak geçmişe gitme).
func (r *ChannelMessageRepository) FindByChannelID(ctx context.Context, channelID uint, limit, beforeID int) ([]models.ChannelMessage, error) {
	if channelID == 0 {
		return nil, errors.New("geçersiz Channel ID")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := r.getDB(ctx).Where("channel_id = ?", channelID).Preload("User.Profile")
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}

	// Son N mesaj alınır, gösterim için eskiden yeniye çevrilir.
	var messages []models.ChannelMessage
	err := query.Order("created_at desc").Limit(limit).Find(&messages).Error
	if err != nil {
		configslog.Log.Error("ChannelMessageRepository.FindByChannelID: DB error", zap.Uint("channelID", channelID), zap.Error(err))
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Delete mesajı soft delete'ler; silen kullanıcı kaydedilir.
func (r *ChannelMessageRepository) Delete(ctx context.Context, message *models.ChannelMessage, deletedByUserID uint) error {
	if message == nil || message.ID == 0 {
		return errors.New("silinecek mesaj geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(message).Where("id = ? AND deleted_at IS NULL", message.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("ChannelMessageRepository.Delete: DB error", zap.Uint("id", message.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var _ IChannelMessageRepository = (*ChannelMessageRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewChannelMessageRepositoryTx(tx *gorm.DB) IChannelMessageRepository {
	return &ChannelMessageRepository{db: tx}
}
