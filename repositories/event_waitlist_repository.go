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

// IEventWaitlistRepository bekleme listesi veritabanı işlemleri için arayüz.
type IEventWaitlistRepository interface {
	Create(ctx context.Context, entry *models.EventWaitlistEntry) error
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventWaitlistEntry, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.EventWaitlistEntry, error)
	MaxPosition(ctx context.Context, eventID uint) (int, error)
	Count(ctx context.Context, eventID uint) (int64, error)
	Delete(ctx context.Context, eventID, userID uint) error
}

type EventWaitlistRepository struct {
	db *gorm.DB
}

func NewEventWaitlistRepository() IEventWaitlistRepository {
	return &EventWaitlistRepository{db: configs.GetDB()}
}

func (r *EventWaitlistRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *EventWaitlistRepository) Create(ctx context.Context, entry *models.EventWaitlistEntry) error {
	if entry == nil || entry.EventID == 0 || entry.UserID == 0 || entry.Position < 1 {
		return errors.New("geçersiz bekleme listesi kaydı")
	}
	return r.getDB(ctx).Create(entry).Error
}

func (r *EventWaitlistRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventWaitlistEntry, error) {
	if eventID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var entry models.EventWaitlistEntry
	err := r.getDB(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventWaitlistRepository.FindByEventAndUser: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

// FindByEventID listeyi pozisyona göre artan sırada getirir; silinen kayıtların
// bıraktığı numara boşlukları sıralamayı bozmaz.
func (r *EventWaitlistRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.EventWaitlistEntry, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var entries []models.EventWaitlistEntry
	err := r.getDB(ctx).Where("event_id = ?", eventID).
		Preload("User.Profile").
		Order("position asc").
		Find(&entries).Error
	if err != nil {
		configslog.Log.Error("EventWaitlistRepository.FindByEventID: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// MaxPosition etkinlikteki en büyük pozisyonu döndürür (liste boşsa 0).
// Yeni pozisyon ataması için kilitli transaction içinden çağrılmalıdır.
func (r *EventWaitlistRepository) MaxPosition(ctx context.Context, eventID uint) (int, error) {
	if eventID == 0 {
		return 0, errors.New("geçersiz Event ID")
	}
	var max int
	err := r.getDB(ctx).Model(&models.EventWaitlistEntry{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

func (r *EventWaitlistRepository) Count(ctx context.Context, eventID uint) (int64, error) {
	if eventID == 0 {
		return 0, errors.New("geçersiz Event ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.EventWaitlistEntry{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// Delete listeden ayrılmadır: satır kalıcı silinir, kalan pozisyonlar yeniden
// numaralandırılmaz.
func (r *EventWaitlistRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if eventID == 0 || userID == 0 {
		return errors.New("geçersiz ID")
	}
	result := r.getDB(ctx).Unscoped().
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventWaitlistEntry{})
	if result.Error != nil {
		configslog.Log.Error("EventWaitlistRepository.Delete: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IEventWaitlistRepository = (*EventWaitlistRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewEventWaitlistRepositoryTx(tx *gorm.DB) IEventWaitlistRepository {
	return &EventWaitlistRepository{db: tx}
}
