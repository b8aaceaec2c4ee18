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

// IEventRSVPRepository LCV veritabanı işlemleri için arayüz.
type IEventRSVPRepository interface {
	CreateOrUpdate(ctx context.Context, rsvp *models.EventRSVP) error // Varsa günceller, yoksa oluşturur
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventRSVP, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.EventRSVP, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.EventRSVP, error)
	CountGoing(ctx context.Context, eventID uint) (int64, error)
	CountByStatus(ctx context.Context, eventID uint) (map[models.RSVPStatus]int64, error)
	Delete(ctx context.Context, eventID, userID uint) error
}

type EventRSVPRepository struct {
	db *gorm.DB
}

func NewEventRSVPRepository() IEventRSVPRepository {
	return &EventRSVPRepository{db: configs.GetDB()}
}

func (r *EventRSVPRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// CreateOrUpdate (event_id, user_id) çifti için upsert yapar: kayıt varsa
// durumu ezilir, yoksa oluşturulur.
func (r *EventRSVPRepository) CreateOrUpdate(ctx context.Context, rsvp *models.EventRSVP) error {
	if rsvp == nil || rsvp.EventID == 0 || rsvp.UserID == 0 {
		return errors.New("geçersiz LCV verisi (EventID veya UserID eksik)")
	}
	db := r.getDB(ctx)
	return db.Where(models.EventRSVP{
		EventID: rsvp.EventID,
		UserID:  rsvp.UserID,
	}).Assign(models.EventRSVP{
		Status:      rsvp.Status,
		RespondedAt: rsvp.RespondedAt,
	}).FirstOrCreate(rsvp).Error
}

func (r *EventRSVPRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventRSVP, error) {
	if eventID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var rsvp models.EventRSVP
	err := r.getDB(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRSVPRepository.FindByEventAndUser: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &rsvp, nil
}

// FindByEventID bir etkinliğin tüm LCV kayıtlarını kullanıcı profilleriyle getirir.
func (r *EventRSVPRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.EventRSVP, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var rsvps []models.EventRSVP
	err := r.getDB(ctx).Where("event_id = ?", eventID).
		Preload("User.Profile").
		Order("created_at asc").
		Find(&rsvps).Error
	if err != nil {
		configslog.Log.Error("EventRSVPRepository.FindByEventID: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

func (r *EventRSVPRepository) FindByUserID(ctx context.Context, userID uint) ([]models.EventRSVP, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var rsvps []models.EventRSVP
	err := r.getDB(ctx).Where("user_id = ?", userID).
		Preload("Event").
		Order("created_at desc").
		Find(&rsvps).Error
	if err != nil {
		configslog.Log.Error("EventRSVPRepository.FindByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

// CountGoing "going" durumundaki kayıt sayısını döndürür. Kapasite kontrolü
// için transaction içinden (kilitli) çağrılmalıdır.
func (r *EventRSVPRepository) CountGoing(ctx context.Context, eventID uint) (int64, error) {
	if eventID == 0 {
		return 0, errors.New("geçersiz Event ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.EventRSVP{}).
		Where("event_id = ? AND status = ?", eventID, models.RSVPStatusGoing).
		Count(&count).Error
	return count, err
}

func (r *EventRSVPRepository) CountByStatus(ctx context.Context, eventID uint) (map[models.RSVPStatus]int64, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	type row struct {
		Status models.RSVPStatus
		Count  int64
	}
	var rows []row
	err := r.getDB(ctx).Model(&models.EventRSVP{}).
		Select("status, count(*) as count").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("EventRSVPRepository.CountByStatus: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	counts := make(map[models.RSVPStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// Delete LCV kaydını kalıcı siler (LCV geri çekme soft delete gerektirmez;
// aynı çift yeniden LCV verebilmelidir).
func (r *EventRSVPRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if eventID == 0 || userID == 0 {
		return errors.New("geçersiz ID")
	}
	result := r.getDB(ctx).Unscoped().
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventRSVP{})
	if result.Error != nil {
		configslog.Log.Error("EventRSVPRepository.Delete: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IEventRSVPRepository = (*EventRSVPRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewEventRSVPRepositoryTx(tx *gorm.DB) IEventRSVPRepository {
	return &EventRSVPRepository{db: tx}
}
