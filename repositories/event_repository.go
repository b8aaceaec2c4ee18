package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/pkg/queryparams"
	"topluluk.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByShareKey(ctx context.Context, key string) (*models.Event, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	FindAllBySectionID(ctx context.Context, sectionID uint) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error
}

type EventRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Event]
}

func NewEventRepository() IEventRepository {
	db := configs.GetDB()
	base := NewBaseRepository[models.Event](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "starts_at", "title", "status"})
	return &EventRepository{db: db, base: base}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.ShareKey == "" {
		return errors.New("paylaşım anahtarı olmayan etkinlik oluşturulamaz")
	}
	return r.getDB(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var event models.Event
	err := r.getDB(ctx).Preload("Section").Preload("Cohosts").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) FindByShareKey(ctx context.Context, key string) (*models.Event, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var event models.Event
	err := r.getDB(ctx).Preload("Section").Where("share_key = ?", key).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByShareKey: DB error", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// applyEventFilters ortak filtreleme ve sıralama mantığını uygular.
func (r *EventRepository) applyEventFilters(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("events.title", params.Name)
		query = query.Where(sqlFragment, args...)
	}
	if params.Status != "" {
		query = query.Where("events.status = ?", params.Status)
	}
	if params.Tag != "" {
		query = query.Where("events.tags ILIKE ?", "%"+params.Tag+"%")
	}

	// upcoming/past sınıflandırması çağrı anındaki "şimdi" ile yapılır.
	// Eski kayıtlarda starts_at boş olabilir; onlar "upcoming" sayılır ve
	// servis katmanı legacy alanlardan normalize ederek eler.
	now := time.Now().UTC()
	switch params.When {
	case "upcoming":
		query = query.Where("events.starts_at IS NULL OR events.starts_at > ?", now)
	case "past":
		query = query.Where("events.starts_at IS NOT NULL AND events.starts_at <= ?", now)
	}

	sortBy := params.SortBy
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	orderColumn := "events.starts_at"
	if r.base.AllowedSortColumn(sortBy) {
		orderColumn = "events." + sortBy
	} else if sortBy != "" {
		configslog.Log.Warn("Geçersiz Event sıralama alanı istendi, varsayılan kullanılıyor.",
			zap.String("requestedSortBy", sortBy))
	}
	return query.Order(orderColumn + " " + orderBy)
}

func (r *EventRepository) findPaginated(ctx context.Context, scope func(*gorm.DB) *gorm.DB, params queryparams.ListParams) ([]models.Event, int64, error) {
	var events []models.Event
	var totalCount int64
	db := r.getDB(ctx)

	query := scope(db.Model(&models.Event{}))
	query = r.applyEventFilters(query, params)

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository.Count: DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	err := query.Preload("Section").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.Find: DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

// FindAllPaginated yayınlanmış ve herkese açık etkinlikleri sayfalayarak bulur.
func (r *EventRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error) {
	return r.findPaginated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("events.published = ? AND events.is_private = ?", true, false)
	}, params)
}

// FindAllByUserIDPaginated kullanıcının oluşturduğu etkinlikleri bulur
// (taslaklar dahil).
func (r *EventRepository) FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("geçersiz User ID")
	}
	return r.findPaginated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("events.created_by_user_id = ?", userID)
	}, params)
}

func (r *EventRepository) FindAllBySectionID(ctx context.Context, sectionID uint) ([]models.Event, error) {
	if sectionID == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var events []models.Event
	err := r.getDB(ctx).
		Where("section_id = ? AND published = ?", sectionID, true).
		Order("starts_at asc").
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindAllBySectionID: DB error", zap.Uint("sectionID", sectionID), zap.Error(err))
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("güncellenecek etkinlik geçerli değil")
	}
	return r.getDB(ctx).Save(event).Error
}

// Delete etkinliği siler (soft delete, silen kullanıcı kaydedilir).
func (r *EventRepository) Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("silinecek etkinlik geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(event).Where("id = ? AND deleted_at IS NULL", event.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("EventRepository.Delete: DB error", zap.Uint("id", event.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var _ IEventRepository = (*EventRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	base := NewBaseRepository[models.Event](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "starts_at", "title", "status"})
	return &EventRepository{db: tx, base: base}
}
