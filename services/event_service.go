package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"topluluk.link/configs"
	"topluluk.link/configs/configslog"
	"topluluk.link/models"
	"topluluk.link/pkg/datetime"
	"topluluk.link/pkg/queryparams"
	"topluluk.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause" // Lock için
)

// EventServiceError özel servis hataları
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound        EventServiceError = "etkinlik bulunamadı"
	ErrEventCreationFailed  EventServiceError = "etkinlik oluşturulamadı"
	ErrEventUpdateFailed    EventServiceError = "etkinlik güncellenemedi"
	ErrEventDeletionFailed  EventServiceError = "etkinlik silinemedi"
	ErrEventForbidden       EventServiceError = "bu işlem için yetkiniz yok"
	ErrEventInvalidInput    EventServiceError = "geçersiz girdi verisi"
	ErrEventTitleRequired   EventServiceError = "etkinlik başlığı zorunludur"
	ErrEventTimeRequired    EventServiceError = "etkinlik zamanı zorunludur"
	ErrEventInvalidStatus   EventServiceError = "geçersiz durum geçişi"
	ErrEventNotPublished    EventServiceError = "etkinlik yayında değil"
	ErrEventKeyGenFailed    EventServiceError = "paylaşım anahtarı üretilemedi"
	ErrCohostAlreadyExists  EventServiceError = "kullanıcı zaten ortak ev sahibi"
	ErrCohostNotFound       EventServiceError = "ortak ev sahibi bulunamadı"
)

// IEventService etkinlik işlemleri için arayüz.
type IEventService interface {
	CreateEvent(ctx context.Context, creatorUserID uint, event models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint, requestingUserID uint) (*models.Event, error)
	GetEventByShareKey(ctx context.Context, key string) (*models.Event, error)
	GetPublicEvents(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetEventsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetEventsForSection(ctx context.Context, sectionID uint) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uint, updatingUserID uint, updates models.Event) error
	SetEventStatus(ctx context.Context, id uint, userID uint, status models.EventStatus) error
	DeleteEvent(ctx context.Context, id uint, deletingUserID uint) error
	AddCohost(ctx context.Context, eventID, userID, addedBy uint) error
	RemoveCohost(ctx context.Context, eventID, userID, removedBy uint) error
	CanManage(ctx context.Context, event *models.Event, userID uint) bool
	NormalizedStart(event *models.Event) (time.Time, error)
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	repo        repositories.IEventRepository
	userService IUserService
	db          *gorm.DB // Transaction için
}

// NewEventService yeni bir EventService örneği oluşturur.
func NewEventService() IEventService {
	return &EventService{
		repo:        repositories.NewEventRepository(),
		userService: NewUserService(),
		db:          configs.GetDB(),
	}
}

// ValidateEvent temel validasyonları yapar.
func ValidateEvent(event models.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return ErrEventTitleRequired
	}
	if event.StartsAt == nil && event.LegacyDate == "" {
		return ErrEventTimeRequired
	}
	if event.StartsAt != nil && event.EndsAt != nil && event.EndsAt.Before(*event.StartsAt) {
		return fmt.Errorf("%w: bitiş zamanı başlangıçtan önce olamaz", ErrEventInvalidInput)
	}
	if event.RSVPDeadline != nil && event.StartsAt != nil && event.RSVPDeadline.After(*event.StartsAt) {
		return fmt.Errorf("%w: LCV son tarihi etkinlik başlangıcından sonra olamaz", ErrEventInvalidInput)
	}
	if event.MaxCapacity != nil && *event.MaxCapacity < 1 {
		return fmt.Errorf("%w: kapasite en az 1 olmalıdır", ErrEventInvalidInput)
	}
	switch event.GuestListVisibility {
	case "", models.GuestListPublic, models.GuestListRSVPOnly, models.GuestListHidden:
	default:
		return fmt.Errorf("%w: geçersiz katılımcı listesi görünürlüğü", ErrEventInvalidInput)
	}
	return nil
}

// generateShareKey public sayfa için 11 karakterlik anahtar üretir.
func generateShareKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:11]
}

// NormalizedStart etkinliğin başlangıç anını döndürür; StartsAt boşsa eski
// date/time alanlarından normalize eder.
func (s *EventService) NormalizedStart(event *models.Event) (time.Time, error) {
	if event.StartsAt != nil {
		return event.StartsAt.UTC(), nil
	}
	return datetime.Normalize(event.LegacyDate, event.LegacyTime)
}

// CreateEvent yeni bir etkinlik oluşturur (taslak veya yayında).
func (s *EventService) CreateEvent(ctx context.Context, creatorUserID uint, event models.Event) (*models.Event, error) {
	if err := ValidateEvent(event); err != nil {
		return nil, err
	}
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz oluşturan kullanıcı ID", ErrEventInvalidInput)
	}

	// Eski format alanlar geldiyse StartsAt normalize edilerek doldurulur;
	// legacy sütunlar içe aktarım uyumluluğu için olduğu gibi saklanır.
	if event.StartsAt == nil && event.LegacyDate != "" {
		if start, err := datetime.Normalize(event.LegacyDate, event.LegacyTime); err == nil {
			event.StartsAt = &start
		}
	}

	event.CreatedByUserID = creatorUserID
	event.ShareKey = generateShareKey()
	if event.GuestListVisibility == "" {
		event.GuestListVisibility = models.GuestListPublic
	}
	if event.Status == "" {
		if event.Published {
			event.Status = models.EventStatusScheduled
		} else {
			event.Status = models.EventStatusDraft
		}
	}

	txCtx := models.ContextWithUserID(ctx, creatorUserID)
	if err := s.repo.Create(txCtx, &event); err != nil {
		configslog.Log.Error("CreateEvent: DB error", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
		return nil, ErrEventCreationFailed
	}

	configslog.SLog.Infof("Etkinlik oluşturuldu: ID %d, Başlık: %s, Key: %s", event.ID, event.Title, event.ShareKey)
	return &event, nil
}

// CanManage kullanıcının etkinliği yönetme yetkisini kontrol eder
// (oluşturan, ortak ev sahibi veya sistem kullanıcısı).
func (s *EventService) CanManage(ctx context.Context, event *models.Event, userID uint) bool {
	if event == nil || userID == 0 {
		return false
	}
	if event.CreatedByUserID == userID {
		return true
	}
	for _, cohost := range event.Cohosts {
		if cohost.UserID == userID {
			return true
		}
	}
	user, err := s.userService.GetUserByID(ctx, userID)
	return err == nil && user.IsSystem
}

// GetEventByID etkinliği getirir; taslak ve özel etkinlikler yalnızca
// yönetebilen kullanıcılara görünür.
func (s *EventService) GetEventByID(ctx context.Context, id uint, requestingUserID uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.Published || event.IsPrivate {
		if !s.CanManage(ctx, event, requestingUserID) && !s.isInvited(ctx, event.ID, requestingUserID) {
			return nil, ErrEventForbidden
		}
	}
	return event, nil
}

// isInvited özel etkinlikte davetli kontrolü yapar.
func (s *EventService) isInvited(ctx context.Context, eventID, userID uint) bool {
	if userID == 0 {
		return false
	}
	_, err := repositories.NewEventInvitationRepository().FindByEventAndUser(ctx, eventID, userID)
	return err == nil
}

// GetEventByShareKey public paylaşım anahtarı ile etkinliği getirir.
// Yayınlanmamış veya özel etkinlikler dışarıya 404 görünür.
func (s *EventService) GetEventByShareKey(ctx context.Context, key string) (*models.Event, error) {
	if key == "" {
		return nil, ErrEventNotFound
	}
	event, err := s.repo.FindByShareKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.Published || event.IsPrivate {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) paginate(events []models.Event, totalCount int64, params queryparams.ListParams) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

// GetPublicEvents yayınlanmış açık etkinlikleri sayfalayarak getirir.
func (s *EventService) GetPublicEvents(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	events, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.paginate(events, totalCount, params), nil
}

// GetEventsForUser kullanıcının oluşturduğu etkinlikleri getirir (taslaklar dahil).
func (s *EventService) GetEventsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrEventInvalidInput)
	}
	params.Validate()
	events, totalCount, err := s.repo.FindAllByUserIDPaginated(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return s.paginate(events, totalCount, params), nil
}

func (s *EventService) GetEventsForSection(ctx context.Context, sectionID uint) ([]models.Event, error) {
	return s.repo.FindAllBySectionID(ctx, sectionID)
}

// UpdateEvent mevcut etkinliği günceller. Kayıt kilitli alınır; kapasite
// düşürme gibi alanlar LCV işlemleriyle yarışmamalıdır.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, updatingUserID uint, updates models.Event) error {
	if err := ValidateEvent(updates); err != nil {
		return err
	}
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya güncelleyen kullanıcı ID", ErrEventInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, updatingUserID)
		eventRepoTx := repositories.NewEventRepositoryTx(tx)

		var existing models.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Cohosts").First(&existing, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !s.CanManage(txCtx, &existing, updatingUserID) {
			return ErrEventForbidden
		}

		existing.Title = updates.Title
		existing.Description = updates.Description
		existing.StartsAt = updates.StartsAt
		existing.EndsAt = updates.EndsAt
		existing.Location = updates.Location
		existing.IsVirtual = updates.IsVirtual
		existing.VirtualLink = updates.VirtualLink
		existing.ImageURL = updates.ImageURL
		existing.Tags = updates.Tags
		existing.GroupName = updates.GroupName
		existing.IsPrivate = updates.IsPrivate
		existing.RSVPDeadline = updates.RSVPDeadline
		existing.MaxCapacity = updates.MaxCapacity
		existing.WaitlistEnabled = updates.WaitlistEnabled
		if updates.GuestListVisibility != "" {
			existing.GuestListVisibility = updates.GuestListVisibility
		}

		if err := eventRepoTx.Update(txCtx, &existing); err != nil {
			return ErrEventUpdateFailed
		}
		return nil
	})

	if txErr != nil {
		configslog.Log.Error("UpdateEvent transaction failed",
			zap.Uint("id", id), zap.Uint("userID", updatingUserID), zap.Error(txErr))
		return txErr
	}
	configslog.SLog.Infof("Etkinlik güncellendi: ID %d (Güncelleyen: %d)", id, updatingUserID)
	return nil
}

// SetEventStatus yazar kaynaklı durum geçişlerini uygular: publish
// (draft→scheduled), cancel, postpone, complete, tekrar draft'a çekme.
func (s *EventService) SetEventStatus(ctx context.Context, id uint, userID uint, status models.EventStatus) error {
	switch status {
	case models.EventStatusScheduled, models.EventStatusCancelled,
		models.EventStatusPostponed, models.EventStatusCompleted, models.EventStatusDraft:
	default:
		// pending/live/active zamandan türetilir, elle atanamaz.
		return ErrEventInvalidStatus
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewEventRepositoryTx(tx)

		var existing models.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Cohosts").First(&existing, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !s.CanManage(txCtx, &existing, userID) {
			return ErrEventForbidden
		}

		existing.Status = status
		existing.Published = status != models.EventStatusDraft
		if err := eventRepoTx.Update(txCtx, &existing); err != nil {
			return ErrEventUpdateFailed
		}
		return nil
	})

	if txErr != nil {
		configslog.Log.Error("SetEventStatus transaction failed",
			zap.Uint("id", id), zap.String("status", string(status)), zap.Error(txErr))
		return txErr
	}
	configslog.SLog.Infof("Etkinlik durumu değişti: ID %d -> %s (Kullanıcı: %d)", id, status, userID)
	return nil
}

// DeleteEvent etkinliği siler (soft delete).
func (s *EventService) DeleteEvent(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya silen kullanıcı ID", ErrEventInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, deletingUserID)
		eventRepoTx := repositories.NewEventRepositoryTx(tx)

		var existing models.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Cohosts").First(&existing, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !s.CanManage(txCtx, &existing, deletingUserID) {
			return ErrEventForbidden
		}

		if err := eventRepoTx.Delete(txCtx, &existing, deletingUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return ErrEventDeletionFailed
		}
		return nil
	})

	if txErr != nil {
		configslog.Log.Error("DeleteEvent transaction failed",
			zap.Uint("id", id), zap.Uint("userID", deletingUserID), zap.Error(txErr))
		return txErr
	}
	configslog.SLog.Infof("Etkinlik silindi: ID %d (Silen: %d)", id, deletingUserID)
	return nil
}

// AddCohost etkinliğe ortak ev sahibi ekler.
func (s *EventService) AddCohost(ctx context.Context, eventID, userID, addedBy uint) error {
	event, err := s.GetEventByID(ctx, eventID, addedBy)
	if err != nil {
		return err
	}
	if !s.CanManage(ctx, event, addedBy) {
		return ErrEventForbidden
	}
	for _, cohost := range event.Cohosts {
		if cohost.UserID == userID {
			return ErrCohostAlreadyExists
		}
	}
	if _, err := s.userService.GetUserByID(ctx, userID); err != nil {
		return fmt.Errorf("%w: kullanıcı bulunamadı", ErrEventInvalidInput)
	}

	txCtx := models.ContextWithUserID(ctx, addedBy)
	cohost := models.EventCohost{EventID: eventID, UserID: userID}
	if err := s.db.WithContext(txCtx).Create(&cohost).Error; err != nil {
		configslog.Log.Error("AddCohost: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return ErrEventUpdateFailed
	}
	return nil
}

// RemoveCohost ortak ev sahipliğini kaldırır.
func (s *EventService) RemoveCohost(ctx context.Context, eventID, userID, removedBy uint) error {
	event, err := s.GetEventByID(ctx, eventID, removedBy)
	if err != nil {
		return err
	}
	// Ortak ev sahibi kendini de çıkarabilir.
	if !s.CanManage(ctx, event, removedBy) && removedBy != userID {
		return ErrEventForbidden
	}
	result := s.db.WithContext(ctx).Unscoped().
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventCohost{})
	if result.Error != nil {
		configslog.Log.Error("RemoveCohost: DB error", zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(result.Error))
		return ErrEventUpdateFailed
	}
	if result.RowsAffected == 0 {
		return ErrCohostNotFound
	}
	return nil
}

var _ IEventService = (*EventService)(nil)
