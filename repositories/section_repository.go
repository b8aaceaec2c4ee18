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

// ISectionRepository bölüm veritabanı işlemleri için arayüz.
type ISectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	FindByID(ctx context.Context, id uint) (*models.Section, error)
	FindPublicPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Section, int64, error)
	FindByMemberUserID(ctx context.Context, userID uint) ([]models.Section, error)
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, section *models.Section, deletedByUserID uint) error
}

type SectionRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Section]
}

func NewSectionRepository() ISectionRepository {
	db := configs.GetDB()
	base := NewBaseRepository[models.Section](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name"})
	return &SectionRepository{db: db, base: base}
}

func (r *SectionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	if section == nil || section.Name == "" {
		return errors.New("geçersiz bölüm verisi")
	}
	return r.getDB(ctx).Create(section).Error
}

func (r *SectionRepository) FindByID(ctx context.Context, id uint) (*models.Section, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Section ID")
	}
	var section models.Section
	err := r.getDB(ctx).Preload("ProfileFields").First(&section, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SectionRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &section, nil
}

func (r *SectionRepository) FindPublicPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Section, int64, error) {
	var sections []models.Section
	var totalCount int64
	db := r.getDB(ctx)

	query := db.Model(&models.Section{}).Where("sections.is_public = ?", true)
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("sections.name", params.Name)
		query = query.Where(sqlFragment, args...)
	}

	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	orderColumn := "sections.created_at"
	if r.base.AllowedSortColumn(params.SortBy) {
		orderColumn = "sections." + params.SortBy
	}
	query = query.Order(orderColumn + " " + orderBy)

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("SectionRepository.Count: DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return sections, 0, nil
	}

	err := query.Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&sections).Error
	if err != nil {
		configslog.Log.Error("SectionRepository.Find: DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return sections, totalCount, nil
}

// FindByMemberUserID kullanıcının onaylı üyesi olduğu bölümleri getirir.
func (r *SectionRepository) FindByMemberUserID(ctx context.Context, userID uint) ([]models.Section, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var sections []models.Section
	err := r.getDB(ctx).
		Joins("JOIN section_members ON section_members.section_id = sections.id").
		Where("section_members.user_id = ? AND section_members.status = ? AND section_members.deleted_at IS NULL",
			userID, models.MembershipStatusApproved).
		Find(&sections).Error
	if err != nil {
		configslog.Log.Error("SectionRepository.FindByMemberUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return sections, nil
}

func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	if section == nil || section.ID == 0 {
		return errors.New("güncellenecek bölüm geçerli değil")
	}
	return r.getDB(ctx).Save(section).Error
}

func (r *SectionRepository) Delete(ctx context.Context, section *models.Section, deletedByUserID uint) error {
	if section == nil || section.ID == 0 {
		return errors.New("silinecek bölüm geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(section).Where("id = ? AND deleted_at IS NULL", section.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("SectionRepository.Delete: DB error", zap.Uint("id", section.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var _ ISectionRepository = (*SectionRepository)(nil)

// Transaction'lı repository için yardımcı constructor.
func NewSectionRepositoryTx(tx *gorm.DB) ISectionRepository {
	base := NewBaseRepository[models.Section](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name"})
	return &SectionRepository{db: tx, base: base}
}
