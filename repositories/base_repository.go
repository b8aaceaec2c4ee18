package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound tüm repository'lerin ortak "kayıt yok" hatasıdır; servisler
// gorm.ErrRecordNotFound yerine bunu kontrol eder.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository basit CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	AllowedSortColumn(column string) bool
}

// BaseRepository ortak CRUD davranışını ve izinli sıralama sütunu
// beyaz listesini taşır. Tipe özel repository'ler bunu gömerek kullanır.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]struct{}
}

// NewBaseRepository verilen bağlantıyla (veya transaction ile) base repo kurar.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, sortColumns: map[string]struct{}{}}
}

// SetAllowedSortColumns sıralamada kabul edilen sütunları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.sortColumns = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.sortColumns[c] = struct{}{}
	}
}

// AllowedSortColumn sütunun beyaz listede olup olmadığını söyler.
func (r *BaseRepository[T]) AllowedSortColumn(column string) bool {
	_, ok := r.sortColumns[column]
	return ok
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
