package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// contextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// GORM hook'larına taşır.
const contextUserIDKey contextKey = "user_id"

// ContextWithUserID işlemi yapan kullanıcıyı context'e ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür (yoksa 0).
func UserIDFromContext(ctx context.Context) uint {
	if id, ok := ctx.Value(contextUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// BaseModel tüm tablolara ortak kimlik, zaman damgası ve denetim sütunlarını ekler.
// Soft delete için DeletedAt kullanılır; silen kullanıcı DeletedBy'da tutulur.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate kaydı oluşturan kullanıcıyı context'ten alır.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.CreatedBy = &userID
		m.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate son güncelleyen kullanıcıyı context'ten alır.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
