package models

// User kimlik doğrulama kaydıdır. Görünen profil bilgileri Profile'da tutulur.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsSystem     bool   `gorm:"default:false" json:"-"` // Sistem kullanıcısı tüm kayıtlara erişebilir

	Profile Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile,omitempty"`
}
