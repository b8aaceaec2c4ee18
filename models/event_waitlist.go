package models

// EventWaitlistEntry kapasitesi dolan etkinlik için sıralı bekleme kaydıdır.
// Position etkinlik başına 1'den başlar ve atama anında boşluksuzdur; listeden
// ayrılmak satırı siler, kalan pozisyonlar yeniden numaralandırılmaz.
type EventWaitlistEntry struct {
	BaseModel
	EventID  uint `gorm:"not null;index:idx_waitlist_event_user,unique" json:"event_id"`
	UserID   uint `gorm:"not null;index:idx_waitlist_event_user,unique" json:"user_id"`
	Position int  `gorm:"not null" json:"position"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}
