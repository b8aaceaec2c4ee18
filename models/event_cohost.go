package models

// EventCohost etkinlikte düzenleme yetkisi olan ek kullanıcıdır.
type EventCohost struct {
	BaseModel
	EventID uint `gorm:"not null;index:idx_cohost_event_user,unique" json:"event_id"`
	UserID  uint `gorm:"not null;index:idx_cohost_event_user,unique" json:"user_id"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}
