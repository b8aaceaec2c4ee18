package models

// ChannelMessage kanal mesajıdır. Silme soft delete'tir; kanal içinde gösterim
// sırası created_at artan yöndedir.
type ChannelMessage struct {
	BaseModel
	ChannelID uint   `gorm:"not null;index" json:"channel_id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Content   string `gorm:"type:text;not null" json:"content"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Channel Channel `gorm:"foreignKey:ChannelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
