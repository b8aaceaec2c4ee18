package models

// ChannelCategory kanal listesindeki gruplama başlığıdır (seed ile oluşturulur).
type ChannelCategory struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// Channel bir sohbet akışıdır; bir bölüme, bir etkinliğe bağlı veya bağımsız
// olabilir. SectionID ve EventID'nin en fazla biri dolu olur.
type Channel struct {
	BaseModel
	Name       string `gorm:"type:varchar(150);not null" json:"name"`
	SectionID  *uint  `gorm:"index" json:"section_id"`
	EventID    *uint  `gorm:"index" json:"event_id"`
	CategoryID *uint  `gorm:"index" json:"category_id"`
	CreatorID  uint   `gorm:"not null" json:"creator_id"`

	Category *ChannelCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	Members  []ChannelMember  `gorm:"foreignKey:ChannelID" json:"-"`
}

// ChannelMember kanal üyeliğidir.
type ChannelMember struct {
	BaseModel
	ChannelID uint `gorm:"not null;index:idx_channel_member,unique" json:"channel_id"`
	UserID    uint `gorm:"not null;index:idx_channel_member,unique" json:"user_id"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}
