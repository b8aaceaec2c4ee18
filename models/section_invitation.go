package models

// SectionInvitation bir kullanıcıya gönderilen bölüm davetidir.
// Kabul edilen davet onaylı üyelik kaydı yazar.
type SectionInvitation struct {
	BaseModel
	SectionID uint         `gorm:"not null;index:idx_section_invite_user,unique" json:"section_id"`
	UserID    uint         `gorm:"not null;index:idx_section_invite_user,unique" json:"user_id"`
	InvitedBy uint         `gorm:"not null" json:"invited_by"`
	Status    InviteStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message   string       `gorm:"type:text" json:"message"`

	Section Section `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"section,omitempty"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}
