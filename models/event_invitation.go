package models

// InviteStatus davet yanıt durumlarını tanımlar (etkinlik ve bölüm davetleri
// için ortak kullanılır).
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// EventInvitation bir kullanıcıya gönderilen etkinlik davetidir.
// Kabul edilen davet "going" LCV kaydı yazar.
type EventInvitation struct {
	BaseModel
	EventID   uint         `gorm:"not null;index:idx_event_invite_user,unique" json:"event_id"`
	UserID    uint         `gorm:"not null;index:idx_event_invite_user,unique" json:"user_id"`
	InvitedBy uint         `gorm:"not null" json:"invited_by"`
	Status    InviteStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message   string       `gorm:"type:text" json:"message"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}

// EventSectionInvite bir etkinliğe bölümün tamamının davet edilmesidir;
// bölüm üyeleri etkinliği davetliler sekmesinde görür.
type EventSectionInvite struct {
	BaseModel
	EventID   uint         `gorm:"not null;index:idx_event_section_invite,unique" json:"event_id"`
	SectionID uint         `gorm:"not null;index:idx_event_section_invite,unique" json:"section_id"`
	InvitedBy uint         `gorm:"not null" json:"invited_by"`
	Status    InviteStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Section Section `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"section,omitempty"`
}
