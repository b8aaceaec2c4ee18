package models

// MembershipStatus bölüm üyeliği onay durumlarını tanımlar.
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusApproved MembershipStatus = "approved"
	MembershipStatusRejected MembershipStatus = "rejected"
)

// SectionMember bölüm üyelik kaydıdır. Bir kullanıcının bölüm başına en fazla
// bir üyelik satırı olur.
type SectionMember struct {
	BaseModel
	SectionID uint             `gorm:"not null;index:idx_section_member,unique" json:"section_id"`
	UserID    uint             `gorm:"not null;index:idx_section_member,unique" json:"user_id"`
	IsAdmin   bool             `gorm:"default:false" json:"is_admin"`
	Status    MembershipStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Section Section `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// SectionMembershipVisibility üyenin bölüm üye listesinde görünüp
// görünmeyeceğini belirler (varsayılan görünür).
type SectionMembershipVisibility struct {
	BaseModel
	SectionID uint `gorm:"not null;index:idx_membership_visibility,unique" json:"section_id"`
	UserID    uint `gorm:"not null;index:idx_membership_visibility,unique" json:"user_id"`
	Hidden    bool `gorm:"default:false" json:"hidden"`
}
