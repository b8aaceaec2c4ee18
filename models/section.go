package models

// Section kullanıcıların oluşturduğu ilgi alanı topluluğudur; etkinlikler ve
// kanallar bir bölüme bağlanabilir.
type Section struct {
	BaseModel
	Name             string `gorm:"type:varchar(150);not null;index" json:"name"`
	CreatorID        uint   `gorm:"not null;index" json:"creator_id"`
	Description      string `gorm:"type:text" json:"description"`
	ImageURL         string `gorm:"type:varchar(500)" json:"image_url"`
	IsPublic         bool   `gorm:"default:true;index" json:"is_public"`
	RequiresApproval bool   `gorm:"default:false" json:"requires_approval"`

	Members       []SectionMember       `gorm:"foreignKey:SectionID" json:"-"`
	Invitations   []SectionInvitation   `gorm:"foreignKey:SectionID" json:"-"`
	ProfileFields []SectionProfileField `gorm:"foreignKey:SectionID" json:"-"`
}
