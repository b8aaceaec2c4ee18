package models

// SectionProfileField bölüme özel profil sorusudur (örn. "Hangi dilleri
// konuşuyorsun?"). Bölüm yöneticileri tanımlar, üyeler cevaplar.
type SectionProfileField struct {
	BaseModel
	SectionID uint   `gorm:"not null;index" json:"section_id"`
	Label     string `gorm:"type:varchar(150);not null" json:"label"`
	Required  bool   `gorm:"default:false" json:"required"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// SectionProfileData bir üyenin bölüme özel profil sorusuna verdiği cevaptır.
type SectionProfileData struct {
	BaseModel
	FieldID uint   `gorm:"not null;index:idx_section_profile_data,unique" json:"field_id"`
	UserID  uint   `gorm:"not null;index:idx_section_profile_data,unique" json:"user_id"`
	Value   string `gorm:"type:text" json:"value"`

	Field SectionProfileField `gorm:"foreignKey:FieldID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"field,omitempty"`
}
