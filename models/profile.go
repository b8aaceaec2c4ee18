package models

import "strings"

// Profile kullanıcının görünen profilidir (users.id ile bire bir).
type Profile struct {
	BaseModel
	UserID            uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName          string `gorm:"type:varchar(150)" json:"full_name"`
	Bio               string `gorm:"type:text" json:"bio"`
	Interests         string `gorm:"type:text" json:"interests"` // Virgülle ayrılmış liste (eski istemci formatı)
	Phone             string `gorm:"type:varchar(30)" json:"phone"`
	ProfilePictureURL string `gorm:"type:varchar(500)" json:"profile_picture_url"`
	Private           bool   `gorm:"default:false;index" json:"private"`
}

// InterestList virgülle ayrılmış ilgi alanlarını temizlenmiş dilim olarak döndürür.
func (p Profile) InterestList() []string {
	if strings.TrimSpace(p.Interests) == "" {
		return nil
	}
	parts := strings.Split(p.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
