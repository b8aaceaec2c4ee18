package models

import "time"

// RSVPStatus bir kullanıcının katılım niyetini tanımlar.
type RSVPStatus string

const (
	RSVPStatusGoing    RSVPStatus = "going"
	RSVPStatusMaybe    RSVPStatus = "maybe"
	RSVPStatusNotGoing RSVPStatus = "not_going"
)

// ValidRSVPStatus istemciden gelen durum değerini doğrular.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPStatusGoing, RSVPStatusMaybe, RSVPStatusNotGoing:
		return true
	}
	return false
}

// EventRSVP bir kullanıcının bir etkinliğe verdiği LCV yanıtıdır.
// (event_id, user_id) çifti tekildir; tekrar LCV önceki durumu ezer.
type EventRSVP struct {
	BaseModel
	EventID uint `gorm:"not null;index:idx_rsvp_event_user,unique" json:"event_id"`
	UserID  uint `gorm:"not null;index:idx_rsvp_event_user,unique" json:"user_id"`

	Status      RSVPStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	RespondedAt *time.Time `json:"responded_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
