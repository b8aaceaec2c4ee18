package models

import "time"

// EventStatus bir etkinliğin yaşam döngüsü durumunu tanımlar.
// draft/cancelled/postponed/completed yazar tarafından atanır; scheduled,
// pending (LCV süresi doldu), active ve live yayınlanmış etkinlik için
// zamandan türetilir. Eski kayıtlarda durum alanı hiç olmayabilir.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusPending   EventStatus = "pending"
	EventStatusActive    EventStatus = "active"
	EventStatusLive      EventStatus = "live"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusPostponed EventStatus = "postponed"
)

// GuestListVisibility katılımcı listesinin kimlere görüneceğini belirler.
type GuestListVisibility string

const (
	GuestListPublic   GuestListVisibility = "public"
	GuestListRSVPOnly GuestListVisibility = "rsvp_only"
	GuestListHidden   GuestListVisibility = "hidden"
)

// Event topluluk etkinliği ana kaydıdır.
// StartsAt/EndsAt yeni format zaman alanlarıdır; LegacyDate/LegacyTime eski
// istemcinin ayrı tarih+saat string'leri için taşınan sütunlardır ve
// pkg/datetime üzerinden normalize edilir.
type Event struct {
	BaseModel
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	StartsAt   *time.Time `gorm:"index;type:timestamptz" json:"starts_at"`
	EndsAt     *time.Time `gorm:"type:timestamptz" json:"ends_at"`
	LegacyDate string     `gorm:"column:date;type:varchar(40)" json:"date,omitempty"`
	LegacyTime string     `gorm:"column:time;type:varchar(10)" json:"time,omitempty"`

	Location    string `gorm:"type:varchar(255)" json:"location"`
	IsVirtual   bool   `gorm:"default:false" json:"is_virtual"`
	VirtualLink string `gorm:"type:varchar(500)" json:"virtual_link"`
	ImageURL    string `gorm:"type:varchar(500)" json:"image_url"`
	Tags        string `gorm:"type:text" json:"tags"` // Virgülle ayrılmış etiketler
	GroupName   string `gorm:"type:varchar(150);index" json:"group_name"`

	Published           bool                `gorm:"default:false;index" json:"published"`
	IsPrivate           bool                `gorm:"default:false" json:"is_private"`
	GuestListVisibility GuestListVisibility `gorm:"type:varchar(20);default:'public'" json:"guest_list_visibility"`

	Status       EventStatus `gorm:"type:varchar(20);index" json:"status"`
	RSVPDeadline *time.Time  `gorm:"type:timestamptz" json:"rsvp_deadline"`

	MaxCapacity     *int `gorm:"type:integer" json:"max_capacity"`
	WaitlistEnabled bool `gorm:"default:false" json:"waitlist_enabled"`

	// ShareKey public paylaşım sayfasının (/e/:key) anahtarıdır.
	ShareKey string `gorm:"type:varchar(11);uniqueIndex;not null" json:"share_key"`

	SectionID *uint `gorm:"index" json:"section_id"`
	CreatedByUserID uint `gorm:"index;not null" json:"created_by"`

	// İlişkiler
	Section  *Section       `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"section,omitempty"`
	RSVPs    []EventRSVP    `gorm:"foreignKey:EventID" json:"-"`
	Waitlist []EventWaitlistEntry `gorm:"foreignKey:EventID" json:"-"`
	Cohosts  []EventCohost  `gorm:"foreignKey:EventID" json:"-"`
}

// StatusDisplay bir durumun arayüzde gösterilecek etiket/renk/emoji üçlüsüdür.
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// statusDisplays eski istemcideki durum rozetlerinin birebir karşılığıdır.
var statusDisplays = map[EventStatus]StatusDisplay{
	EventStatusDraft:     {Label: "Taslak", Color: "#9ca3af", Emoji: "📝"},
	EventStatusScheduled: {Label: "Planlandı", Color: "#3b82f6", Emoji: "🗓️"},
	EventStatusPending:   {Label: "LCV Kapandı", Color: "#f59e0b", Emoji: "⏳"},
	EventStatusActive:    {Label: "Aktif", Color: "#22c55e", Emoji: "✅"},
	EventStatusLive:      {Label: "Şu An Gerçekleşiyor", Color: "#ef4444", Emoji: "🔴"},
	EventStatusCompleted: {Label: "Tamamlandı", Color: "#6b7280", Emoji: "🏁"},
	EventStatusCancelled: {Label: "İptal Edildi", Color: "#991b1b", Emoji: "🚫"},
	EventStatusPostponed: {Label: "Ertelendi", Color: "#a855f7", Emoji: "📅"},
}

// DisplayFor durum için gösterim bilgisini döndürür. Bilinmeyen/eski kayıtlar
// "scheduled" rozetiyle gösterilir.
func DisplayFor(status EventStatus) StatusDisplay {
	if d, ok := statusDisplays[status]; ok {
		return d
	}
	return statusDisplays[EventStatusScheduled]
}
