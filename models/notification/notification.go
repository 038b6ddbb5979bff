package notification

import (
	"rapidtransit/models/user"
	"time"
)

// Notification is an in-app notification shown to a user, distinct from the
// outbound SMS sent to a parcel's recipient.
type Notification struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint      `gorm:"not null;index"           json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"-"`

	Title    string `gorm:"size:255;not null"  json:"title"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Type     string `gorm:"size:20;not null"   json:"type"` // info, success, warning, error
	ParcelID *uint  `gorm:"index"              json:"parcel_id"`
	IsRead   bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
