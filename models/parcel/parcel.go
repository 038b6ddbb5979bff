package parcel

import (
	"rapidtransit/models/user"
	"time"
)

// Parcel represents a single parcel booking. The tracking number is assigned
// exactly once at creation and never changes afterwards.
type Parcel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingNumber string    `gorm:"size:50;not null;uniqueIndex" json:"tracking_number"`
	SenderID       uint      `gorm:"not null;index"           json:"sender_id"`
	Sender         user.User `gorm:"foreignKey:SenderID" json:"-"`

	SenderName      string `gorm:"size:120;not null"   json:"sender_name"`
	SenderPhone     string `gorm:"size:20;not null"    json:"sender_phone"`
	PickupAddress   string `gorm:"type:text;not null"  json:"pickup_address"`
	RecipientName   string `gorm:"size:120;not null"   json:"recipient_name"`
	RecipientPhone  string `gorm:"size:20;not null"    json:"recipient_phone"`
	DeliveryAddress string `gorm:"type:text;not null"  json:"delivery_address"`

	ParcelSize    ParcelSize     `gorm:"size:20;not null"            json:"parcel_size"`
	Priority      ParcelPriority `gorm:"size:30;not null"            json:"priority"`
	Description   *string        `gorm:"type:text"                   json:"description"`
	EstimatedCost float64        `gorm:"type:decimal(10,2);not null" json:"estimated_cost"`

	Status      ParcelStatus `gorm:"size:30;not null;default:'pending'" json:"status"`
	TransportID *uint        `gorm:"index" json:"transport_id"`

	ScheduledPickupAt   *time.Time `json:"scheduled_pickup_at"`
	PickedUpAt          *time.Time `json:"picked_up_at"`
	DeliveredAt         *time.Time `json:"delivered_at"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Parcel model
func (Parcel) TableName() string {
	return "parcels"
}

type ParcelStatus string

const (
	ParcelStatusPending        ParcelStatus = "pending"
	ParcelStatusCollected      ParcelStatus = "collected"
	ParcelStatusInTransit      ParcelStatus = "in_transit"
	ParcelStatusOutForDelivery ParcelStatus = "out_for_delivery"
	ParcelStatusDelivered      ParcelStatus = "delivered"
	ParcelStatusDelayed        ParcelStatus = "delayed"
	ParcelStatusCancelled      ParcelStatus = "cancelled"
)

// IsKnown reports whether the status is one of the wire values the system
// tracks. Transitions between known statuses are not restricted.
func (s ParcelStatus) IsKnown() bool {
	switch s {
	case ParcelStatusPending, ParcelStatusCollected, ParcelStatusInTransit,
		ParcelStatusOutForDelivery, ParcelStatusDelivered, ParcelStatusDelayed,
		ParcelStatusCancelled:
		return true
	}
	return false
}

type ParcelSize string

const (
	ParcelSizeSmall  ParcelSize = "small"
	ParcelSizeMedium ParcelSize = "medium"
	ParcelSizeLarge  ParcelSize = "large"
)

func (s ParcelSize) IsKnown() bool {
	return s == ParcelSizeSmall || s == ParcelSizeMedium || s == ParcelSizeLarge
}

type ParcelPriority string

const (
	PriorityStandard      ParcelPriority = "standard"
	PriorityExpress       ParcelPriority = "express"
	PriorityNextTransport ParcelPriority = "next_transport"
)

func (p ParcelPriority) IsKnown() bool {
	return p == PriorityStandard || p == PriorityExpress || p == PriorityNextTransport
}
