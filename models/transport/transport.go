package transport

import (
	"time"
)

// Transport represents a scheduled vehicle run between two cities. Parcels
// reference a transport via their transport_id; capacity counters are
// informational for scheduling.
type Transport struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Operator      string `gorm:"size:120;not null"        json:"operator"` // Golden Arrow, Intercape, etc.
	VehicleNumber string `gorm:"size:50;not null"         json:"vehicle_number"`
	RouteFrom     string `gorm:"size:120;not null;index"  json:"route_from"`
	RouteTo       string `gorm:"size:120;not null;index"  json:"route_to"`

	DepartureTime time.Time `gorm:"not null" json:"departure_time"`
	ArrivalTime   time.Time `gorm:"not null" json:"arrival_time"`

	Capacity          int             `gorm:"not null;default:50" json:"capacity"`
	AvailableCapacity int             `gorm:"not null;default:50" json:"available_capacity"`
	Status            TransportStatus `gorm:"size:30;not null;default:'scheduled'" json:"status"`
	CurrentLocation   *string         `gorm:"type:text" json:"current_location"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Transport model
func (Transport) TableName() string {
	return "transports"
}

type TransportStatus string

const (
	TransportStatusScheduled TransportStatus = "scheduled"
	TransportStatusInTransit TransportStatus = "in_transit"
	TransportStatusArrived   TransportStatus = "arrived"
	TransportStatusCancelled TransportStatus = "cancelled"
)
