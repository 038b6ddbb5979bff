package parcel

import "time"

// CreateParcelRequest carries the booking form fields. Sender identity
// fields are filled in from the authenticated user, not the request body.
type CreateParcelRequest struct {
	SenderPhone     string `json:"sender_phone"`
	PickupAddress   string `json:"pickup_address"`
	RecipientName   string `json:"recipient_name"`
	RecipientPhone  string `json:"recipient_phone"`
	DeliveryAddress string `json:"delivery_address"`

	ParcelSize    string  `json:"parcel_size"`
	Priority      string  `json:"priority"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimated_cost"`
	DistanceKm    float64 `json:"distance_km"`

	TransportID       *uint      `json:"transport_id"`
	ScheduledPickupAt *time.Time `json:"scheduled_pickup_at"`
}

// UpdateStatusRequest carries a lifecycle transition for a parcel.
type UpdateStatusRequest struct {
	Status   string  `json:"status"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// EstimateCostRequest mirrors the public cost estimation call.
type EstimateCostRequest struct {
	ParcelSize string  `json:"parcel_size"`
	Priority   string  `json:"priority"`
	Distance   float64 `json:"distance"`
}
