package transport

import "time"

// CreateTransportRequest carries a new scheduled vehicle run.
type CreateTransportRequest struct {
	Operator      string    `json:"operator"`
	VehicleNumber string    `json:"vehicle_number"`
	RouteFrom     string    `json:"route_from"`
	RouteTo       string    `json:"route_to"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Capacity      int       `json:"capacity"`
}
