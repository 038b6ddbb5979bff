package seeders

import (
	"log"
	"time"

	transportModel "rapidtransit/models/transport"

	"gorm.io/gorm"
)

// SeedTransports loads a starter schedule of vehicle runs between the major
// cities. Skipped when transport rows already exist.
func SeedTransports(db *gorm.DB) {
	log.Printf("🔍 Checking transport schedule data...")

	var count int64
	if err := db.Model(&transportModel.Transport{}).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to count transports: %v", err)
		return
	}
	if count > 0 {
		log.Printf("✅ Transport schedule already seeded (%d runs)", count)
		return
	}

	departureBase := time.Now().Truncate(time.Hour).Add(24 * time.Hour)

	transports := []transportModel.Transport{
		{Operator: "Intercape", VehicleNumber: "IC-1042", RouteFrom: "Cape Town", RouteTo: "Johannesburg", DepartureTime: departureBase.Add(6 * time.Hour), ArrivalTime: departureBase.Add(24 * time.Hour), Capacity: 50, AvailableCapacity: 50},
		{Operator: "Intercape", VehicleNumber: "IC-2087", RouteFrom: "Johannesburg", RouteTo: "Cape Town", DepartureTime: departureBase.Add(7 * time.Hour), ArrivalTime: departureBase.Add(25 * time.Hour), Capacity: 50, AvailableCapacity: 50},
		{Operator: "Greyhound", VehicleNumber: "GH-551", RouteFrom: "Durban", RouteTo: "Johannesburg", DepartureTime: departureBase.Add(8 * time.Hour), ArrivalTime: departureBase.Add(15 * time.Hour), Capacity: 40, AvailableCapacity: 40},
		{Operator: "Greyhound", VehicleNumber: "GH-552", RouteFrom: "Johannesburg", RouteTo: "Durban", DepartureTime: departureBase.Add(9 * time.Hour), ArrivalTime: departureBase.Add(16 * time.Hour), Capacity: 40, AvailableCapacity: 40},
		{Operator: "Golden Arrow", VehicleNumber: "GA-310", RouteFrom: "Cape Town", RouteTo: "Gqeberha", DepartureTime: departureBase.Add(5 * time.Hour), ArrivalTime: departureBase.Add(17 * time.Hour), Capacity: 35, AvailableCapacity: 35},
		{Operator: "Citiliner", VehicleNumber: "CL-118", RouteFrom: "Pretoria", RouteTo: "Bloemfontein", DepartureTime: departureBase.Add(10 * time.Hour), ArrivalTime: departureBase.Add(16 * time.Hour), Capacity: 45, AvailableCapacity: 45},
		{Operator: "Citiliner", VehicleNumber: "CL-204", RouteFrom: "Bloemfontein", RouteTo: "Cape Town", DepartureTime: departureBase.Add(11 * time.Hour), ArrivalTime: departureBase.Add(22 * time.Hour), Capacity: 45, AvailableCapacity: 45},
		{Operator: "Intercape", VehicleNumber: "IC-3310", RouteFrom: "Gqeberha", RouteTo: "Durban", DepartureTime: departureBase.Add(12 * time.Hour), ArrivalTime: departureBase.Add(23 * time.Hour), Capacity: 50, AvailableCapacity: 50},
	}

	for _, t := range transports {
		t.Status = transportModel.TransportStatusScheduled
		if err := db.Create(&t).Error; err != nil {
			log.Printf("❌ Failed to seed transport %s %s: %v", t.Operator, t.VehicleNumber, err)
		}
	}

	log.Printf("✅ Seeded %d transport runs", len(transports))
}
