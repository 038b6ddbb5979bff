package pricing

import (
	"math"

	parcelModel "rapidtransit/models/parcel"
)

// BaseCost is the flat charge for a small standard parcel over one
// distance unit (100 km).
const BaseCost = 25.0

// DefaultDistanceKm is assumed when the caller supplies no distance.
const DefaultDistanceKm = 100.0

var sizeMultipliers = map[parcelModel.ParcelSize]float64{
	parcelModel.ParcelSizeSmall:  1,
	parcelModel.ParcelSizeMedium: 1.5,
	parcelModel.ParcelSizeLarge:  2.5,
}

var priorityMultipliers = map[parcelModel.ParcelPriority]float64{
	parcelModel.PriorityStandard:      1,
	parcelModel.PriorityExpress:       1.5,
	parcelModel.PriorityNextTransport: 2,
}

// EstimateCost returns the estimated price for a parcel booking, rounded to
// two decimal places. Unrecognized size or priority values fall back to the
// baseline multiplier of 1; a non-positive distance falls back to
// DefaultDistanceKm. Distances under 100 km are charged as one unit.
func EstimateCost(size parcelModel.ParcelSize, priority parcelModel.ParcelPriority, distanceKm float64) float64 {
	if distanceKm <= 0 {
		distanceKm = DefaultDistanceKm
	}

	sizeMultiplier, ok := sizeMultipliers[size]
	if !ok {
		sizeMultiplier = 1
	}

	priorityMultiplier, ok := priorityMultipliers[priority]
	if !ok {
		priorityMultiplier = 1
	}

	distanceMultiplier := math.Max(1, distanceKm/100)

	cost := BaseCost * sizeMultiplier * priorityMultiplier * distanceMultiplier
	return math.Round(cost*100) / 100
}
