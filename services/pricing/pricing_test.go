package pricing

import (
	"testing"

	parcelModel "rapidtransit/models/parcel"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCostBaseline(t *testing.T) {
	// Small + standard over one distance unit is the base cost.
	cost := EstimateCost(parcelModel.ParcelSizeSmall, parcelModel.PriorityStandard, 100)
	assert.Equal(t, 25.0, cost)
}

func TestEstimateCostMultipliersCompound(t *testing.T) {
	// 25 * 2.5 (large) * 2 (next_transport) * 2 (200km) = 250
	cost := EstimateCost(parcelModel.ParcelSizeLarge, parcelModel.PriorityNextTransport, 200)
	assert.Equal(t, 250.0, cost)
}

func TestEstimateCostRoundsToTwoDecimals(t *testing.T) {
	// 25 * 1.5 * 1.5 * 1.23 = 69.1875 -> 69.19
	cost := EstimateCost(parcelModel.ParcelSizeMedium, parcelModel.PriorityExpress, 123)
	assert.Equal(t, 69.19, cost)
}

func TestEstimateCostShortDistanceChargedAsOneUnit(t *testing.T) {
	near := EstimateCost(parcelModel.ParcelSizeSmall, parcelModel.PriorityStandard, 5)
	full := EstimateCost(parcelModel.ParcelSizeSmall, parcelModel.PriorityStandard, 100)
	assert.Equal(t, full, near)
}

func TestEstimateCostDefaultDistance(t *testing.T) {
	zero := EstimateCost(parcelModel.ParcelSizeMedium, parcelModel.PriorityExpress, 0)
	explicit := EstimateCost(parcelModel.ParcelSizeMedium, parcelModel.PriorityExpress, DefaultDistanceKm)
	assert.Equal(t, explicit, zero)

	negative := EstimateCost(parcelModel.ParcelSizeMedium, parcelModel.PriorityExpress, -50)
	assert.Equal(t, explicit, negative)
}

func TestEstimateCostUnknownValuesFallBack(t *testing.T) {
	// Unknown size and priority take the baseline multiplier of 1.
	cost := EstimateCost(parcelModel.ParcelSize("gigantic"), parcelModel.ParcelPriority("teleport"), 100)
	assert.Equal(t, BaseCost, cost)
}
