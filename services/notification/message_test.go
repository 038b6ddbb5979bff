package notification

import (
	"testing"

	parcelModel "rapidtransit/models/parcel"

	"github.com/stretchr/testify/assert"
)

const testTrackingNumber = "RT-2026-000123"

func TestComposeStatusMessageCollected(t *testing.T) {
	msg := ComposeStatusMessage(parcelModel.ParcelStatusCollected, testTrackingNumber, "Thandi", nil)
	assert.Contains(t, msg, "Thandi")
	assert.Contains(t, msg, testTrackingNumber)
	assert.Contains(t, msg, "collected")
}

func TestComposeStatusMessageDelivered(t *testing.T) {
	msg := ComposeStatusMessage(parcelModel.ParcelStatusDelivered, testTrackingNumber, "Thandi", nil)
	assert.Contains(t, msg, "Delivered!")
	assert.Contains(t, msg, testTrackingNumber)
}

func TestComposeStatusMessageInTransitWithLocation(t *testing.T) {
	location := "Bloemfontein depot"
	msg := ComposeStatusMessage(parcelModel.ParcelStatusInTransit, testTrackingNumber, "Thandi", &location)
	assert.Contains(t, msg, "in transit at Bloemfontein depot")
	assert.Contains(t, msg, TrackingBaseURL+testTrackingNumber)
}

func TestComposeStatusMessageInTransitWithoutLocation(t *testing.T) {
	msg := ComposeStatusMessage(parcelModel.ParcelStatusInTransit, testTrackingNumber, "Thandi", nil)
	assert.NotContains(t, msg, " at ")
	assert.Contains(t, msg, TrackingBaseURL+testTrackingNumber)

	empty := ""
	msgEmpty := ComposeStatusMessage(parcelModel.ParcelStatusInTransit, testTrackingNumber, "Thandi", &empty)
	assert.Equal(t, msg, msgEmpty)
}

func TestComposeStatusMessageDelayedWithLocation(t *testing.T) {
	location := "N1 toll plaza"
	msg := ComposeStatusMessage(parcelModel.ParcelStatusDelayed, testTrackingNumber, "Thandi", &location)
	assert.Contains(t, msg, "delay at N1 toll plaza")
}

func TestComposeStatusMessageGenericFallback(t *testing.T) {
	msg := ComposeStatusMessage(parcelModel.ParcelStatusCancelled, testTrackingNumber, "Thandi", nil)
	assert.Contains(t, msg, "Status changed to cancelled")
	assert.Contains(t, msg, TrackingBaseURL+testTrackingNumber)
}
