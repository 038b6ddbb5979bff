package notification

import (
	"fmt"

	parcelModel "rapidtransit/models/parcel"
)

// TrackingBaseURL is the public tracking page included in outbound messages.
const TrackingBaseURL = "rapidtransit.app/track/"

// ComposeStatusMessage builds the recipient-facing SMS text for a status
// change. The in_transit and delayed templates carry an optional location
// suffix; unknown statuses fall back to a generic update with a tracking
// link. Deterministic, no side effects.
func ComposeStatusMessage(status parcelModel.ParcelStatus, trackingNumber, recipientName string, location *string) string {
	locationSuffix := ""
	if location != nil && *location != "" {
		locationSuffix = fmt.Sprintf(" at %s", *location)
	}

	switch status {
	case parcelModel.ParcelStatusCollected:
		return fmt.Sprintf("Hi %s, your parcel %s has been collected and is now in transit via RapidTransit.",
			recipientName, trackingNumber)
	case parcelModel.ParcelStatusInTransit:
		return fmt.Sprintf("Update: Your parcel %s is currently in transit%s. Track: %s%s",
			trackingNumber, locationSuffix, TrackingBaseURL, trackingNumber)
	case parcelModel.ParcelStatusOutForDelivery:
		return fmt.Sprintf("Great news %s! Your parcel %s is out for delivery and will arrive shortly.",
			recipientName, trackingNumber)
	case parcelModel.ParcelStatusDelivered:
		return fmt.Sprintf("Delivered! Your parcel %s has been successfully delivered. Thank you for using RapidTransit!",
			trackingNumber)
	case parcelModel.ParcelStatusDelayed:
		return fmt.Sprintf("Update: Your parcel %s is experiencing a slight delay%s. We'll keep you updated.",
			trackingNumber, locationSuffix)
	default:
		return fmt.Sprintf("Update on your parcel %s: Status changed to %s. Track: %s%s",
			trackingNumber, status, TrackingBaseURL, trackingNumber)
	}
}
