package payment

// CreatePaymentIntentRequest carries a card payment for a booked parcel.
// Amount is in currency units (rand), converted to cents for the provider.
type CreatePaymentIntentRequest struct {
	Amount   float64 `json:"amount"`
	ParcelID *uint   `json:"parcel_id"`
}
