package payment

type InitiateRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

type InitiateResponse struct {
	PaymentID   string `json:"payment_id"`
	CheckoutURL string `json:"checkout_url"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type StatusResponse struct {
	BookingID     string `json:"booking_id"`
	BookingStatus string `json:"booking_status"`
	PaymentStatus string `json:"payment_status"`
	AmountCents   int64  `json:"amount_cents,omitempty"`
}

// webhookPayload is what the provider posts. Only the id is trusted; the
// status is always re-fetched from the provider API.
type webhookPayload struct {
	ID string `json:"id" form:"id"`
}
