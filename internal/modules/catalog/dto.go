package catalog

import "salonbook/internal/availability"

type SalonView struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Timezone    string        `json:"timezone"`
	PaymentMode string        `json:"payment_mode"`
	Services    []ServiceView `json:"services"`
	Staff       []StaffView   `json:"staff"`
}

type ServiceView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int64  `json:"price_cents"`
}

type StaffView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type SlotsQuery struct {
	Slug      string `form:"salon" binding:"required"`
	ServiceID string `form:"service_id" binding:"required"`
	Date      string `form:"date" binding:"required"` // YYYY-MM-DD in the salon zone
	StaffID   string `form:"staff_id"`                // empty means no preference
}

type SlotsResponse struct {
	Date  string              `json:"date"`
	Slots []availability.Slot `json:"slots"`
}
