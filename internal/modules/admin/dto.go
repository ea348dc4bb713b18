package admin

import "time"

type AgendaQuery struct {
	Date string `form:"date" binding:"required"` // YYYY-MM-DD in the salon zone
}

type AgendaEntry struct {
	ID            string    `json:"id"`
	StaffID       string    `json:"staff_id"`
	ServiceID     string    `json:"service_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
}

type AgendaResponse struct {
	Date    string        `json:"date"`
	Entries []AgendaEntry `json:"entries"`
}

type UpsertScheduleRequest struct {
	StaffID   string `json:"staff_id" binding:"required"`
	DayOfWeek *int   `json:"day_of_week" binding:"required"` // 0=Monday .. 6=Sunday
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsWorking bool   `json:"is_working"`
}

type CreateBlockRequest struct {
	StaffID string    `json:"staff_id" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Reason  string    `json:"reason"`
}
