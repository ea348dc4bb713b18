package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type bookingView struct {
	ID            string    `json:"id"`
	SalonID       string    `json:"salon_id"`
	ServiceID     string    `json:"service_id"`
	StaffID       string    `json:"staff_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	AmountTotal   int64     `json:"amount_total_cents"`
	AmountDue     int64     `json:"amount_due_cents"`
	AmountPaid    int64     `json:"amount_paid_cents"`
}

func toView(b *domain.Booking) bookingView {
	return bookingView{
		ID:            b.ID,
		SalonID:       b.SalonID,
		ServiceID:     b.ServiceID,
		StaffID:       b.StaffID,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		AmountTotal:   b.AmountTotalCents,
		AmountDue:     b.AmountDueCents,
		AmountPaid:    b.AmountPaidCents,
	}
}

// Create handles POST /api/bookings.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// Bots fill the hidden field; answer as if the booking succeeded and
	// write nothing.
	if req.Honeypot != "" {
		response.Success(c, http.StatusCreated, gin.H{
			"id":     uuid.NewString(),
			"status": string(domain.BookingConfirmed),
		})
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrSlotTaken):
			response.Error(c, http.StatusConflict, "SLOT_TAKEN", "this time slot is no longer available")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, toView(b))
}

// Get handles GET /api/bookings/:id, used by the payment return page to
// poll until the webhook lands.
func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, toView(b))
}

// Cancel handles POST /api/bookings/:id/cancel (public, the booking id is
// the authorization) and POST /api/admin/bookings/:id/cancel (scoped to the
// token's salon). Cancelling twice is a no-op success, so retries stay
// harmless.
func (h *Handler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req) // body is optional
	withRefund := req.Refund == nil || *req.Refund

	id := c.Param("id")
	result, err := h.service.Cancel(c.Request.Context(), id, c.GetString("salon_id"), req.Reason, withRefund)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "booking belongs to another salon")
		case errors.Is(err, ErrAlreadyTerminal):
			h.respondCurrentStatus(c, id)
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// NoShow handles POST /api/admin/bookings/:id/no-show.
func (h *Handler) NoShow(c *gin.Context) {
	id := c.Param("id")
	b, err := h.service.MarkNoShow(c.Request.Context(), id, c.GetString("salon_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "booking belongs to another salon")
		case errors.Is(err, ErrAlreadyTerminal):
			h.respondCurrentStatus(c, id)
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to mark no-show")
		}
		return
	}

	response.Success(c, http.StatusOK, toView(b))
}

func (h *Handler) respondCurrentStatus(c *gin.Context, id string) {
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusConflict, "ALREADY_FINAL", "booking is already in a final state")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking_id": b.ID,
		"status":     string(b.Status),
	})
}
