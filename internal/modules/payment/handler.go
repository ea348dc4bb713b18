package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Initiate handles POST /api/payments. The body names only the booking; the
// amount is computed server-side.
func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.service.Initiate(c.Request.Context(), req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "booking is already paid")
		case errors.Is(err, ErrNotRequired):
			response.Error(c, http.StatusConflict, "NO_PAYMENT_REQUIRED", err.Error())
		case errors.Is(err, ErrBelowMinimum):
			response.Error(c, http.StatusUnprocessableEntity, "AMOUNT_TOO_SMALL", err.Error())
		case errors.Is(err, ErrUpstream):
			response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "payment provider unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to initiate payment")
		}
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Webhook handles POST /api/payments/webhook. The provider posts the payment
// id form-encoded; JSON is accepted too. Any status fields in the body are
// ignored on purpose. A 200 acknowledges the delivery; a 502 asks the
// provider to retry later.
func (h *Handler) Webhook(c *gin.Context) {
	id := c.PostForm("id")
	if id == "" {
		var payload webhookPayload
		if err := c.ShouldBindJSON(&payload); err == nil {
			id = payload.ID
		}
	}
	if id == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "missing payment id")
		return
	}

	if err := h.service.Reconcile(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrUpstream) {
			response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "could not verify payment status")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to process webhook")
		return
	}

	c.Status(http.StatusOK)
}

// Status handles GET /api/payments/status/:bookingId for the return page.
func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load payment status")
		return
	}
	response.Success(c, http.StatusOK, resp)
}
