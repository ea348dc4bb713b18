package catalog

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

// GetSalon handles GET /api/salons/:slug.
func (h *Handler) GetSalon(c *gin.Context) {
	view, err := h.service.GetSalon(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "salon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load salon")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ListSlots handles GET /api/slots?salon=...&service_id=...&date=...&staff_id=...
func (h *Handler) ListSlots(c *gin.Context) {
	var q SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.service.ListSlots(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "salon or service not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to compute slots")
		}
		return
	}
	response.Success(c, http.StatusOK, resp)
}
