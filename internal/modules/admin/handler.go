package admin

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

func salonID(c *gin.Context) string {
	return c.GetString("salon_id")
}

// DayAgenda handles GET /api/admin/agenda?date=YYYY-MM-DD.
func (h *Handler) DayAgenda(c *gin.Context) {
	var q AgendaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.service.DayAgenda(c.Request.Context(), salonID(c), q.Date)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "salon not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load agenda")
		}
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// UpsertSchedule handles PUT /api/admin/schedules.
func (h *Handler) UpsertSchedule(c *gin.Context) {
	var req UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sched, err := h.service.UpsertSchedule(c.Request.Context(), salonID(c), req)
	if err != nil {
		h.writeError(c, err, "failed to save schedule")
		return
	}
	response.Success(c, http.StatusOK, sched)
}

// CreateBlock handles POST /api/admin/blocks.
func (h *Handler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	block, err := h.service.CreateBlock(c.Request.Context(), salonID(c), req)
	if err != nil {
		h.writeError(c, err, "failed to create block")
		return
	}
	response.Success(c, http.StatusCreated, block)
}

// DeleteBlock handles DELETE /api/admin/blocks/:id.
func (h *Handler) DeleteBlock(c *gin.Context) {
	if err := h.service.DeleteBlock(c.Request.Context(), salonID(c), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete block")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "staff not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "staff belongs to another salon")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
