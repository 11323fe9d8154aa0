package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations/:id/statement", h.GetStatement)
}

func (h *Handler) GetStatement(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	st, err := h.service.BuildStatement(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rental period")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statement": st})
}
