package inspection

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
	rg.POST("/reservations/:id/checkin", h.CheckIn)
	rg.GET("/reservations/:id/checkin", h.GetCheckIn)
	rg.POST("/reservations/:id/checkout", h.CheckOut)
	rg.GET("/reservations/:id/settlement", h.GetSettlement)
	rg.POST("/reservations/:id/finalize", h.Finalize)
	rg.GET("/fixed-charges", h.ListFixedCharges)
}

// RegisterAdminRoutes wires the fee-catalog management endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/fixed-charges", h.CreateFixedCharge)
	rg.DELETE("/fixed-charges/:id", h.DeleteFixedCharge)
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ci, err := h.service.CheckIn(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"check_in": ci})
}

func (h *Handler) GetCheckIn(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	ci, err := h.service.GetCheckIn(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"check_in": ci})
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	settlement, err := h.service.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settlement": settlement})
}

func (h *Handler) GetSettlement(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	settlement, err := h.service.GetSettlement(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settlement": settlement})
}

func (h *Handler) Finalize(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	settlement, err := h.service.Finalize(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settlement": settlement})
}

func (h *Handler) ListFixedCharges(c *gin.Context) {
	charges, err := h.service.ListFixedCharges(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"fixed_charges": charges})
}

func (h *Handler) CreateFixedCharge(c *gin.Context) {
	var req FixedChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	fc, err := h.service.CreateFixedCharge(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"fixed_charge": fc})
}

func (h *Handler) DeleteFixedCharge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return
	}

	if err := h.service.DeleteFixedCharge(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rental period")
	case errors.Is(err, ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Settlement not found")
	case errors.Is(err, ErrChargeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Fixed charge not found")
	case errors.Is(err, ErrAlreadyCheckedIn):
		response.Error(c, http.StatusConflict, "ALREADY_CHECKED_IN", "Reservation already has a check-in")
	case errors.Is(err, ErrNotCheckedIn):
		response.Error(c, http.StatusConflict, "NOT_CHECKED_IN", "Reservation has no check-in")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Reservation status does not allow this operation")
	case errors.Is(err, ErrLocked):
		response.Error(c, http.StatusConflict, "SETTLEMENT_LOCKED", "Settlement is locked and cannot be modified")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return 0, false
	}
	return id, true
}
