package reservation

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

// RegisterRoutes wires the desk-facing reservation endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations", h.ListReservations)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.PUT("/reservations/:id", h.UpdateReservation)
	rg.POST("/reservations/:id/confirm", h.ConfirmReservation)
	rg.POST("/reservations/:id/cancel", h.CancelReservation)
	rg.GET("/clients/:id/reservations", h.ListClientReservations)
}

// RegisterPublicRoutes wires the unauthenticated estimator.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/estimates", h.Estimate)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": r})
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) ListReservations(c *gin.Context) {
	status := c.Query("status")
	limit, offset := pagination(c)

	list, err := h.service.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) ListClientReservations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	list, err := h.service.ListByClient(c.Request.Context(), id, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.UpdateReservation(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) ConfirmReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	r, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	r, err := h.service.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	est, err := h.service.Estimate(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"estimate": est})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rental period")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrVehicleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrNotAvailable), errors.Is(err, ErrOverbooking):
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT", "Vehicle is not available for the selected period")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Reservation status does not allow this operation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}
