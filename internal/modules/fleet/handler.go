package fleet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.ListVehicles)
	rg.GET("/vehicles/:id", h.GetVehicle)
	rg.POST("/vehicles", h.CreateVehicle)
	rg.PUT("/vehicles/:id", h.UpdateVehicle)
	rg.PATCH("/vehicles/:id/status", h.UpdateStatus)
}

// RegisterAdminRoutes wires the destructive endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/vehicles/:id", h.DeleteVehicle)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	status := c.Query("status")

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = (n - 1) * limit
		}
	}

	vehicles, err := h.service.ListVehicles(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	v, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"vehicle": v})
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.UpdateVehicle(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status")
		return
	}

	v, err := h.service.UpdateStatus(c.Request.Context(), id, domain.VehicleStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "VEHICLE_IN_USE", "Vehicle is currently rented")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}
