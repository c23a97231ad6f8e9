package handlers

import (
	"errors"
	"net/http"

	"mechanicbook/models"
	"mechanicbook/services/postcode"
	"mechanicbook/services/vehicle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LookupHandler serves vehicle and area lookups for the car step.
type LookupHandler struct {
	Vehicles  vehicle.VehicleService
	Postcodes postcode.PostcodeService
}

func NewLookupHandler(vs vehicle.VehicleService, ps postcode.PostcodeService) *LookupHandler {
	return &LookupHandler{Vehicles: vs, Postcodes: ps}
}

// VehicleLookupHandler handles POST /api/lookup/vehicle.
func (h *LookupHandler) VehicleLookupHandler(c *gin.Context) {
	var req models.VehicleLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration is required"})
		return
	}

	resp, err := h.Vehicles.Lookup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, vehicle.ErrRegRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Warn("Vehicle lookup failed", zap.String("reg", req.Reg), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PostcodeLookupHandler handles GET /api/lookup/postcode/:postcode.
func (h *LookupHandler) PostcodeLookupHandler(c *gin.Context) {
	resp, err := h.Postcodes.Lookup(c.Request.Context(), c.Param("postcode"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, postcode.ErrInvalidPostcode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, postcode.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, postcode.ErrLookupFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Postcode lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": postcode.ErrLookupFailed.Error()})
	}
}
