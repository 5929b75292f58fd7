package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/astro-backend-go/internal/service"
	"github.com/jengzang/astro-backend-go/pkg/response"
)

// PlaceHandler handles HTTP requests for place lookups
type PlaceHandler struct {
	service *service.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// Resolve geocodes a place name
// GET /api/v1/places?q=
func (h *PlaceHandler) Resolve(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.BadRequest(c, "Query parameter q is required")
		return
	}

	place, err := h.service.Resolve(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, place)
}

// Nearest finds the closest previously resolved place
// GET /api/v1/places/nearest?lat=&lon=&radius_km=
func (h *PlaceHandler) Nearest(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		response.BadRequest(c, "Query parameters lat and lon must be numbers")
		return
	}

	var radius float64
	if raw := c.Query("radius_km"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r <= 0 {
			response.BadRequest(c, "radius_km must be a positive number")
			return
		}
		radius = r
	}

	place, err := h.service.Nearest(c.Request.Context(), lat, lon, radius)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, place)
}
