package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/astro-backend-go/internal/geocoding"
	"github.com/jengzang/astro-backend-go/internal/models"
	"github.com/jengzang/astro-backend-go/internal/service"
	"github.com/jengzang/astro-backend-go/pkg/response"
)

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Messages)
	case errors.Is(err, geocoding.ErrEmptyQuery):
		response.BadRequest(c, err.Error())
	case errors.Is(err, geocoding.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, geocoding.ErrUnavailable):
		response.ServiceUnavailable(c, "Geocoding service unavailable, retry later or send coordinates")
	case errors.Is(err, service.ErrTimeout):
		response.GatewayTimeout(c, "Chart calculation timed out")
	default:
		response.InternalError(c, "Internal server error")
	}
}
