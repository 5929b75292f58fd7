package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/models"
	"github.com/jengzang/astro-backend-go/internal/service"
	"github.com/jengzang/astro-backend-go/pkg/response"
)

// ChartHandler handles HTTP requests for natal charts
type ChartHandler struct {
	service *service.ChartService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service *service.ChartService) *ChartHandler {
	return &ChartHandler{service: service}
}

// InterpretRequest is the body of POST /api/v1/charts/interpret.
type InterpretRequest struct {
	Chart    *chart.Chart `json:"chart" binding:"required"`
	Question string       `json:"question"`
}

// Calculate computes a chart with its analysis and interpretation
// POST /api/v1/charts
func (h *ChartHandler) Calculate(c *gin.Context) {
	var req models.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// Interpret re-reads a chart the client already holds
// POST /api/v1/charts/interpret
func (h *ChartHandler) Interpret(c *gin.Context) {
	var req InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	interp, report, err := h.service.Interpret(c.Request.Context(), req.Chart, req.Question)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"analysis":       report,
		"interpretation": interp,
	})
}
