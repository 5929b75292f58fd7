package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/pkg/response"
)

// ZodiacSigns lists the twelve signs with their element, modality and ruler
// GET /api/v1/zodiac/signs
func ZodiacSigns(c *gin.Context) {
	response.Success(c, astro.AllSigns())
}
