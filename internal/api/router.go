package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/config"
	"github.com/jengzang/astro-backend-go/internal/handler"
	"github.com/jengzang/astro-backend-go/internal/metrics"
	"github.com/jengzang/astro-backend-go/internal/middleware"
	"github.com/jengzang/astro-backend-go/internal/service"
	"github.com/jengzang/astro-backend-go/pkg/response"
)

// Dependencies are the collaborators the router hands to handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *metrics.Collector
	Charts      *service.ChartService
	Places      *service.PlaceService
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Health      func() map[string]string
}

// SetupRouter builds the gin engine with every route and middleware.
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.CORS(cfg.Server.CORSOrigins),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if deps.Health != nil {
			for k, v := range deps.Health() {
				status[k] = v
			}
		}
		c.JSON(http.StatusOK, status)
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	v1 := r.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(deps.RateLimiter))
	}
	if cfg.Auth.Enabled {
		validator, err := middleware.NewTokenValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
		if err != nil {
			return nil, err
		}
		v1.Use(middleware.Auth(validator))
	}

	chartHandler := handler.NewChartHandler(deps.Charts)
	placeHandler := handler.NewPlaceHandler(deps.Places)

	charts := v1.Group("/charts")
	{
		charts.POST("", chartHandler.Calculate)
		charts.POST("/interpret", chartHandler.Interpret)
	}

	places := v1.Group("/places")
	{
		places.GET("", placeHandler.Resolve)
		places.GET("/nearest", placeHandler.Nearest)
	}
	v1.GET("/zodiac/signs", handler.ZodiacSigns)

	return r, nil
}
