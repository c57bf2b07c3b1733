package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillforge/bids-service/internal/config"
	"github.com/skillforge/bids-service/internal/http/middleware"
)

type Handlers struct {
	Auth          *AuthHandler
	Bids          *BidHandler
	Projects      *ProjectHandler
	Notifications *NotificationHandler
	Contracts     *ContractHandler
	Reports       *ReportHandler
}

func NewRouter(handlers Handlers, authMiddleware gin.HandlerFunc, cfg *config.Config) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.Auth.Register(router)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	handlers.Bids.Register(protected)
	handlers.Projects.Register(protected)
	handlers.Notifications.Register(protected)
	handlers.Contracts.Register(protected)
	handlers.Reports.Register(protected)

	return router
}
