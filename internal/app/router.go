package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/image-qc-backend/internal/http/middleware"
	"github.com/yungbote/image-qc-backend/internal/logger"
)

func wireRouter(handlerset Handlers, log *logger.Logger, cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Read surface
	router.GET("/health", handlerset.Health.HealthCheck)
	router.GET("/filters", handlerset.Images.ListFilters)
	router.GET("/images", handlerset.Images.ListImages)
	router.GET("/me/role", handlerset.Role.GetRole)

	// Write surface
	qc := router.Group("/qc")
	{
		qc.POST("/toggle", handlerset.QC.ToggleStatus)
		qc.POST("/issues/toggle", handlerset.QC.ToggleIssue)
	}

	return router
}
