package app

import (
	"net/http"

	"rdv-soins-core/internal/app/config"
	"rdv-soins-core/internal/infrastructure/logger"
	"rdv-soins-core/internal/shared/middleware/core"
	"rdv-soins-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

// NewRouter assemble le router Gin avec les middlewares globaux.
// Les routes métier sont enregistrées par chaque module via fx.Invoke.
func NewRouter(
	cfg *config.Config,
	loggerMiddleware *logger.LoggerMiddleware,
	recovery core.RecoveryHandler,
	corsHandler security.CORSHandler,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	r := gin.New()

	// Ordre: recovery englobe tout, puis logging, puis CORS
	r.Use(gin.HandlerFunc(recovery))
	r.Use(loggerMiddleware.GinLogger())
	r.Use(gin.HandlerFunc(corsHandler))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "ready",
			},
		})
	})

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
