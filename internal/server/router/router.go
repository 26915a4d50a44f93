package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(sessions *handlers.SessionHandler, nutrition *handlers.NutritionHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.POST("/sessions", sessions.Open)

	authed := r.Group("/", sessions.RequireSession())
	authed.DELETE("/sessions/current", sessions.Close)
	authed.GET("/categories", nutrition.Categories)
	authed.GET("/weights", nutrition.Weights)
	authed.GET("/feeds", nutrition.Feeds)
	authed.GET("/diet", sessions.Diet)
	authed.POST("/diet/rows", sessions.AddRow)
	authed.PUT("/diet/rows/:index", sessions.UpdateRow)
	authed.DELETE("/diet/rows/:index", sessions.RemoveRow)
	authed.POST("/evaluations", nutrition.Evaluate)
	authed.POST("/catalog/reload", nutrition.Reload)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
