package server

import (
	"github.com/gaurav-prasanna/blockpipe/internal/logger"
	"github.com/gaurav-prasanna/blockpipe/server/handlers"
	"github.com/gaurav-prasanna/blockpipe/server/middleware"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	HealthHandler  *handlers.HealthHandler
	ConvertHandler *handlers.ConvertHandler
	ArticleHandler *handlers.ArticleHandler

	AllowedOrigins []string
	Log            *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Stateless conversions
		if cfg.ConvertHandler != nil {
			api.POST("/normalize", cfg.ConvertHandler.Normalize)
			api.POST("/editor", cfg.ConvertHandler.Editor)
			api.POST("/blocks", cfg.ConvertHandler.Blocks)
		}

		// Stored articles
		if cfg.ArticleHandler != nil {
			api.GET("/articles/:id", cfg.ArticleHandler.Get)
			api.GET("/articles/:id/editor", cfg.ArticleHandler.GetEditor)
			api.GET("/articles/:id/html", cfg.ArticleHandler.GetHTML)
			api.PUT("/articles/:id", cfg.ArticleHandler.Put)
		}
	}

	return r
}
