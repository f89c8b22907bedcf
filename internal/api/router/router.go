package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vidask/vidask/internal/api/handlers"
	"github.com/vidask/vidask/internal/api/middleware"
	"github.com/vidask/vidask/internal/config"
	"github.com/vidask/vidask/internal/models"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, analyzeHandler *handlers.AnalyzeHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())

	api := engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/health", healthHandler.Health)
	}

	// Frontend assets, when a build is present. Unknown non-API paths fall
	// back to index.html; unknown API paths always get a JSON 404.
	indexFile := ""
	if info, err := os.Stat(cfg.Server.StaticDir); err == nil && info.IsDir() {
		indexFile = filepath.Join(cfg.Server.StaticDir, "index.html")
		engine.StaticFile("/", indexFile)
		engine.Static("/static", cfg.Server.StaticDir)
	}
	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || indexFile == "" {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
			return
		}
		c.File(indexFile)
	})

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
