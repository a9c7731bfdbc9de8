// Package api wires the HTTP surface: middleware, routes and static files.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/api/handlers"
	"pricing-simulator/internal/api/middleware"
	"pricing-simulator/internal/config"
	"pricing-simulator/internal/data"
)

// NewRouter builds the gin engine for cfg. Every dataset read goes through cache.
func NewRouter(cfg *config.Config, cache *data.DatasetCache) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.Metrics())

	source := handlers.DatasetSource{Cache: cache, Path: cfg.Dataset.Path}
	simulationHandler := handlers.NewSimulationHandler(source, cfg.Simulation)
	parameterHandler := handlers.NewParameterHandler(cfg.Simulation)
	datasetHandler := handlers.NewDatasetHandler(source)
	rankHandler := handlers.NewRankHandler(source, cfg.Simulation)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	{
		api.GET("/parameters", parameterHandler.ListParameters)
		api.GET("/dataset", datasetHandler.GetDataset)

		api.POST("/simulate", simulationHandler.Simulate)
		api.POST("/simulate/compare", simulationHandler.Compare)

		api.GET("/rank", rankHandler.RankProducts)
	}

	mountStatic(router, cfg.Server.StaticDir)
	return router
}

// mountStatic serves a built SPA from dir when it exists, falling back to
// index.html for client-side routes.
func mountStatic(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		logrus.Infof("Static directory %s not found, skipping static file serving", dir)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	logrus.Infof("Serving static files from %s", dir)
}
