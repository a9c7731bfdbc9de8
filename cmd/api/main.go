package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/api"
	"pricing-simulator/internal/config"
	"pricing-simulator/internal/data"
)

func main() {
	configPath := flag.String("config", os.Getenv("PRICING_CONFIG"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.ConfigureLogger(cfg.Logging); err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	if wd, err := os.Getwd(); err == nil {
		logrus.Infof("Working directory: %s", wd)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cache := data.NewDatasetCache(data.NewLoader(cfg.Dataset.LoaderOptions()))

	// Warm the cache so the first request does not pay for parsing.
	// A failure here is not fatal: the file may appear later.
	if ds, err := cache.Get(cfg.Dataset.Path); err != nil {
		logrus.WithError(err).Warnf("Dataset %s not loaded at startup", cfg.Dataset.Path)
	} else {
		logrus.Infof("Dataset %s ready: %d transactions, %d products", ds.Path, len(ds.Transactions), len(ds.Products))
	}

	router := api.NewRouter(cfg, cache)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logrus.Infof("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
