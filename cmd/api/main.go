package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/config"
	"bookstore-api/pkg/logger"
)

func main() {
	// Load từ .env file (nếu có) và environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.App.Debug)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting "+cfg.App.Name, map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	if cfg.UsesDefaultJWTSecret() {
		logger.Warn("JWT_SECRET is not set, using the development default", map[string]interface{}{
			"environment": cfg.App.Environment,
		})
	}

	Serve(cfg)
}
