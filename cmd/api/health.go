package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/pkg/container"
)

const healthProbeTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// probe reports "ok", "disconnected" for a missing dependency, or "error".
// The cause is logged only.
func probe(ctx context.Context, name string, p pinger) string {
	if p == nil {
		return "disconnected"
	}

	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("service", name).Msg("health probe failed")
		return "error"
	}
	return "ok"
}

// healthCheckHandler - GET /api/health. 503 when the database is not reachable; Redis is optional.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var db, store pinger
		if appCtx.DB != nil {
			db = appCtx.DB
		}
		if appCtx.Cache != nil {
			store = appCtx.Cache
		}

		dbStatus := probe(c.Request.Context(), "database", db)
		redisStatus := probe(c.Request.Context(), "redis", store)

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "degraded"
		} else if stats := poolStats(appCtx.DB); stats != nil {
			health["pool"] = stats
		}

		c.JSON(statusCode, health)
	}
}

func poolStats(db *database.PostgresDB) *database.PoolStats {
	if db == nil {
		return nil
	}
	stats, err := db.Stats()
	if err != nil {
		return nil
	}
	return stats
}
