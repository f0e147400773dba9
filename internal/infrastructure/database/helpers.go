package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrPoolNotInitialized = errors.New("database pool is not initialized")

// Ping kiểm tra database connection có còn sống không
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return ErrPoolNotInitialized
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close đóng tất cả connections trong pool. Safe to call multiple times.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("closing postgres pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats chứa thống kê về connection pool
type PoolStats struct {
	AcquiredConns      int32         `json:"acquired_conns"`
	IdleConns          int32         `json:"idle_conns"`
	TotalConns         int32         `json:"total_conns"`
	MaxConns           int32         `json:"max_conns"`
	AcquireCount       int64         `json:"acquire_count"`
	EmptyAcquireCount  int64         `json:"empty_acquire_count"`
	CanceledAcquires   int64         `json:"canceled_acquire_count"`
	AvgAcquireDuration time.Duration `json:"avg_acquire_duration"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, ErrPoolNotInitialized
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:      raw.AcquiredConns(),
		IdleConns:          raw.IdleConns(),
		TotalConns:         raw.TotalConns(),
		MaxConns:           raw.MaxConns(),
		AcquireCount:       raw.AcquireCount(),
		EmptyAcquireCount:  raw.EmptyAcquireCount(),
		CanceledAcquires:   raw.CanceledAcquireCount(),
		AvgAcquireDuration: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}

// utilization returns acquired/max as a percentage.
func (s *PoolStats) utilization() float64 {
	if s.MaxConns == 0 {
		return 0
	}
	return float64(s.AcquiredConns) / float64(s.MaxConns) * 100
}

// MonitorPoolHealth logs pool statistics every interval until ctx is done.
// Chạy trong goroutine riêng
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				log.Warn().Err(err).Msg("pool stats unavailable")
				continue
			}

			event := log.Debug()
			if stats.utilization() > 80 || stats.AvgAcquireDuration > 100*time.Millisecond {
				event = log.Warn()
			}
			event.
				Int32("total", stats.TotalConns).
				Int32("acquired", stats.AcquiredConns).
				Int32("idle", stats.IdleConns).
				Int32("max", stats.MaxConns).
				Dur("avg_acquire", stats.AvgAcquireDuration).
				Msg("postgres pool stats")

		case <-ctx.Done():
			return
		}
	}
}
