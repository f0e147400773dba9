package config

import (
	"bookstore-api/internal/infrastructure/database"
)

// LoadDatabaseConfig chuyển DatabaseConfig thành DBConfig cho infrastructure layer
func (c *Config) LoadDatabaseConfig() *database.DBConfig {
	db := c.Database
	return &database.DBConfig{
		Host:              db.Host,
		Port:              db.Port,
		Username:          db.User,
		Password:          db.Password,
		DBName:            db.Database,
		SSLMode:           db.SSLMode,
		MaxConns:          int32(db.MaxConns),
		MinConns:          int32(db.MinConns),
		MaxConnLifetime:   db.MaxConnLifetime,
		MaxConnIdleTime:   db.MaxConnIdleTime,
		HealthCheckPeriod: db.HealthCheckPeriod,
		MaxRetries:        db.MaxRetries,
		RetryDelay:        db.RetryDelay,
		ConnectTimeout:    db.ConnectTimeout,
	}
}
