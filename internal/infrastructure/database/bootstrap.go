package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const maintenanceDB = "postgres"

// Bootstrap creates cfg.DBName when it does not exist yet.
// It connects to the maintenance database with lib/pq since pgxpool needs the target database to exist.
func Bootstrap(ctx context.Context, cfg *DBConfig) error {
	conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN(maintenanceDB))
	if err != nil {
		return fmt.Errorf("connect maintenance database: %w", err)
	}
	defer conn.Close()

	created, err := ensureDatabase(ctx, conn, cfg.DBName)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("database", cfg.DBName).Msg("database created")
	}
	return nil
}

// ensureDatabase reports whether a CREATE DATABASE was issued.
func ensureDatabase(ctx context.Context, conn *sqlx.DB, name string) (bool, error) {
	var exists bool
	err := conn.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name)
	if err != nil {
		return false, fmt.Errorf("check database %q: %w", name, err)
	}
	if exists {
		return false, nil
	}

	// CREATE DATABASE does not accept bind parameters
	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+quoteIdentifier(name)); err != nil {
		return false, fmt.Errorf("create database %q: %w", name, err)
	}
	return true, nil
}

func quoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}
