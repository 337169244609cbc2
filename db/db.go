package db

import (
	"context"
	"fmt"
	"time"

	"dinein-dashboard/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

const pingTimeout = 5 * time.Second

// Init opens the shared pool used by the csv_files blob store and the
// migrations runner.
func Init(cfg config.DBConfig) error {
	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	Pool, err = pgxpool.NewWithConfig(context.Background(), pc)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return Pool.Ping(ctx)
}

func Close() {
	if Pool != nil {
		Pool.Close()
	}
}
