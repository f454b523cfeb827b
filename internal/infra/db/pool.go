// Package db holds what the mysql and postgres history stores share.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Pool sizes the connection pool. Zero fields fall back to the defaults below.
type Pool struct {
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

const (
	defaultMaxOpen     = 25
	defaultMaxIdle     = 10
	defaultMaxLifetime = 30 * time.Minute
	pingTimeout        = 5 * time.Second
)

// Open opens and pings a pool for an already registered driver.
func Open(ctx context.Context, driver, dsn string, pool Pool) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	conn.SetMaxOpenConns(orDefault(pool.MaxOpenConns, defaultMaxOpen))
	conn.SetMaxIdleConns(orDefault(pool.MaxIdleConns, defaultMaxIdle))
	lifetime := pool.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = defaultMaxLifetime
	}
	conn.SetConnMaxLifetime(lifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return conn, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
