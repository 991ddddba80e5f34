// Package storage persists generated briefings and classified conditions.
// PostgreSQL holds the queryable briefing archive; ClickHouse takes one row
// per classified observation for analytics. Both are optional at runtime.
package storage

import (
	"context"
	"fmt"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/config"
)

// DB wraps both backing stores. Either field may be nil when that store is
// not configured; callers check before use.
type DB struct {
	PG *PostgresDB   // briefing archive
	CH *ClickHouseDB // condition analytics
}

// Open connects to whichever stores the configuration enables. An empty
// host disables that store without error.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	db := &DB{}

	if cfg.Postgres.Host != "" {
		pg, err := OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		db.PG = pg
	}

	if cfg.ClickHouse.Host != "" {
		ch, err := OpenClickHouse(ctx, cfg.ClickHouse)
		if err != nil {
			if db.PG != nil {
				db.PG.Close()
			}
			return nil, fmt.Errorf("clickhouse: %w", err)
		}
		db.CH = ch
	}

	return db, nil
}

// CreateSchemas creates the schemas in every connected store.
func (d *DB) CreateSchemas(ctx context.Context) error {
	if d.PG != nil {
		if err := d.PG.CreateSchema(ctx); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	if d.CH != nil {
		if err := d.CH.CreateSchema(ctx); err != nil {
			return fmt.Errorf("clickhouse schema: %w", err)
		}
	}
	return nil
}

// Close closes every connected store.
func (d *DB) Close() error {
	var first error
	if d.CH != nil {
		if err := d.CH.Close(); err != nil {
			first = fmt.Errorf("clickhouse: %w", err)
		}
	}
	if d.PG != nil {
		d.PG.Close()
	}
	return first
}
