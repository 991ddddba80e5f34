package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/classify"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/config"
)

// ClickHouseDB wraps a ClickHouse connection for condition analytics.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg config.ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	// Test the connection.
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the condition analytics table.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS conditions (
		station         LowCardinality(String),
		observed_at     DateTime64(3),
		category        LowCardinality(String),
		flight_category LowCardinality(String),
		score           Int32,
		hazards         String,
		factors_json    String,
		raw_text        String,
		recorded_at     DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(observed_at)
	ORDER BY (station, observed_at)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ConditionRow is one classified observation recorded for analytics.
type ConditionRow struct {
	Station    string
	ObservedAt time.Time
	RawText    string
	Condition  classify.Condition
}

// InsertCondition stores one classified observation.
func (d *ClickHouseDB) InsertCondition(ctx context.Context, row ConditionRow) error {
	factors, err := json.Marshal(row.Condition.Factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}

	hazards := make([]string, 0, len(row.Condition.Hazards))
	for _, h := range row.Condition.Hazards {
		hazards = append(hazards, h.Type)
	}

	err = d.conn.Exec(ctx, `
		INSERT INTO conditions (station, observed_at, category, flight_category, score, hazards, factors_json, raw_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Station, row.ObservedAt, row.Condition.Category.String(),
		row.Condition.FlightCategory, int32(row.Condition.Score),
		strings.Join(hazards, ","), string(factors), row.RawText)
	if err != nil {
		return fmt.Errorf("insert condition: %w", err)
	}
	return nil
}

// InsertConditionBatch stores classified observations in one batch.
func (d *ClickHouseDB) InsertConditionBatch(ctx context.Context, rows []ConditionRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO conditions (station, observed_at, category, flight_category, score, hazards, factors_json, raw_text)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, row := range rows {
		factors, err := json.Marshal(row.Condition.Factors)
		if err != nil {
			return fmt.Errorf("marshal factors: %w", err)
		}
		hazards := make([]string, 0, len(row.Condition.Hazards))
		for _, h := range row.Condition.Hazards {
			hazards = append(hazards, h.Type)
		}
		err = batch.Append(row.Station, row.ObservedAt, row.Condition.Category.String(),
			row.Condition.FlightCategory, int32(row.Condition.Score),
			strings.Join(hazards, ","), string(factors), row.RawText)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// CategoryCounts returns per-category observation counts for a station over
// a look-back window, for the analytics endpoint.
func (d *ClickHouseDB) CategoryCounts(ctx context.Context, station string, since time.Time) (map[string]uint64, error) {
	rows, err := d.conn.Query(ctx, `
		SELECT category, count() AS n
		FROM conditions
		WHERE station = ? AND observed_at >= ?
		GROUP BY category`, station, since)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]uint64)
	for rows.Next() {
		var category string
		var n uint64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out[category] = n
	}
	return out, rows.Err()
}
