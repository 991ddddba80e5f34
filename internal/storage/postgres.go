package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/config"
)

// PostgresDB wraps a PostgreSQL connection pool for the briefing archive.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Test the connection.
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the briefing archive tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS briefings (
		id              SERIAL PRIMARY KEY,
		route           TEXT NOT NULL,
		overall         TEXT NOT NULL,
		risk_tier       TEXT NOT NULL,
		max_score       INTEGER NOT NULL,
		mean_score      DOUBLE PRECISION NOT NULL,
		distance_nm     DOUBLE PRECISION,
		payload         JSONB NOT NULL,
		generated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_briefings_route ON briefings(route);
	CREATE INDEX IF NOT EXISTS idx_briefings_generated ON briefings(generated_at);
	CREATE INDEX IF NOT EXISTS idx_briefings_overall ON briefings(overall);
	`
	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ArchivedBriefing is one stored route briefing.
type ArchivedBriefing struct {
	ID          int64
	Route       string
	Overall     string
	RiskTier    string
	MaxScore    int
	MeanScore   float64
	DistanceNM  float64
	Payload     json.RawMessage
	GeneratedAt time.Time
}

// SaveBriefing archives a generated briefing and returns its row ID. The
// payload is the full aggregate structure handed to the presentation layer.
func (d *PostgresDB) SaveBriefing(ctx context.Context, route, overall, riskTier string, maxScore int, meanScore, distanceNM float64, payload interface{}) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal briefing payload: %w", err)
	}

	var id int64
	err = d.pool.QueryRow(ctx, `
		INSERT INTO briefings (route, overall, risk_tier, max_score, mean_score, distance_nm, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		route, overall, riskTier, maxScore, meanScore, distanceNM, body).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert briefing: %w", err)
	}
	return id, nil
}

// RecentBriefings returns the newest archived briefings for a route, newest
// first. An empty route matches every route.
func (d *PostgresDB) RecentBriefings(ctx context.Context, route string, limit int) ([]ArchivedBriefing, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, route, overall, risk_tier, max_score, mean_score, COALESCE(distance_nm, 0), payload, generated_at
		FROM briefings`
	args := []interface{}{}
	if route != "" {
		query += ` WHERE route = $1`
		args = append(args, route)
	}
	query += fmt.Sprintf(` ORDER BY generated_at DESC LIMIT %d`, limit)

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query briefings: %w", err)
	}
	defer rows.Close()

	var out []ArchivedBriefing
	for rows.Next() {
		var b ArchivedBriefing
		if err := rows.Scan(&b.ID, &b.Route, &b.Overall, &b.RiskTier, &b.MaxScore, &b.MeanScore, &b.DistanceNM, &b.Payload, &b.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan briefing: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetBriefing fetches one archived briefing by ID.
func (d *PostgresDB) GetBriefing(ctx context.Context, id int64) (*ArchivedBriefing, error) {
	var b ArchivedBriefing
	err := d.pool.QueryRow(ctx, `
		SELECT id, route, overall, risk_tier, max_score, mean_score, COALESCE(distance_nm, 0), payload, generated_at
		FROM briefings WHERE id = $1`, id).
		Scan(&b.ID, &b.Route, &b.Overall, &b.RiskTier, &b.MaxScore, &b.MeanScore, &b.DistanceNM, &b.Payload, &b.GeneratedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get briefing: %w", err)
	}
	return &b, nil
}
