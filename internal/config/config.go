// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the briefing service. Storage and
// ingest sections are optional; empty connection settings disable them.
type Config struct {
	// HTTP listen address, e.g. ":8080".
	ListenAddr string

	// Upstream fetch windows.
	MetarLookbackHours int
	PirepRadiusNM      int
	PirepLookbackHours int
	RequestTimeout     time.Duration

	// Airport coordinate cache (SQLite). Empty disables persistence.
	AirportCachePath string

	// Postgres briefing archive. Empty host disables.
	Postgres PostgresConfig

	// ClickHouse condition analytics sink. Empty host disables.
	ClickHouse ClickHouseConfig

	// NATS ingest. Empty URL disables.
	NATSURL     string
	NATSSubject string
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// Load reads configuration from the environment with local development
// defaults. A .env file is honoured when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg := &Config{
		ListenAddr:         getenvDefault("LISTEN_ADDR", ":8080"),
		MetarLookbackHours: getenvInt("METAR_LOOKBACK_HOURS", 2),
		PirepRadiusNM:      getenvInt("PIREP_RADIUS_NM", 50),
		PirepLookbackHours: getenvInt("PIREP_LOOKBACK_HOURS", 12),
		AirportCachePath:   os.Getenv("AIRPORT_CACHE_PATH"),
		NATSURL:            os.Getenv("NATS_URL"),
		NATSSubject:        getenvDefault("NATS_SUBJECT", "wx.reports.raw"),
	}

	timeoutStr := getenvDefault("REQUEST_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	cfg.Postgres = PostgresConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     getenvInt("POSTGRES_PORT", 5432),
		Database: getenvDefault("POSTGRES_DB", "briefings"),
		User:     getenvDefault("POSTGRES_USER", "briefing"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
	}
	cfg.ClickHouse = ClickHouseConfig{
		Host:     os.Getenv("CLICKHOUSE_HOST"),
		Port:     getenvInt("CLICKHOUSE_PORT", 9000),
		Database: getenvDefault("CLICKHOUSE_DB", "wx"),
		User:     getenvDefault("CLICKHOUSE_USER", "default"),
		Password: os.Getenv("CLICKHOUSE_PASSWORD"),
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
