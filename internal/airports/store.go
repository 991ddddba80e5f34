package airports

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed coordinate cache layered over the builtin table.
// It persists station coordinates learned from upstream station-info
// responses so unknown fields resolve across restarts.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the cache database at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS airports (
		icao TEXT PRIMARY KEY,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		updated_at TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records coordinates for a station, replacing any previous entry.
func (s *Store) Put(icao string, c Coordinates) error {
	_, err := s.db.Exec(`
		INSERT INTO airports (icao, latitude, longitude, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(icao) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			updated_at = excluded.updated_at`,
		strings.ToUpper(icao), c.Lat, c.Lon, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put airport: %w", err)
	}
	return nil
}

// Get resolves a station through the builtin table first, then the cache.
func (s *Store) Get(icao string) (Coordinates, bool, error) {
	if c, ok := Lookup(icao); ok {
		return c, true, nil
	}

	var c Coordinates
	err := s.db.QueryRow(
		`SELECT latitude, longitude FROM airports WHERE icao = ?`,
		strings.ToUpper(icao)).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return Coordinates{}, false, nil
	}
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("get airport: %w", err)
	}
	return c, true, nil
}

// Count returns the number of cached stations, not counting the builtin set.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM airports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count airports: %w", err)
	}
	return n, nil
}
