package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8080")
	}
	if cfg.MetarLookbackHours != 2 {
		t.Errorf("MetarLookbackHours = %d, want 2", cfg.MetarLookbackHours)
	}
	if cfg.PirepRadiusNM != 50 {
		t.Errorf("PirepRadiusNM = %d, want 50", cfg.PirepRadiusNM)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("METAR_LOOKBACK_HOURS", "4")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9090")
	}
	if cfg.MetarLookbackHours != 4 {
		t.Errorf("MetarLookbackHours = %d, want 4", cfg.MetarLookbackHours)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %q, want %q", cfg.Postgres.Host, "db.internal")
	}
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("PIREP_RADIUS_NM", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PirepRadiusNM != 50 {
		t.Errorf("PirepRadiusNM = %d, want default 50 on bad value", cfg.PirepRadiusNM)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load err = nil, want error for invalid REQUEST_TIMEOUT")
	}
}
