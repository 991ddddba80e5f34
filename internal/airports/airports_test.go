package airports

import (
	"math"
	"path/filepath"
	"testing"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup("KJFK")
	if !ok {
		t.Fatal("Lookup(KJFK) ok = false, want true")
	}
	if c.Lat != 40.6413 || c.Lon != -73.7781 {
		t.Errorf("Lookup(KJFK) = %+v, want 40.6413,-73.7781", c)
	}

	if _, ok := Lookup("ZZZZ"); ok {
		t.Error("Lookup(ZZZZ) ok = true, want false")
	}

	// Case-insensitive.
	if _, ok := Lookup("kjfk"); !ok {
		t.Error("Lookup(kjfk) ok = false, want true")
	}
}

func TestDistanceNM(t *testing.T) {
	jfk, _ := Lookup("KJFK")
	lax, _ := Lookup("KLAX")

	d := DistanceNM(jfk, lax)
	// Great-circle JFK-LAX is roughly 2140 NM.
	if math.Abs(d-2140) > 50 {
		t.Errorf("DistanceNM(JFK, LAX) = %.0f, want about 2140", d)
	}

	if d := DistanceNM(jfk, jfk); d != 0 {
		t.Errorf("DistanceNM(JFK, JFK) = %g, want 0", d)
	}
}

func TestRouteDistanceNM(t *testing.T) {
	direct := RouteDistanceNM([]string{"KJFK", "KLAX"})
	viaOrd := RouteDistanceNM([]string{"KJFK", "KORD", "KLAX"})
	if viaOrd <= direct {
		t.Errorf("route via KORD = %.0f, want longer than direct %.0f", viaOrd, direct)
	}

	// Unknown stations contribute nothing.
	if d := RouteDistanceNM([]string{"KJFK", "ZZZZ", "KLAX"}); d != 0 {
		t.Errorf("RouteDistanceNM with unknown midpoint = %g, want 0", d)
	}
	if d := RouteDistanceNM([]string{"KJFK"}); d != 0 {
		t.Errorf("RouteDistanceNM single stop = %g, want 0", d)
	}
}

func TestRouteCenter(t *testing.T) {
	c := RouteCenter([]string{"KJFK", "KLAX"})
	if c.Lat < 34 || c.Lat > 41 {
		t.Errorf("RouteCenter lat = %g, want between endpoints", c.Lat)
	}

	fallback := RouteCenter([]string{"ZZZZ"})
	if fallback.Lat != 39.8283 {
		t.Errorf("RouteCenter fallback = %+v, want default center", fallback)
	}
}

func TestStore(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "airports.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	// Builtin entries resolve without a cache row.
	c, ok, err := store.Get("KJFK")
	if err != nil || !ok {
		t.Fatalf("Get(KJFK) = %v, %v, %v", c, ok, err)
	}

	// Unknown until cached.
	if _, ok, _ := store.Get("CYYZ"); ok {
		t.Error("Get(CYYZ) ok = true before Put")
	}
	if err := store.Put("CYYZ", Coordinates{Lat: 43.6777, Lon: -79.6248}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	c, ok, err = store.Get("CYYZ")
	if err != nil || !ok {
		t.Fatalf("Get(CYYZ) after Put = %v, %v, %v", c, ok, err)
	}
	if c.Lat != 43.6777 {
		t.Errorf("cached Lat = %g, want 43.6777", c.Lat)
	}

	// Put is an upsert.
	if err := store.Put("CYYZ", Coordinates{Lat: 43.7, Lon: -79.6}); err != nil {
		t.Fatalf("Put update: %v", err)
	}
	n, err := store.Count()
	if err != nil || n != 1 {
		t.Errorf("Count = %d, %v, want 1", n, err)
	}
}
