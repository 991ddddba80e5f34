package airports

import (
	"context"
	"log"
)

// CoordSource supplies coordinates for stations outside the builtin table.
// upstream.Client implements it via the provider's station-info endpoint.
type CoordSource interface {
	StationInfo(ctx context.Context, station string) (lat, lon float64, ok bool, err error)
}

// Resolver layers coordinate sources: builtin table, then the SQLite cache,
// then the upstream provider. Provider hits are written back to the cache.
// Both store and source may be nil; the resolver degrades to the layers it
// has.
type Resolver struct {
	store  *Store
	source CoordSource
}

// NewResolver builds a layered resolver.
func NewResolver(store *Store, source CoordSource) *Resolver {
	return &Resolver{store: store, source: source}
}

// Resolve looks a station up through every configured layer. Lookup errors
// are logged and treated as a miss; an unknown station never fails a
// briefing.
func (r *Resolver) Resolve(ctx context.Context, icao string) (Coordinates, bool) {
	if c, ok := Lookup(icao); ok {
		return c, true
	}

	if r.store != nil {
		c, ok, err := r.store.Get(icao)
		if err != nil {
			log.Printf("airports: cache lookup for %s: %v", icao, err)
		} else if ok {
			return c, true
		}
	}

	if r.source != nil {
		lat, lon, ok, err := r.source.StationInfo(ctx, icao)
		if err != nil {
			log.Printf("airports: station info for %s: %v", icao, err)
			return Coordinates{}, false
		}
		if !ok {
			return Coordinates{}, false
		}
		c := Coordinates{Lat: lat, Lon: lon}
		if r.store != nil {
			if err := r.store.Put(icao, c); err != nil {
				log.Printf("airports: cache write for %s: %v", icao, err)
			}
		}
		return c, true
	}

	return Coordinates{}, false
}

// RouteDistanceNM sums leg distances along a route, resolving each station
// through the layered sources. Legs with an unknown endpoint contribute
// nothing.
func (r *Resolver) RouteDistanceNM(ctx context.Context, stations []string) float64 {
	total := 0.0
	for i := 0; i+1 < len(stations); i++ {
		from, okFrom := r.Resolve(ctx, stations[i])
		to, okTo := r.Resolve(ctx, stations[i+1])
		if !okFrom || !okTo {
			continue
		}
		total += DistanceNM(from, to)
	}
	return total
}
