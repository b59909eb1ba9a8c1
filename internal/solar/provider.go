package solar

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
)

// ErrNoSolarData is returned when a provider answers but has no usable data for a location.
var ErrNoSolarData = errors.New("no solar data for location")

// Location is a point for which solar potential is looked up.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Key returns a canonical key for caching; coordinates are rounded to four
// decimals (about 11 m).
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", round4(l.Lat), round4(l.Lng))
}

// Valid reports whether the coordinates are real latitude/longitude values.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Provider abstracts a solar potential source (e.g. Google Solar API).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (energy.SolarPotential, error)
}

// Entry is a cached lookup result.
type Entry struct {
	Location  Location
	Potential energy.SolarPotential
	FetchedAt time.Time
}

// Cache is the contract the in-memory store satisfies.
type Cache interface {
	Save(entry Entry)
	Get(loc Location) (Entry, error)
}
