package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kelvins/geocoder"
)

// ErrEmptyAddress is returned when there is nothing to geocode.
var ErrEmptyAddress = errors.New("address is empty")

// GoogleGeocoder resolves street addresses with the Google Geocoding API.
type GoogleGeocoder struct {
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder configures the geocoder package with the Maps API key.
// The key is process-wide in the underlying library.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{lookup: geocoder.Geocoding}
}

type result struct {
	loc geocoder.Location
	err error
}

// Geocode returns the latitude and longitude of a free-form address.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return 0, 0, ErrEmptyAddress
	}

	// The library has no context support; run it aside so callers can give up.
	ch := make(chan result, 1)
	go func() {
		// The library indexes the first result without checking for one on
		// statuses it does not recognise (OVER_DAILY_LIMIT).
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("geocoder: %v", r)}
			}
		}()
		// The library splices the address into the URL as is.
		loc, err := g.lookup(geocoder.Address{Street: url.QueryEscape(address)})
		ch <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return 0, 0, fmt.Errorf("geocode %q: %w", address, r.err)
		}
		return r.loc.Latitude, r.loc.Longitude, nil
	}
}
