package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	var got geocoder.Address
	g := &GoogleGeocoder{lookup: func(a geocoder.Address) (geocoder.Location, error) {
		got = a
		return geocoder.Location{Latitude: 29.7147, Longitude: -81.5036}, nil
	}}

	lat, lng, err := g.Geocode(context.Background(), "  100 Main St, Hastings, FL ")
	require.NoError(t, err)
	assert.Equal(t, 29.7147, lat)
	assert.Equal(t, -81.5036, lng)
	assert.Equal(t, "100+Main+St%2C+Hastings%2C+FL", got.Street)
}

func TestGeocodeEmptyAddress(t *testing.T) {
	g := &GoogleGeocoder{lookup: func(geocoder.Address) (geocoder.Location, error) {
		t.Fatal("lookup must not be called")
		return geocoder.Location{}, nil
	}}

	_, _, err := g.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestGeocodeLookupError(t *testing.T) {
	boom := errors.New("ZERO_RESULTS")
	g := &GoogleGeocoder{lookup: func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, boom
	}}

	_, _, err := g.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, boom)
}

func TestGeocodeContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	g := &GoogleGeocoder{lookup: func(geocoder.Address) (geocoder.Location, error) {
		<-release
		return geocoder.Location{}, nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := g.Geocode(ctx, "somewhere")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func withGeocodeServer(t *testing.T, handler http.HandlerFunc) *GoogleGeocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	prevURL, prevKey := geocoder.ApiUrl, geocoder.ApiKey
	t.Cleanup(func() {
		geocoder.ApiUrl, geocoder.ApiKey = prevURL, prevKey
	})
	geocoder.ApiUrl = srv.URL + "/json?"
	return NewGoogleGeocoder("maps-key")
}

func TestGeocodeEscapesAddress(t *testing.T) {
	g := withGeocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "100 Main St #4, Hastings & Co", q.Get("address"))
		assert.Equal(t, "maps-key", q.Get("key"))
		assert.Len(t, q, 2)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":29.7147,"lng":-81.5036}}}]}`))
	})

	lat, lng, err := g.Geocode(context.Background(), "100 Main St #4, Hastings & Co")
	require.NoError(t, err)
	assert.Equal(t, 29.7147, lat)
	assert.Equal(t, -81.5036, lng)
}

func TestGeocodeUnmappedStatus(t *testing.T) {
	g := withGeocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OVER_DAILY_LIMIT","results":[]}`))
	})

	_, _, err := g.Geocode(context.Background(), "100 Main St #4")
	assert.Error(t, err)
}

func TestGeocodeZeroResults(t *testing.T) {
	g := withGeocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	_, _, err := g.Geocode(context.Background(), "nowhere at all")
	assert.Error(t, err)
}
