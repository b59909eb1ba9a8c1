package solar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightsBody = `{
  "solarPotential": {
    "maxSunshineHoursPerYear": 2900,
    "solarPanelConfigs": [
      {"panelsCount": 4, "yearlyEnergyDcKwh": 2000},
      {"panelsCount": 30, "yearlyEnergyDcKwh": 12000}
    ],
    "roofSegmentStats": [
      {"stats": {"areaMeters2": 50}},
      {"stats": {"areaMeters2": 25}}
    ]
  }
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *GoogleSolarProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGoogleSolarProvider(srv.Client(), "test-key", 0.13)
	p.baseURL = srv.URL
	p.api.retry.Base = time.Millisecond
	p.api.retry.Cap = 5 * time.Millisecond
	return p
}

func TestGoogleSolarProviderFetch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buildingInsights:findClosest", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "29.7147", q.Get("location.latitude"))
		assert.Equal(t, "-81.5036", q.Get("location.longitude"))
		assert.Equal(t, "HIGH", q.Get("requiredQuality"))
		assert.Equal(t, "test-key", q.Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(insightsBody))
	})

	sp, err := p.Fetch(context.Background(), Location{Lat: 29.7147, Lng: -81.5036})
	require.NoError(t, err)

	assert.Equal(t, 30, sp.MaxPanels)
	assert.InDelta(t, 10200.0, sp.AnnualProductionKWh, 1e-6)
	assert.InDelta(t, 1326.0, sp.EstimatedSavingsAnnual, 1e-6)
	assert.InDelta(t, 2900.0, sp.SunshineHoursPerYear, 1e-9)
	assert.InDelta(t, 75*10.764, sp.RoofAreaSqft, 1e-6)
	assert.Equal(t, 0.0, sp.OffsetPct)
	assert.Equal(t, "google_solar", sp.Source)
}

func TestGoogleSolarProviderNoPotential(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "buildings/x"}`))
	})

	_, err := p.Fetch(context.Background(), Location{Lat: 28.5, Lng: -81.4})
	assert.ErrorIs(t, err, ErrNoSolarData)
}

func TestGoogleSolarProviderEmptyConfigs(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"solarPotential": {"maxSunshineHoursPerYear": 1500}}`))
	})

	sp, err := p.Fetch(context.Background(), Location{Lat: 28.5, Lng: -81.4})
	require.NoError(t, err)
	assert.Equal(t, 0, sp.MaxPanels)
	assert.Equal(t, 0.0, sp.AnnualProductionKWh)
	assert.Equal(t, 1500.0, sp.SunshineHoursPerYear)
}

func TestGoogleSolarProviderRequiresKey(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	p.apiKey = ""

	_, err := p.Fetch(context.Background(), Location{Lat: 28.5, Lng: -81.4})
	assert.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGoogleSolarProviderRetriesServerErrors(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(insightsBody))
	})

	sp, err := p.Fetch(context.Background(), Location{Lat: 28.5, Lng: -81.4})
	require.NoError(t, err)
	assert.Equal(t, 30, sp.MaxPanels)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGoogleSolarProviderDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := p.Fetch(context.Background(), Location{Lat: 28.5, Lng: -81.4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnexpected))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGoogleSolarProviderGivesUpAfterRetries(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.Fetch(context.Background(), Location{Lat: 28.5, Lng: -81.4})
	assert.ErrorIs(t, err, errRateLimited)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestGoogleSolarProviderCircuitOpens(t *testing.T) {
	var calls int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})
	p.api.retry.Retries = 0

	loc := Location{Lat: 28.5, Lng: -81.4}
	for i := 0; i < 6; i++ {
		_, err := p.Fetch(context.Background(), loc)
		assert.ErrorIs(t, err, errServerError)
	}

	_, err := p.Fetch(context.Background(), loc)
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
}

func TestAPIClientConfig(t *testing.T) {
	c := newAPIClient("test", nil)
	_, err := c.get(context.Background(), "http://localhost")
	assert.ErrorIs(t, err, errNoHTTPClient)

	c = newAPIClient("test", http.DefaultClient)
	c.retry.Retries = -1
	_, err = c.get(context.Background(), "http://localhost")
	assert.ErrorIs(t, err, errInvalidConfig)
}

func TestRetryPolicyDelay(t *testing.T) {
	r := defaultRetryPolicy()
	assert.Equal(t, 500*time.Millisecond, r.delay(0))
	assert.Equal(t, time.Second, r.delay(1))
	assert.Equal(t, 2*time.Second, r.delay(2))
	assert.Equal(t, 4*time.Second, r.delay(3))
	assert.Equal(t, 5*time.Second, r.delay(4))
	assert.Equal(t, 5*time.Second, r.delay(60))
}
