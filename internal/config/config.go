package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/gridsight-site-planner/internal/solar"
)

type AppConfig struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string
	LogLevel    string

	GoogleSolarAPIKey string
	GoogleMapsAPIKey  string

	// HTTPTimeout bounds every outbound API call.
	HTTPTimeout time.Duration

	// SolarRatePerKWh prices solar savings.
	SolarRatePerKWh float64

	// Solar cache retention.
	SolarCacheMaxEntries int           // 0 = unlimited
	SolarCacheMaxAge     time.Duration // 0 = unlimited

	// RefreshInterval controls how often warm sites are refreshed and the cache pruned.
	RefreshInterval time.Duration

	// WarmSites are kept in the solar cache.
	WarmSites []solar.Location

	AllowedOrigins []string
}

var defaults = map[string]any{
	"APP_NAME":                "gridsight-site-planner",
	"APP_VERSION":             "v20260209-001",
	"ENVIRONMENT":             "dev",
	"PORT":                    "7146",
	"LOG_LEVEL":               "info",
	"GOOGLE_SOLAR_API_KEY":    "",
	"GOOGLE_MAPS_API_KEY":     "",
	"HTTP_TIMEOUT":            "30s",
	"SOLAR_RATE_PER_KWH":      "0.13",
	"SOLAR_CACHE_MAX_ENTRIES": "1024",
	"SOLAR_CACHE_MAX_AGE":     "24h",
	"SOLAR_REFRESH_INTERVAL":  "60m",
	"SOLAR_WARM_SITES":        "",
	"CORS_ALLOWED_ORIGINS":    "https://gridsight.acidni.net,https://gridsight-dev.acidni.net,http://localhost:3000,http://localhost:5173",
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		AppName:           v.GetString("APP_NAME"),
		AppVersion:        v.GetString("APP_VERSION"),
		Environment:       v.GetString("ENVIRONMENT"),
		Port:              v.GetString("PORT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		GoogleSolarAPIKey: v.GetString("GOOGLE_SOLAR_API_KEY"),
		GoogleMapsAPIKey:  v.GetString("GOOGLE_MAPS_API_KEY"),
	}

	var err error
	if cfg.HTTPTimeout, err = duration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SolarCacheMaxAge, err = duration(v, "SOLAR_CACHE_MAX_AGE"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = duration(v, "SOLAR_REFRESH_INTERVAL"); err != nil {
		return nil, err
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(v.GetString("SOLAR_RATE_PER_KWH")), 64)
	if err != nil || rate < 0 {
		return nil, fmt.Errorf("invalid SOLAR_RATE_PER_KWH %q", v.GetString("SOLAR_RATE_PER_KWH"))
	}
	cfg.SolarRatePerKWh = rate

	maxEntries, err := strconv.Atoi(strings.TrimSpace(v.GetString("SOLAR_CACHE_MAX_ENTRIES")))
	if err != nil {
		return nil, fmt.Errorf("invalid SOLAR_CACHE_MAX_ENTRIES: %w", err)
	}
	cfg.SolarCacheMaxEntries = maxEntries

	sites, err := parseSites(v.GetString("SOLAR_WARM_SITES"))
	if err != nil {
		return nil, err
	}
	cfg.WarmSites = sites

	origins, err := parseOrigins(v.GetString("CORS_ALLOWED_ORIGINS"))
	if err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = origins

	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// parseSites parses "lat,lng;lat,lng".
func parseSites(s string) ([]solar.Location, error) {
	var sites []solar.Location
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid SOLAR_WARM_SITES entry %q: want lat,lng", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SOLAR_WARM_SITES latitude %q: %w", parts[0], err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SOLAR_WARM_SITES longitude %q: %w", parts[1], err)
		}
		loc := solar.Location{Lat: lat, Lng: lng}
		if !loc.Valid() {
			return nil, fmt.Errorf("SOLAR_WARM_SITES entry %q out of range", pair)
		}
		sites = append(sites, loc)
	}
	return sites, nil
}

// parseOrigins accepts either "*" alone or a list of scheme://host origins.
func parseOrigins(s string) ([]string, error) {
	origins := splitList(s)
	for _, o := range origins {
		if o == "*" {
			if len(origins) > 1 {
				return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: \"*\" cannot be combined with other origins")
			}
			continue
		}
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS entry %q", o)
		}
	}
	return origins, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
