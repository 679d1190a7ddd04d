package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/huum-shop/storefront-api/internal/geo"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	ViaCEPBaseURL      string
	NominatimBaseURL   string
	NominatimUserAgent string
	UpstreamTimeout    time.Duration
	BreakerMaxFailures int
	BreakerOpenFor     time.Duration

	OriginLat       float64
	OriginLng       float64
	BasePrice       geo.Money
	PerKmRate       geo.Money
	MaxRadiusKm     float64
	FreeShippingMin geo.Money
	DeliveryDaysMin int
	DeliveryDaysMax int
	AllowedCities   []string
	OutsideAreaMsg  string
	CarrierName     string

	WhatsAppNumber  string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		ViaCEPBaseURL:      valueOrDefault(k.String("VIACEP_BASE_URL"), "https://viacep.com.br"),
		NominatimBaseURL:   valueOrDefault(k.String("NOMINATIM_BASE_URL"), "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: valueOrDefault(k.String("NOMINATIM_USER_AGENT"), "huum-storefront/1.0"),
		UpstreamTimeout:    parseDuration(k.String("UPSTREAM_TIMEOUT"), "8s"),
		BreakerMaxFailures: parseInt(k.String("BREAKER_MAX_FAILURES"), 5),
		BreakerOpenFor:     parseDuration(k.String("BREAKER_OPEN_FOR"), "30s"),

		OriginLat:       parseFloat(k.String("SHIPPING_ORIGIN_LAT"), -8.1130),
		OriginLng:       parseFloat(k.String("SHIPPING_ORIGIN_LNG"), -35.0147),
		BasePrice:       geo.Money(parseInt(k.String("SHIPPING_BASE_PRICE"), 500)),
		PerKmRate:       geo.Money(parseInt(k.String("SHIPPING_PER_KM_RATE"), 135)),
		MaxRadiusKm:     parseFloat(k.String("SHIPPING_MAX_RADIUS_KM"), 30),
		FreeShippingMin: geo.Money(parseInt(k.String("FREE_SHIPPING_MIN"), 29900)),
		DeliveryDaysMin: parseInt(k.String("DELIVERY_DAYS_MIN"), 1),
		DeliveryDaysMax: parseInt(k.String("DELIVERY_DAYS_MAX"), 3),
		AllowedCities: valuesOrDefault(splitAndTrim(k.String("SHIPPING_ALLOWED_CITIES")), []string{
			"Recife",
			"Jaboatão dos Guararapes",
			"Camaragibe",
			"São Lourenço da Mata",
			"Moreno",
		}),
		OutsideAreaMsg: valueOrDefault(k.String("SHIPPING_OUTSIDE_AREA_MESSAGE"), "Desculpe, no momento não entregamos na sua região."),
		CarrierName:    valueOrDefault(k.String("SHIPPING_CARRIER_NAME"), "Huum"),

		WhatsAppNumber:  valueOrDefault(k.String("WHATSAPP_NUMBER"), "5581986163513"),
		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 30),
		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
	}

	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.DeliveryDaysMin > cfg.DeliveryDaysMax {
		return nil, errors.New("DELIVERY_DAYS_MIN must not exceed DELIVERY_DAYS_MAX")
	}

	return cfg, nil
}

// ShippingPolicy builds the delivery policy from the loaded values.
func (c *Config) ShippingPolicy() geo.Policy {
	return geo.Policy{
		Origin:             geo.Coordinate{Lat: c.OriginLat, Lng: c.OriginLng},
		BasePrice:          c.BasePrice,
		PerKmRate:          c.PerKmRate,
		MaxRadiusKm:        c.MaxRadiusKm,
		FreeShippingMin:    c.FreeShippingMin,
		DeliveryDays:       geo.DeliveryDays{Min: c.DeliveryDaysMin, Max: c.DeliveryDaysMax},
		AllowedCities:      c.AllowedCities,
		OutsideAreaMessage: c.OutsideAreaMsg,
	}
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func valuesOrDefault(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
