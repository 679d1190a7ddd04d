package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huum-shop/storefront-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL": "redis://localhost:6379/0",
	})
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.EqualValues(t, 500, cfg.BasePrice)
	require.EqualValues(t, 135, cfg.PerKmRate)
	require.EqualValues(t, 29900, cfg.FreeShippingMin)
	require.InDelta(t, 30, cfg.MaxRadiusKm, 0.001)
	require.Equal(t, 1, cfg.DeliveryDaysMin)
	require.Equal(t, 3, cfg.DeliveryDaysMax)
	require.Len(t, cfg.AllowedCities, 5)
	require.Contains(t, cfg.AllowedCities, "Recife")
	require.Equal(t, 8*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, "5581986163513", cfg.WhatsAppNumber)
}

func TestLoadRequiresRedis(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"REDIS_URL": "",
	})
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":               "redis://localhost:6379/0",
		"PORT":                    "9090",
		"SHIPPING_BASE_PRICE":     "700",
		"SHIPPING_ALLOWED_CITIES": "Recife, Olinda",
		"RATE_LIMIT_WINDOW":       "30s",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.EqualValues(t, 700, cfg.BasePrice)
	require.Equal(t, []string{"Recife", "Olinda"}, cfg.AllowedCities)
	require.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestShippingPolicy(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL": "redis://localhost:6379/0",
	})
	require.NoError(t, err)

	policy := cfg.ShippingPolicy()
	require.InDelta(t, -8.1130, policy.Origin.Lat, 1e-9)
	require.InDelta(t, -35.0147, policy.Origin.Lng, 1e-9)
	require.True(t, policy.CityServed("recife"))
	require.False(t, policy.CityServed("Olinda"))
	require.Equal(t, "Desculpe, no momento não entregamos na sua região.", policy.OutsideAreaMessage)
}

func TestDeliveryWindowValidation(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"REDIS_URL":         "redis://localhost:6379/0",
		"DELIVERY_DAYS_MIN": "5",
		"DELIVERY_DAYS_MAX": "2",
	})
	require.Error(t, err)
}
