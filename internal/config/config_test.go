package config

import (
	"testing"
	"time"

	"jugadubazar/internal/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Hour, cfg.CartSessionTTL)
	assert.True(t, cfg.Checkout.SplitSupplierFees)

	got := cfg.Checkout.Policies()
	want := checkout.DefaultPolicies()
	assert.True(t, got.Simple.FreeDeliveryThreshold.Equal(want.Simple.FreeDeliveryThreshold))
	assert.True(t, got.Grouped.FreeDeliveryThreshold.Equal(want.Grouped.FreeDeliveryThreshold))
	assert.True(t, got.Grouped.TaxRate.Equal(want.Grouped.TaxRate))
	assert.True(t, got.Grouped.ExpressRate.Equal(want.Grouped.ExpressRate))
	assert.True(t, got.Simple.TaxRate.IsZero())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CHECKOUT_FREE_DELIVERY_THRESHOLD_SIMPLE", "750")
	t.Setenv("CHECKOUT_SPLIT_SUPPLIER_FEES", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "750", cfg.Checkout.FreeDeliveryThresholdSimple.String())
	assert.False(t, cfg.Checkout.Policies().Grouped.SplitSupplierFees)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromEnvRejectsNegative(t *testing.T) {
	t.Setenv("CHECKOUT_TAX_RATE", "-0.5")
	_, err := FromEnv()
	require.Error(t, err)
}
