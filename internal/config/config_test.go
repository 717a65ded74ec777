package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("PORTAL_INT", "42")
	t.Setenv("PORTAL_BAD_INT", "x")
	t.Setenv("PORTAL_BOOL", "false")

	assert.Equal(t, 42, EnvIntDefault("PORTAL_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("PORTAL_BAD_INT", 1))
	assert.Equal(t, 7, EnvIntDefault("PORTAL_UNSET_INT", 7))
	assert.False(t, EnvBoolDefault("PORTAL_BOOL", true))
	assert.True(t, EnvBoolDefault("PORTAL_UNSET_BOOL", true))
	assert.Equal(t, "def", EnvDefault("PORTAL_UNSET_STR", "def"))
}

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/portal")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()
	require.True(t, cfg.Configured())
	assert.Empty(t, cfg.Missing())
	assert.Equal(t, []byte("secret.refresh"), cfg.JWTRefreshSecret)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "portal_events", cfg.KafkaTopic)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestSetupMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.False(t, cfg.Configured())
	assert.Equal(t, []string{"DATABASE_URL", "JWT_SECRET"}, cfg.Missing())
}

func TestDefaultZoneIsEmbedded(t *testing.T) {
	loc := LocationDefault("", "Africa/Blantyre")
	require.Equal(t, "Africa/Blantyre", loc.String())
	_, offset := time.Date(2026, 10, 14, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, 2*60*60, offset)
}

func TestProxySettings(t *testing.T) {
	t.Setenv("TRUST_PROXY", "")
	t.Setenv("PUBLIC_SCHEME", "")
	cfg := Load()
	assert.False(t, cfg.TrustProxy)
	assert.Empty(t, cfg.PublicScheme)

	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("PUBLIC_SCHEME", "HTTPS")
	cfg = Load()
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, "https", cfg.PublicScheme)
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, LocationDefault("Not/AZone", "UTC"))
}
