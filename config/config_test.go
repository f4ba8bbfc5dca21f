package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PUBLIC_URL", "https://shop.example.com/")
	t.Setenv("TRACKING_INTERVAL", "not-a-duration")
	t.Setenv("PLACEMENT_CONCURRENCY", "-3")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://shop.example.com", cfg.PublicURL)
	assert.Equal(t, 10*time.Second, cfg.TrackingInterval)
	assert.Equal(t, 2*time.Second, cfg.PlacementDelay)
	assert.Equal(t, int64(16), cfg.PlacementConcurrency)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Empty(t, cfg.KafkaBroker)
}

func TestInitDBMemory(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("kv_entries"))
}
