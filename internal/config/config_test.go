package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dataforge", cfg.AppName)
	assert.EqualValues(t, 42, cfg.Seed)
	assert.Equal(t, 1000, cfg.Volumes.Customers)
	assert.Equal(t, 300, cfg.Volumes.Content)
	assert.Equal(t, 1200, cfg.Volumes.Subscriptions)
	assert.Equal(t, 20000, cfg.Volumes.UsageLogs)
	assert.Equal(t, 730, cfg.Generation.SignupLookbackDays)
	assert.Equal(t, 0.01, cfg.Validation.MaxRejectRate)
	assert.False(t, cfg.Validation.FailOnReject)
	assert.Equal(t, "sqlite", cfg.DBType)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GENERATION_SEED", "7")
	t.Setenv("VOLUME_CUSTOMERS", "50")
	t.Setenv("VALIDATION_FAIL_ON_REJECT", "true")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg := Load()
	assert.EqualValues(t, 7, cfg.Seed)
	assert.Equal(t, 50, cfg.Volumes.Customers)
	assert.True(t, cfg.Validation.FailOnReject)
	assert.Equal(t, "postgres", cfg.DBType)
}

func TestGetenvFallbacks(t *testing.T) {
	t.Setenv("VOLUME_CUSTOMERS", "not-a-number")
	t.Setenv("WEEKEND_BOOST", "nope")

	cfg := Load()
	assert.Equal(t, 1000, cfg.Volumes.Customers)
	assert.Equal(t, 1.5, cfg.Generation.WeekendBoost)
}
