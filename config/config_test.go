package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"ENV", "PORT", "STORAGE_DRIVER", "DEV_DB_HOST", "PROD_DB_HOST", "PROD_DB_NAME",
		"LOCK_BACKEND", "LOCK_TIMEOUT", "PENDING_TTL", "LENIENT_CHECKOUT", "REDIS_ADDR",
		"EXPIRE_PENDING_CRON", "RATING_CACHE_TTL", "STORAGE_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, StorageMemory, cfg.StorageDriver, "no db host means memory storage")
	assert.Equal(t, LockMemory, cfg.LockBackend)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, 3*time.Second, cfg.StorageTimeout)
	assert.Equal(t, 24*time.Hour, cfg.PendingTTL)
	assert.Equal(t, 10*time.Minute, cfg.RatingCacheTTL)
	assert.True(t, cfg.LenientCheckout)
	assert.Equal(t, "*/5 * * * *", cfg.ExpirePendingCron)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_DB_NAME", "hotel")
	t.Setenv("LOCK_BACKEND", "redis")
	t.Setenv("LOCK_TIMEOUT", "750ms")
	t.Setenv("LENIENT_CHECKOUT", "false")
	t.Setenv("PENDING_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, LockRedis, cfg.LockBackend)
	assert.Equal(t, 750*time.Millisecond, cfg.LockTimeout)
	assert.False(t, cfg.LenientCheckout)
	assert.Equal(t, 24*time.Hour, cfg.PendingTTL, "bad values fall back")
	assert.Contains(t, cfg.DB.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DB.DSN(), "dbname=hotel")
	assert.Contains(t, cfg.DB.DSN(), "sslmode=require")
}

func TestInitAppWithMemoryStorage(t *testing.T) {
	clearEnv(t)
	app, err := InitApp(Load(), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Facade)
	assert.Nil(t, app.Redis)
	require.NoError(t, app.InitCronJobs())
}

func TestInitAppRejectsRedisLockWithoutRedis(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOCK_BACKEND", "redis")
	_, err := InitApp(Load(), nil)
	assert.Error(t, err)
}
