package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: debug
mysql:
  host: db.internal
  database: storefront
admin:
  secret: from-file
checkout:
  cod_surcharge: 40
  pending_ttl: 15m
rate_limit:
  requests: 5
  window: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, "3306", cfg.MySQL.Port)
	assert.Equal(t, int64(40), cfg.Checkout.CODSurcharge)
	assert.Equal(t, 15*time.Minute, cfg.Checkout.PendingTTL)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "INR", cfg.Checkout.Currency)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "admin:\n  secret: from-file\n")
	t.Setenv("ADMIN_SECRET", "from-env")
	t.Setenv("MYSQL_HOST", "mysql")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Admin.Secret)
	assert.Equal(t, "mysql", cfg.MySQL.Host)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Server.TrustedProxies)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "server: [not, a, map]"))
	assert.ErrorContains(t, err, "failed to parse config file")

	t.Setenv("REDIS_DB", "zero")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, "invalid REDIS_DB")
}

func TestLoad_MissingDefaultFileIsOptional(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Admin.Secret = "s3cret"
	valid.MySQL.Host = "localhost"
	valid.MySQL.Database = "storefront"
	require.NoError(t, valid.Validate())
	assert.False(t, valid.OnlinePayments())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing admin secret", func(c *Config) { c.Admin.Secret = "" }, "admin.secret"},
		{"missing database", func(c *Config) { c.MySQL.Database = "" }, "mysql.host"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"half gateway keys", func(c *Config) { c.Gateway.KeyID = "key" }, "set together"},
		{"negative surcharge", func(c *Config) { c.Checkout.CODSurcharge = -1 }, "cod_surcharge"},
		{"zero rate limit", func(c *Config) { c.RateLimit.Requests = 0 }, "rate_limit"},
		{"zero sweep interval", func(c *Config) { c.RateLimit.SweepInterval = 0 }, "sweep_interval"},
		{"negative sweep interval", func(c *Config) { c.RateLimit.SweepInterval = -time.Second }, "sweep_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.wantErr)
		})
	}
}
