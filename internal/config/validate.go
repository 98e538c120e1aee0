package config

import (
	"errors"
	"fmt"
)

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	if c.Server.Mode != "release" && c.Server.Mode != "debug" && c.Server.Mode != "test" {
		return fmt.Errorf("server.mode %q must be release, debug or test", c.Server.Mode)
	}
	if c.Admin.Secret == "" {
		return errors.New("admin.secret must be set")
	}
	if c.MySQL.Host == "" || c.MySQL.Database == "" {
		return errors.New("mysql.host and mysql.database must be set")
	}
	if c.Redis.Host == "" {
		return errors.New("redis.host must be set")
	}
	if c.Catalog.Path == "" {
		return errors.New("catalog.path must be set")
	}
	if (c.Gateway.KeyID == "") != (c.Gateway.KeySecret == "") {
		return errors.New("gateway.key_id and gateway.key_secret must be set together")
	}
	if c.Gateway.KeyID != "" && c.Gateway.BaseURL == "" {
		return errors.New("gateway.base_url must be set when gateway keys are configured")
	}
	if c.Checkout.CODSurcharge < 0 {
		return errors.New("checkout.cod_surcharge must not be negative")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.requests and rate_limit.window must be positive")
	}
	if c.RateLimit.SweepInterval <= 0 {
		return errors.New("rate_limit.sweep_interval must be positive")
	}
	return nil
}

// OnlinePayments reports whether gateway credentials are configured.
func (c Config) OnlinePayments() bool {
	return c.Gateway.KeyID != "" && c.Gateway.KeySecret != ""
}
