package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when STOREFRONT_CONFIG is unset. A missing default file is not an error.
const DefaultPath = "config.yaml"

// Load reads the YAML file at path over the defaults, then applies environment overrides.
// An empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	optional := false
	if path == "" {
		path = DefaultPath
		optional = true
	}

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"PORT":               &cfg.Server.Port,
		"GIN_MODE":           &cfg.Server.Mode,
		"MYSQL_USER":         &cfg.MySQL.User,
		"MYSQL_PASSWORD":     &cfg.MySQL.Password,
		"MYSQL_HOST":         &cfg.MySQL.Host,
		"MYSQL_PORT":         &cfg.MySQL.Port,
		"MYSQL_DATABASE":     &cfg.MySQL.Database,
		"REDIS_HOST":         &cfg.Redis.Host,
		"REDIS_PORT":         &cfg.Redis.Port,
		"RABBITMQ_URL":       &cfg.RabbitMQ.URL,
		"ADMIN_SECRET":       &cfg.Admin.Secret,
		"GATEWAY_BASE_URL":   &cfg.Gateway.BaseURL,
		"GATEWAY_KEY_ID":     &cfg.Gateway.KeyID,
		"GATEWAY_KEY_SECRET": &cfg.Gateway.KeySecret,
		"CATALOG_PATH":       &cfg.Catalog.Path,
		"LOG_LEVEL":          &cfg.Log.Level,
		"LOG_FORMAT":         &cfg.Log.Format,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.Server.TrustedProxies = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Server.TrustedProxies = append(cfg.Server.TrustedProxies, p)
			}
		}
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = n
	}
	return nil
}
