// Package config loads the storefront configuration from a YAML file overlaid by
// environment variables. The result is built once in main and passed down.
package config

import "time"

type ServerSection struct {
	Port string `yaml:"port"`
	// Mode is the gin mode: "release" or "debug".
	Mode              string        `yaml:"mode"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding headers
	// are believed when resolving the client IP. Empty trusts none.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type MySQLSection struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Database        string        `yaml:"database"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisSection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type RabbitMQSection struct {
	// URL may be empty, in which case events are dropped.
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type AdminSection struct {
	// Secret is the single shared credential for every administrative operation.
	Secret string `yaml:"secret"`
}

type GatewaySection struct {
	BaseURL   string        `yaml:"base_url"`
	KeyID     string        `yaml:"key_id"`
	KeySecret string        `yaml:"key_secret"`
	Timeout   time.Duration `yaml:"timeout"`
	Theme     string        `yaml:"theme"`
}

type CheckoutSection struct {
	Currency string `yaml:"currency"`
	// CODSurcharge is added to the subtotal of cash-on-delivery orders, in major units.
	CODSurcharge int64         `yaml:"cod_surcharge"`
	PendingTTL   time.Duration `yaml:"pending_ttl"`
}

type CartSection struct {
	TTL time.Duration `yaml:"ttl"`
}

type RateLimitSection struct {
	Requests      int           `yaml:"requests"`
	Window        time.Duration `yaml:"window"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type CatalogSection struct {
	Path string `yaml:"path"`
}

type LogSection struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server    ServerSection    `yaml:"server"`
	MySQL     MySQLSection     `yaml:"mysql"`
	Redis     RedisSection     `yaml:"redis"`
	RabbitMQ  RabbitMQSection  `yaml:"rabbitmq"`
	Admin     AdminSection     `yaml:"admin"`
	Gateway   GatewaySection   `yaml:"gateway"`
	Checkout  CheckoutSection  `yaml:"checkout"`
	Cart      CartSection      `yaml:"cart"`
	RateLimit RateLimitSection `yaml:"rate_limit"`
	Catalog   CatalogSection   `yaml:"catalog"`
	Log       LogSection       `yaml:"log"`
}

func Default() Config {
	return Config{
		Server: ServerSection{
			Port:              "8080",
			Mode:              "release",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		MySQL: MySQLSection{
			Port:            "3306",
			MaxOpenConns:    50,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisSection{
			Host:     "localhost",
			Port:     "6379",
			PoolSize: 50,
		},
		RabbitMQ: RabbitMQSection{
			Exchange: "storefront.exchange",
		},
		Gateway: GatewaySection{
			BaseURL: "https://api.razorpay.com",
			Timeout: 10 * time.Second,
			Theme:   "#0f172a",
		},
		Checkout: CheckoutSection{
			Currency:     "INR",
			CODSurcharge: 25,
			PendingTTL:   30 * time.Minute,
		},
		Cart: CartSection{
			TTL: 7 * 24 * time.Hour,
		},
		RateLimit: RateLimitSection{
			Requests:      10,
			Window:        time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Catalog: CatalogSection{
			Path: "configs/catalog.yaml",
		},
		Log: LogSection{
			Level:  "info",
			Format: "json",
		},
	}
}
