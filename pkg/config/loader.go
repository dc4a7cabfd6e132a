package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the detector, the HTTP surface and logging.
type Config struct {
	Env       string `env:"XRCAPS_ENV" envDefault:"development"`
	LogLevel  string `env:"XRCAPS_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"XRCAPS_LOG_FORMAT"` // empty selects the environment default

	// ProbeTimeout bounds each camera/XR probe; a probe that does not settle
	// in time degrades to its default value.
	ProbeTimeout time.Duration `env:"XRCAPS_PROBE_TIMEOUT" envDefault:"3s"`

	// CatalogPath overrides the embedded device catalog when set.
	CatalogPath string `env:"XRCAPS_CATALOG_PATH"`

	HTTPAddr        string        `env:"XRCAPS_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"XRCAPS_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CacheSize       int           `env:"XRCAPS_CACHE_SIZE" envDefault:"512"`

	// RateLimit is detection requests per second per client; 0 disables.
	RateLimit float64 `env:"XRCAPS_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"XRCAPS_RATE_BURST" envDefault:"0"`

	// TrustedProxies lists addresses or CIDR networks whose forwarding
	// headers identify the client. Empty keys clients by remote address.
	TrustedProxies []string `env:"XRCAPS_TRUSTED_PROXIES" envSeparator:","`
}

var dotenvLoaded sync.Once

// Load reads a .env file from the working directory, if present, then
// parses the process environment into a validated Config.
func Load() (Config, error) {
	dotenvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges that struct tags cannot express.
func (c Config) Validate() error {
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("%w: XRCAPS_PROBE_TIMEOUT must be positive, got %s", ErrInvalidConfig, c.ProbeTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: XRCAPS_SHUTDOWN_TIMEOUT must be positive, got %s", ErrInvalidConfig, c.ShutdownTimeout)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: XRCAPS_CACHE_SIZE must be positive, got %d", ErrInvalidConfig, c.CacheSize)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: XRCAPS_RATE_LIMIT and XRCAPS_RATE_BURST cannot be negative", ErrInvalidConfig)
	}
	for _, n := range c.TrustedProxies {
		if err := validNetwork(strings.TrimSpace(n)); err != nil {
			return fmt.Errorf("%w: XRCAPS_TRUSTED_PROXIES: %w", ErrInvalidConfig, err)
		}
	}
	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: XRCAPS_LOG_FORMAT must be json or text, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func validNetwork(n string) error {
	switch {
	case n == "":
		return nil
	case strings.Contains(n, "/"):
		_, err := netip.ParsePrefix(n)
		return err
	default:
		_, err := netip.ParseAddr(n)
		return err
	}
}
