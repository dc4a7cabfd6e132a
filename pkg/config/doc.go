// Package config loads xrcaps settings from the environment.
//
// Load first reads an optional .env file (github.com/joho/godotenv) and then
// parses XRCAPS_* variables into Config using github.com/caarlos0/env/v11.
// Defaults live in struct tags; Validate rejects out-of-range values.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // ErrParsingConfig or ErrInvalidConfig
//	}
//
// LoadFrom takes an explicit variable map and is meant for tests and for
// embedding xrcaps in a host application with its own configuration source.
//
// Variables:
//
//	XRCAPS_ENV               development | staging | production (default development)
//	XRCAPS_LOG_LEVEL         debug | info | warn | error (default info)
//	XRCAPS_LOG_FORMAT        json | text (default depends on XRCAPS_ENV)
//	XRCAPS_PROBE_TIMEOUT     per-probe bound (default 3s)
//	XRCAPS_CATALOG_PATH      device catalog override file
//	XRCAPS_HTTP_ADDR         listen address (default :8080)
//	XRCAPS_SHUTDOWN_TIMEOUT  graceful shutdown bound (default 5s)
//	XRCAPS_CACHE_SIZE        detection cache entries (default 512)
//	XRCAPS_RATE_LIMIT        detection requests per second per client (default 0, off)
//	XRCAPS_RATE_BURST        rate limit burst (default: the rate rounded up)
//	XRCAPS_TRUSTED_PROXIES   comma-separated proxy addresses or CIDRs whose forwarding headers are honoured
package config
