package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xrcaps/pkg/httpserver"
	"github.com/dmitrymomot/xrcaps/pkg/logger"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
	"github.com/dmitrymomot/xrcaps/pkg/xrhttp"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the capability API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)

			h := xrhttp.New(
				xrhttp.WithCatalog(a.catalog),
				xrhttp.WithLogger(a.log),
				xrhttp.WithProbeTimeout(a.cfg.ProbeTimeout),
				xrhttp.WithCacheSize(a.cfg.CacheSize),
				xrhttp.WithRateLimit(a.cfg.RateLimit, a.cfg.RateBurst),
				xrhttp.WithTrustedProxies(a.cfg.TrustedProxies...),
			)
			srv := httpserver.New(
				httpserver.WithAddr(addr),
				httpserver.WithShutdownTimeout(a.cfg.ShutdownTimeout),
				httpserver.WithLogger(a.log),
			)

			a.log.InfoContext(ctx, "starting capability API",
				slog.String("catalog_version", a.catalog.Version()),
				slog.Int("catalog_devices", a.catalog.Len()),
			)
			go reloadCatalogOnHangup(ctx, a, h, hup)
			return srv.Run(ctx, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: XRCAPS_HTTP_ADDR)")
	return cmd
}

// reloadCatalogOnHangup re-reads the device catalog on every SIGHUP. A
// catalog that fails to load is logged and the served one is kept.
func reloadCatalogOnHangup(ctx context.Context, a *app, h *xrhttp.Handler, hup <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			catalog, err := xrdevice.LoadOrDefault(a.cfg.CatalogPath)
			if err != nil {
				a.log.ErrorContext(ctx, "device catalog reload failed",
					slog.String("path", a.cfg.CatalogPath),
					logger.Error(err),
				)
				continue
			}
			h.SetCatalog(catalog)
		}
	}
}
