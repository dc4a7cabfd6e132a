package xrhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/xrcaps/pkg/cache"
	"github.com/dmitrymomot/xrcaps/pkg/capability"
	"github.com/dmitrymomot/xrcaps/pkg/logger"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

const (
	defaultCacheSize    = 512
	defaultMaxBodyBytes = 64 << 10
	maxReportDevices    = 64
)

// Result is the outcome of detecting a submitted report.
type Result struct {
	Snapshot       capability.Snapshot       `json:"snapshot"`
	Recommendation capability.Recommendation `json:"recommendation"`
	Description    string                    `json:"description"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithCatalog sets the device catalog. Nil is ignored.
func WithCatalog(c *xrdevice.Catalog) Option {
	return func(h *Handler) {
		if c != nil {
			h.initialCatalog = c
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithProbeTimeout bounds each probe of a detection pass.
func WithProbeTimeout(d time.Duration) Option {
	return func(h *Handler) { h.probeTimeout = d }
}

// WithCacheSize sets how many detection results are kept. Non-positive
// values keep the default.
func WithCacheSize(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.cacheSize = n
		}
	}
}

// WithMaxBodyBytes limits the size of a submitted report.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithRateLimit limits each client address to perSecond detection requests
// with the given burst. A non-positive rate disables limiting, which is the
// default. A non-positive burst defaults to the rate rounded up.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(h *Handler) {
		h.ratePerSecond = perSecond
		h.rateBurst = burst
	}
}

// WithTrustedProxies lists the networks whose X-Forwarded-For and X-Real-IP
// headers identify the client for rate limiting. Requests from any other
// address are keyed by their remote address. Entries are CIDR prefixes or
// single addresses; invalid entries panic, since misconfiguration should
// prevent startup.
func WithTrustedProxies(networks ...string) Option {
	return func(h *Handler) {
		for _, n := range networks {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if !strings.Contains(n, "/") {
				addr := netip.MustParseAddr(n)
				h.trustedProxies = append(h.trustedProxies, netip.PrefixFrom(addr, addr.BitLen()))
				continue
			}
			h.trustedProxies = append(h.trustedProxies, netip.MustParsePrefix(n).Masked())
		}
	}
}

// Handler serves the capability API.
type Handler struct {
	initialCatalog *xrdevice.Catalog
	log            *slog.Logger
	probeTimeout   time.Duration
	cacheSize      int
	maxBodyBytes   int64
	ratePerSecond  float64
	rateBurst      int
	trustedProxies []netip.Prefix

	catalog atomic.Pointer[xrdevice.Catalog]

	results *cache.Loader[Result]
	router  chi.Router
}

// New builds the capability API.
//
//	POST /v1/capabilities   detect a browser probe report
//	GET  /v1/platform       platform of the calling client
//	GET  /v1/devices        list the device catalog
//	GET  /v1/devices/{key}  one catalog profile
//	GET  /health            liveness with catalog and cache state
func New(opts ...Option) *Handler {
	h := &Handler{
		initialCatalog: xrdevice.Default(),
		log:            logger.Nop(),
		probeTimeout:   capability.DefaultProbeTimeout,
		cacheSize:      defaultCacheSize,
		maxBodyBytes:   defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.catalog.Store(h.initialCatalog)
	h.log = h.log.With(logger.Component("xrhttp"))
	h.results = cache.NewLoader[Result](h.cacheSize)

	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer, Platform, AccessLog(h.log))
	r.NotFound(h.wrap(func(http.ResponseWriter, *http.Request) error { return ErrNotFound }))
	r.MethodNotAllowed(h.wrap(func(http.ResponseWriter, *http.Request) error { return ErrMethodNotAllowed }))

	r.Get("/health", h.wrap(h.health))
	r.Route("/v1", func(r chi.Router) {
		r.With(h.limitDetection()).Post("/capabilities", h.wrap(h.detect))
		r.Get("/platform", h.wrap(h.platform))
		r.Get("/devices", h.wrap(h.listDevices))
		r.Get("/devices/{key}", h.wrap(h.getDevice))
	})

	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Catalog returns the device catalog currently served.
func (h *Handler) Catalog() *xrdevice.Catalog { return h.catalog.Load() }

// SetCatalog swaps the device catalog and drops every cached detection made
// with the previous one. Nil is ignored.
func (h *Handler) SetCatalog(c *xrdevice.Catalog) {
	if c == nil {
		return
	}
	old := h.catalog.Swap(c)
	h.results.Purge()
	h.log.Info("device catalog replaced",
		slog.String("previous_version", old.Version()),
		slog.String("version", c.Version()),
		slog.Int("devices", c.Len()),
	)
}

// Detect runs a detection pass for report, reusing a cached result for an
// identical report. The boolean reports a cache hit. A cached result is
// returned under a new snapshot ID and timestamp, so every response carries
// its own snapshot identity.
func (h *Handler) Detect(ctx context.Context, report capability.Report) (Result, bool, error) {
	catalog := h.catalog.Load()
	// The catalog version keeps loads started before a swap from
	// answering for the new catalog.
	key := catalog.Version() + ":" + report.Fingerprint()

	res, cached, err := h.results.GetOrLoad(ctx, key, func(ctx context.Context) (Result, error) {
		d := capability.New(report.Host(),
			capability.WithCatalog(catalog),
			capability.WithLogger(h.log),
			capability.WithProbeTimeout(h.probeTimeout),
		)
		// A client disconnect must not leave a degraded result in the cache.
		d.Refresh(context.WithoutCancel(ctx))
		return Result{
			Snapshot:       d.Snapshot(),
			Recommendation: d.Recommendations(),
			Description:    d.DeviceDescription(),
		}, nil
	})
	if err != nil || !cached {
		return res, cached, err
	}

	res.Snapshot.ID = uuid.New()
	res.Snapshot.Timestamp = time.Now()
	return res, true, nil
}

func (h *Handler) limitDetection() func(http.Handler) http.Handler {
	if h.ratePerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return newClientLimiter(h.ratePerSecond, h.rateBurst, defaultRateClients, h.trustedProxies).middleware(h)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (h *Handler) wrap(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if errors.Is(err, errWriteResponse) {
			h.log.DebugContext(r.Context(), "response not delivered", logger.Error(err))
			return
		}

		status, detail := errorToDetail(err)
		if status >= http.StatusInternalServerError {
			h.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
		}
		if werr := writeJSON(w, status, Envelope{Error: detail}); werr != nil {
			h.log.DebugContext(r.Context(), "write error response", logger.Error(werr))
		}
	}
}

func (h *Handler) detect(w http.ResponseWriter, r *http.Request) error {
	report, err := h.decodeReport(w, r)
	if err != nil {
		return err
	}

	res, cached, err := h.Detect(r.Context(), report)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, Envelope{
		Data: res,
		Meta: map[string]any{
			"cached":         cached,
			"fingerprint":    report.Fingerprint(),
			"catalogVersion": h.Catalog().Version(),
		},
	})
}

func (h *Handler) decodeReport(w http.ResponseWriter, r *http.Request) (capability.Report, error) {
	var report capability.Report

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err := dec.Decode(&report); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return report, withStatus(ErrPayloadTooLarge, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedReport, tooLarge.Limit))
		}
		return report, withStatus(ErrBadRequest, fmt.Errorf("%w: %v", ErrMalformedReport, err))
	}

	if md := report.MediaDevices; md != nil && len(md.Devices) > maxReportDevices {
		return report, withStatus(ErrUnprocessable, fmt.Errorf("%w: %d > %d", ErrTooManyDevices, len(md.Devices), maxReportDevices))
	}
	if report.UserAgent == "" {
		report.UserAgent = r.UserAgent()
	}
	return report, nil
}

func (h *Handler) platform(w http.ResponseWriter, r *http.Request) error {
	p, ok := PlatformFromContext(r.Context())
	if !ok {
		return ErrInternal
	}
	return writeJSON(w, http.StatusOK, Envelope{Data: p})
}

func (h *Handler) listDevices(w http.ResponseWriter, _ *http.Request) error {
	catalog := h.Catalog()
	return writeJSON(w, http.StatusOK, Envelope{
		Data: catalog.Profiles(),
		Meta: map[string]any{
			"version": catalog.Version(),
			"count":   catalog.Len(),
		},
	})
}

func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	p, ok := h.Catalog().Profile(key)
	if !ok {
		return withStatus(ErrNotFound, fmt.Errorf("%w: %s", ErrUnknownDevice, key))
	}
	return writeJSON(w, http.StatusOK, Envelope{Data: p})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, Envelope{Data: map[string]any{
		"status":         "ok",
		"catalogVersion": h.Catalog().Version(),
		"cache":          h.results.Stats(),
	}})
}
