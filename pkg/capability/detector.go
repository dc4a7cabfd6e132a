package capability

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/xrcaps/pkg/async"
	"github.com/dmitrymomot/xrcaps/pkg/logger"
	"github.com/dmitrymomot/xrcaps/pkg/statemachine"
	"github.com/dmitrymomot/xrcaps/pkg/useragent"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

// DefaultProbeTimeout bounds each probe when no timeout is configured.
const DefaultProbeTimeout = 3 * time.Second

// settleGrace is how long a pass waits past the deadline for the camera and
// XR checks to hand back the answers they collected before it.
const settleGrace = 50 * time.Millisecond

// Detector lifecycle states and events.
const (
	StateLoading = statemachine.State("loading")
	StateReady   = statemachine.State("ready")

	EventSettled = statemachine.Event("settled")
	EventRefresh = statemachine.Event("refresh")
)

// Option configures a Detector.
type Option func(*Detector)

// WithCatalog replaces the embedded device catalog.
func WithCatalog(c *xrdevice.Catalog) Option {
	return func(d *Detector) {
		if c != nil {
			d.catalog = c
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.log = l
		}
	}
}

// WithProbeTimeout bounds each probe. Non-positive values are ignored.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(d *Detector) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithClock overrides the time source used for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// Detector owns the capability snapshot of one host. It starts in the
// loading state and becomes ready once both probes settle. Detection never
// reports failure; unavailable capabilities read as false or unknown.
//
// Detector is safe for concurrent use. Passes are serialized, so a refresh
// issued while another pass is running waits for it and then runs fresh.
type Detector struct {
	host    Host
	catalog *xrdevice.Catalog
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time

	state   statemachine.StateMachine
	current atomic.Pointer[Snapshot]
	runMu   sync.Mutex
}

// New creates a Detector for host. A nil host behaves like an environment
// without any browser primitives.
func New(host Host, opts ...Option) *Detector {
	if host == nil {
		host = nopHost{}
	}

	d := &Detector{
		host:    host,
		catalog: xrdevice.Default(),
		log:     logger.Nop(),
		timeout: DefaultProbeTimeout,
		now:     time.Now,
	}
	d.state = statemachine.MustNew(StateLoading,
		statemachine.WithTransition(StateLoading, StateReady, EventSettled,
			statemachine.WithGuard(d.published),
			statemachine.WithAction(d.logTransition),
		),
		statemachine.WithTransition(StateReady, StateLoading, EventRefresh,
			statemachine.WithAction(d.logTransition),
		),
	)
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(logger.Component("capability"))

	initial := loadingSnapshot(d.now())
	d.current.Store(&initial)
	return d
}

// Catalog returns the device catalog used for matching.
func (d *Detector) Catalog() *xrdevice.Catalog { return d.catalog }

// Snapshot returns a copy of the current snapshot.
func (d *Detector) Snapshot() Snapshot { return *d.current.Load() }

// IsLoading reports whether a detection pass has not yet settled.
func (d *Detector) IsLoading() bool { return d.state.Is(StateLoading) }

// State returns the lifecycle state.
func (d *Detector) State() statemachine.State { return d.state.Current() }

// Start runs the first detection pass in the background.
func (d *Detector) Start(ctx context.Context) *async.Future[Snapshot] {
	return async.Go(ctx, func(ctx context.Context) (Snapshot, error) {
		return d.Refresh(ctx), nil
	})
}

// Refresh runs a detection pass and publishes its snapshot. It returns once
// both probes have settled or timed out.
func (d *Detector) Refresh(ctx context.Context) Snapshot {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	if d.state.CanFire(ctx, EventRefresh) {
		loading := d.Snapshot()
		loading.Loading = true
		d.current.Store(&loading)
		if err := d.state.Fire(ctx, EventRefresh); err != nil {
			d.log.WarnContext(ctx, "unexpected lifecycle transition", logger.Error(err))
		}
	}

	snap := d.detect(ctx)

	d.current.Store(&snap)
	if err := d.state.Fire(ctx, EventSettled); err != nil {
		d.log.WarnContext(ctx, "unexpected lifecycle transition", logger.Error(err))
	}
	return snap
}

// Recommendations derives a recommendation from the current snapshot.
func (d *Detector) Recommendations() Recommendation {
	return Recommend(d.Snapshot(), d.catalog)
}

// DeviceDescription returns a short label for the current snapshot.
func (d *Detector) DeviceDescription() string {
	return Describe(d.Snapshot(), d.catalog)
}

// RequestPermission asks the host for camera access. On grant it refreshes
// the snapshot, so camera labels become visible, and returns true. Denial or
// a host without media devices returns false.
func (d *Detector) RequestPermission(ctx context.Context) bool {
	md := d.host.MediaDevices()
	if md == nil {
		return false
	}

	f := async.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, md.RequestCamera(ctx)
	})
	if _, err := f.Await(ctx); err != nil {
		d.log.DebugContext(ctx, "camera permission not granted", logger.Error(err))
		return false
	}

	d.Refresh(ctx)
	return true
}

type cameraOutcome struct {
	info   CameraInfo
	report ProbeReport
}

type xrOutcome struct {
	info   XRInfo
	report ProbeReport
}

func (d *Detector) detect(ctx context.Context) Snapshot {
	started := time.Now()

	md, xr := d.host.MediaDevices(), d.host.XR()
	sig := Signature{
		UserAgent:       d.host.UserAgent(),
		HasTouch:        d.host.TouchSupported(),
		HasMediaDevices: md != nil,
		HasXR:           xr != nil,
	}

	platform := useragent.DetectPlatform(sig.UserAgent, sig.HasTouch)
	key, category := d.catalog.Resolve(sig.UserAgent, platform)

	probeCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	awaitCtx, cancelAwait := context.WithTimeout(ctx, d.timeout+settleGrace)
	defer cancelAwait()

	camF := async.Go(probeCtx, func(ctx context.Context) (cameraOutcome, error) {
		info, report := probeCamera(ctx, md, platform)
		return cameraOutcome{info: info, report: report}, nil
	})
	xrF := async.Go(probeCtx, func(ctx context.Context) (xrOutcome, error) {
		info, report := probeXR(ctx, xr)
		return xrOutcome{info: info, report: report}, nil
	})

	cam, err := camF.Await(awaitCtx)
	if err != nil {
		cam = cameraOutcome{info: defaultCamera(), report: abortedReport(err)}
	}
	xrRes, err := xrF.Await(awaitCtx)
	if err != nil {
		xrRes = xrOutcome{report: abortedReport(err)}
	}

	snap := Snapshot{
		ID:             uuid.New(),
		Signature:      sig,
		DeviceCategory: category,
		KnownDevice:    key,
		Platform:       platform,
		Camera:         cam.info,
		XR:             xrRes.info,
		Timestamp:      d.now(),
		Diagnostics:    Diagnostics{Camera: cam.report, XR: xrRes.report},
	}

	d.logProbe(ctx, "camera", cam.report)
	d.logProbe(ctx, "xr", xrRes.report)
	d.log.InfoContext(ctx, "capabilities detected",
		logger.SnapshotID(snap.ID),
		logger.DeviceKey(key),
		slog.String("category", string(category)),
		slog.String("os", platform.OS),
		logger.Duration(time.Since(started)),
	)

	return snap
}

// published reports whether the current snapshot is a settled one. The
// detector never reads as ready while the snapshot still says loading.
func (d *Detector) published(context.Context, statemachine.State, statemachine.Event) bool {
	return !d.current.Load().Loading
}

func (d *Detector) logTransition(ctx context.Context, from, to statemachine.State, event statemachine.Event) error {
	d.log.DebugContext(ctx, "detector state changed",
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("event", string(event)),
	)
	return nil
}

func (d *Detector) logProbe(ctx context.Context, name string, r ProbeReport) {
	switch r.Status {
	case ProbeCompleted, ProbeUnavailable:
		if r.Error == "" {
			return
		}
	}
	d.log.DebugContext(ctx, "probe degraded to default",
		logger.Probe(name),
		slog.String("status", string(r.Status)),
		slog.String("error", r.Error),
	)
}

func abortedReport(err error) ProbeReport {
	status := ProbeFailed
	if errors.Is(err, async.ErrTimeout) {
		status = ProbeTimeout
	}
	return ProbeReport{Status: status, Error: err.Error()}
}
