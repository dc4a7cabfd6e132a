package capability_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/xrcaps/pkg/capability"
)

const (
	uaIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	uaAndroid = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Mobile Safari/537.36"
	uaQuest2  = "Mozilla/5.0 (X11; Linux x86_64; Quest 2) AppleWebKit/537.36 (KHTML, like Gecko) OculusBrowser/31.0.0.5.45 SamsungBrowser/4.0 Chrome/120.0.0.0 VR Safari/537.36"
	uaRokid   = "Mozilla/5.0 (Linux; Android 12; Rokid Station 2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
	uaWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	uaMac     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15"
)

type fakeHost struct {
	ua    string
	touch bool
	media *fakeMedia
	xr    *fakeXR
	// hands, when set, wraps xr in a system that reports hand tracking.
	hands *bool
}

func (h *fakeHost) UserAgent() string    { return h.ua }
func (h *fakeHost) TouchSupported() bool { return h.touch }

func (h *fakeHost) MediaDevices() capability.MediaDevices {
	if h.media == nil {
		return nil
	}
	return h.media
}

func (h *fakeHost) XR() capability.XRSystem {
	if h.xr == nil {
		return nil
	}
	if h.hands != nil {
		return handTrackingXR{fakeXR: h.xr, hands: *h.hands}
	}
	return h.xr
}

type fakeMedia struct {
	mu         sync.Mutex
	permission capability.PermissionState
	permErr    error
	devices    []capability.MediaDevice
	enumErr    error
	requestErr error
	// granted replaces devices once RequestCamera succeeds.
	granted []capability.MediaDevice

	block     chan struct{}
	delay     time.Duration
	inFlight  atomic.Int32
	maxFlight atomic.Int32
	enumCalls atomic.Int32
	requests  atomic.Int32
}

func (m *fakeMedia) QueryCameraPermission(context.Context) (capability.PermissionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.permission, m.permErr
}

func (m *fakeMedia) EnumerateDevices(context.Context) ([]capability.MediaDevice, error) {
	m.enumCalls.Add(1)
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxFlight.Load()
		if n <= cur || m.maxFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	m.mu.Lock()
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enumErr != nil {
		return nil, m.enumErr
	}
	return append([]capability.MediaDevice(nil), m.devices...), nil
}

// setBlock makes subsequent enumerations wait until ch is closed.
func (m *fakeMedia) setBlock(ch chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = ch
}

func (m *fakeMedia) RequestCamera(context.Context) error {
	m.requests.Add(1)
	if m.requestErr != nil {
		return m.requestErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permission = capability.PermissionGranted
	if m.granted != nil {
		m.devices = m.granted
	}
	return nil
}

type fakeXR struct {
	supported map[capability.SessionMode]bool
	errs      map[capability.SessionMode]error
	// block holds a mode's answer until the channel is closed, ignoring ctx.
	block map[capability.SessionMode]chan struct{}
}

func (x *fakeXR) IsSessionSupported(_ context.Context, mode capability.SessionMode) (bool, error) {
	if ch := x.block[mode]; ch != nil {
		<-ch
	}
	if err := x.errs[mode]; err != nil {
		return false, err
	}
	return x.supported[mode], nil
}

type handTrackingXR struct {
	*fakeXR
	hands bool
}

func (x handTrackingXR) SupportsHandTracking(context.Context) (bool, error) {
	return x.hands, nil
}

func camera(label string) capability.MediaDevice {
	return capability.MediaDevice{Kind: capability.KindVideoInput, Label: label}
}
