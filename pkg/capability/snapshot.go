package capability

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/xrcaps/pkg/useragent"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

// Signature is the raw evidence of one detection pass.
type Signature struct {
	UserAgent       string `json:"userAgent"`
	HasTouch        bool   `json:"hasTouch"`
	HasMediaDevices bool   `json:"hasMediaDevices"`
	HasXR           bool   `json:"hasXR"`
}

// CameraInfo is the outcome of the camera probe.
type CameraInfo struct {
	HasCamera       bool            `json:"hasCamera"`
	HasFrontCamera  bool            `json:"hasFrontCamera"`
	HasRearCamera   bool            `json:"hasRearCamera"`
	PermissionState PermissionState `json:"permissionState"`
}

// XRInfo is the outcome of the XR probe. HitTest and DOMOverlay are inferred
// from immersive-ar support, not queried.
type XRInfo struct {
	SupportsWebXR        bool `json:"supportsWebXR"`
	SupportsImmersiveAR  bool `json:"supportsImmersiveAR"`
	SupportsImmersiveVR  bool `json:"supportsImmersiveVR"`
	SupportsInline       bool `json:"supportsInline"`
	SupportsHandTracking bool `json:"supportsHandTracking"`
	SupportsHitTest      bool `json:"supportsHitTest"`
	SupportsDOMOverlay   bool `json:"supportsDomOverlay"`
}

func defaultCamera() CameraInfo {
	return CameraInfo{PermissionState: PermissionUnknown}
}

// ProbeStatus tells "probe not yet run" apart from "definitively unsupported"
// and from failures that were absorbed into default values.
type ProbeStatus string

const (
	ProbeNotRun      ProbeStatus = "not_run"
	ProbeUnavailable ProbeStatus = "unavailable" // API absent
	ProbeCompleted   ProbeStatus = "completed"
	ProbeDegraded    ProbeStatus = "degraded" // some queries failed and read as false
	ProbeFailed      ProbeStatus = "failed"
	ProbeTimeout     ProbeStatus = "timeout"
)

// ProbeReport describes how a probe settled.
type ProbeReport struct {
	Status   ProbeStatus   `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Diagnostics carries probe outcomes for logging and troubleshooting.
type Diagnostics struct {
	Camera ProbeReport `json:"camera"`
	XR     ProbeReport `json:"xr"`
}

// Snapshot is the point-in-time result of all capability probes.
type Snapshot struct {
	ID             uuid.UUID          `json:"id"`
	Signature      Signature          `json:"signature"`
	DeviceCategory xrdevice.Category  `json:"deviceCategory"`
	KnownDevice    string             `json:"knownDevice"`
	Platform       useragent.Platform `json:"platform"`
	Camera         CameraInfo         `json:"camera"`
	XR             XRInfo             `json:"xr"`
	Loading        bool               `json:"isLoading"`
	Timestamp      time.Time          `json:"timestamp"`
	Diagnostics    Diagnostics        `json:"diagnostics"`
}

// loadingSnapshot is the state before the first pass settles.
func loadingSnapshot(now time.Time) Snapshot {
	return Snapshot{
		DeviceCategory: xrdevice.CategoryUnknown,
		KnownDevice:    xrdevice.KeyUnknown,
		Platform:       useragent.Platform{OS: useragent.OSUnknown, Browser: useragent.BrowserUnknown},
		Camera:         defaultCamera(),
		Loading:        true,
		Timestamp:      now,
		Diagnostics: Diagnostics{
			Camera: ProbeReport{Status: ProbeNotRun},
			XR:     ProbeReport{Status: ProbeNotRun},
		},
	}
}
