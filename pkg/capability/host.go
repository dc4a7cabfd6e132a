package capability

import "context"

// PermissionState mirrors the states of the camera permission.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
	PermissionUnknown PermissionState = "unknown"
)

func (s PermissionState) valid() bool {
	switch s {
	case PermissionGranted, PermissionDenied, PermissionPrompt, PermissionUnknown:
		return true
	}
	return false
}

// SessionMode is an XR session mode.
type SessionMode string

const (
	SessionImmersiveAR SessionMode = "immersive-ar"
	SessionImmersiveVR SessionMode = "immersive-vr"
	SessionInline      SessionMode = "inline"
)

// KindVideoInput is the device kind of a camera.
const KindVideoInput = "videoinput"

// MediaDevice is one enumerated input or output device.
type MediaDevice struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// Host is the runtime environment the detector inspects. A browser bridge,
// a submitted probe report, or a test fake can all stand behind it.
type Host interface {
	UserAgent() string
	TouchSupported() bool
	// MediaDevices returns nil when the media-device API is absent.
	MediaDevices() MediaDevices
	// XR returns nil when no XR session API is exposed.
	XR() XRSystem
}

// MediaDevices is the camera-related part of a host.
type MediaDevices interface {
	// QueryCameraPermission returns ErrUnsupported when the host cannot
	// answer permission queries.
	QueryCameraPermission(ctx context.Context) (PermissionState, error)
	EnumerateDevices(ctx context.Context) ([]MediaDevice, error)
	// RequestCamera prompts for camera access; nil means granted.
	RequestCamera(ctx context.Context) error
}

// XRSystem answers session-support queries.
type XRSystem interface {
	IsSessionSupported(ctx context.Context, mode SessionMode) (bool, error)
}

// HandTracker is implemented by XR systems that can report articulated hand
// input. Systems without it read as having no hand tracking.
type HandTracker interface {
	SupportsHandTracking(ctx context.Context) (bool, error)
}

// nopHost is an environment without any browser primitives.
type nopHost struct{}

func (nopHost) UserAgent() string          { return "" }
func (nopHost) TouchSupported() bool       { return false }
func (nopHost) MediaDevices() MediaDevices { return nil }
func (nopHost) XR() XRSystem               { return nil }
