package capability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

var (
	errQueryFailed       = errors.New("capability: session support query failed in browser")
	errEnumerationFailed = errors.New("capability: device enumeration failed in browser")
)

// Report is a probe result collected by a browser and submitted to a server.
// A nil MediaDevices or XR section means the browser does not expose that API.
type Report struct {
	UserAgent    string       `json:"userAgent"`
	Touch        bool         `json:"touch"`
	MediaDevices *MediaReport `json:"mediaDevices,omitempty"`
	XR           *XRReport    `json:"xr,omitempty"`
}

// MediaReport is the camera section of a Report. An empty Permission means the
// permission query is not supported by the browser.
type MediaReport struct {
	Permission        PermissionState `json:"permission,omitempty"`
	Devices           []MediaDevice   `json:"devices"`
	EnumerationFailed bool            `json:"enumerationFailed,omitempty"`
}

// XRReport is the session-support section of a Report. A nil session field
// means the query was rejected. HandTracking is optional: browsers that cannot
// tell leave it out, and it then reads as unsupported.
type XRReport struct {
	ImmersiveAR  *bool `json:"immersiveAr"`
	ImmersiveVR  *bool `json:"immersiveVr"`
	Inline       *bool `json:"inline"`
	HandTracking *bool `json:"handTracking,omitempty"`
}

// Host adapts the report to the Host interface.
func (r Report) Host() Host { return reportHost{r: r} }

// Fingerprint returns a 32-character hex digest identifying reports that
// produce identical snapshots. The digest covers the JSON encoding of the
// report, so user-controlled strings cannot imitate field separators.
func (r Report) Fingerprint() string {
	if md := r.MediaDevices; md != nil && md.Devices == nil {
		normalized := *md
		normalized.Devices = []MediaDevice{}
		r.MediaDevices = &normalized
	}

	// Marshalling plain strings, bools and slices cannot fail.
	data, _ := json.Marshal(r)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

type reportHost struct{ r Report }

func (h reportHost) UserAgent() string    { return h.r.UserAgent }
func (h reportHost) TouchSupported() bool { return h.r.Touch }

func (h reportHost) MediaDevices() MediaDevices {
	if h.r.MediaDevices == nil {
		return nil
	}
	return reportMedia{m: h.r.MediaDevices}
}

func (h reportHost) XR() XRSystem {
	if h.r.XR == nil {
		return nil
	}
	return reportXR{x: h.r.XR}
}

type reportMedia struct{ m *MediaReport }

func (m reportMedia) QueryCameraPermission(context.Context) (PermissionState, error) {
	if m.m.Permission == "" {
		return PermissionUnknown, ErrUnsupported
	}
	return m.m.Permission, nil
}

func (m reportMedia) EnumerateDevices(context.Context) ([]MediaDevice, error) {
	if m.m.EnumerationFailed {
		return nil, errEnumerationFailed
	}
	return m.m.Devices, nil
}

// RequestCamera cannot prompt on behalf of a remote browser.
func (reportMedia) RequestCamera(context.Context) error { return ErrUnsupported }

type reportXR struct{ x *XRReport }

func (x reportXR) IsSessionSupported(_ context.Context, mode SessionMode) (bool, error) {
	var v *bool
	switch mode {
	case SessionImmersiveAR:
		v = x.x.ImmersiveAR
	case SessionImmersiveVR:
		v = x.x.ImmersiveVR
	case SessionInline:
		v = x.x.Inline
	default:
		return false, ErrUnsupported
	}
	if v == nil {
		return false, errQueryFailed
	}
	return *v, nil
}

func (x reportXR) SupportsHandTracking(context.Context) (bool, error) {
	return x.x.HandTracking != nil && *x.x.HandTracking, nil
}
