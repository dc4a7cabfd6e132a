package capability

import (
	"github.com/dmitrymomot/xrcaps/pkg/useragent"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

// Feature labels, in the order they appear in a Recommendation.
const (
	FeaturePassthroughAR      = "Passthrough AR"
	FeatureVRMode             = "VR Mode"
	FeatureHandTracking       = "Hand Tracking"
	FeatureRoomScanning       = "Room Scanning"
	FeatureCamera             = "Camera"
	FeatureCameraRoomScanning = "Room Scanning (Camera)"
)

// Recommendation is the user-facing preview advice derived from a snapshot.
type Recommendation struct {
	CanScanRoom        bool          `json:"canScanRoom"`
	CanUsePassthrough  bool          `json:"canUsePassthrough"`
	CanUseHandTracking bool          `json:"canUseHandTracking"`
	RecommendedMode    xrdevice.Mode `json:"recommendedMode"`
	Features           []string      `json:"features"`
}

// Recommend derives a recommendation. A known device is described entirely
// by its catalog profile; otherwise the probed capabilities decide. A
// snapshot with neither yields the empty recommendation.
func Recommend(snap Snapshot, catalog *xrdevice.Catalog) Recommendation {
	if catalog == nil {
		catalog = xrdevice.Default()
	}

	if snap.KnownDevice != xrdevice.KeyUnknown {
		if p, ok := catalog.Profile(snap.KnownDevice); ok {
			return fromProfile(p)
		}
	}
	return fromCapabilities(snap)
}

func fromProfile(p xrdevice.Profile) Recommendation {
	r := Recommendation{
		CanScanRoom:        p.SupportsRoomScan,
		CanUsePassthrough:  p.HasPassthrough,
		CanUseHandTracking: p.HasHandTracking,
		RecommendedMode:    p.RecommendedMode,
		Features:           []string{},
	}
	if p.HasPassthrough {
		r.Features = append(r.Features, FeaturePassthroughAR)
	}
	if p.HasHandTracking {
		r.Features = append(r.Features, FeatureHandTracking)
	}
	if p.SupportsRoomScan {
		r.Features = append(r.Features, FeatureRoomScanning)
	}
	if p.HasCamera {
		r.Features = append(r.Features, FeatureCamera)
	}
	return r
}

func fromCapabilities(snap Snapshot) Recommendation {
	r := Recommendation{Features: []string{}}

	switch {
	case snap.XR.SupportsImmersiveAR:
		r.RecommendedMode = xrdevice.ModeAR
		r.CanUsePassthrough = true
		r.Features = append(r.Features, FeaturePassthroughAR)
	case snap.XR.SupportsImmersiveVR:
		r.RecommendedMode = xrdevice.ModeVR
		r.Features = append(r.Features, FeatureVRMode)
	}

	if snap.XR.SupportsHandTracking {
		r.CanUseHandTracking = true
		r.Features = append(r.Features, FeatureHandTracking)
	}

	if snap.Camera.HasCamera {
		r.Features = append(r.Features, FeatureCamera)
		if snap.DeviceCategory.Handheld() {
			r.CanScanRoom = true
			r.Features = append(r.Features, FeatureCameraRoomScanning)
		}
	}

	return r
}

// Describe returns a short human-readable device label.
func Describe(snap Snapshot, catalog *xrdevice.Catalog) string {
	if catalog == nil {
		catalog = xrdevice.Default()
	}

	if snap.KnownDevice != xrdevice.KeyUnknown {
		if p, ok := catalog.Profile(snap.KnownDevice); ok {
			return p.Name
		}
	}

	os := snap.Platform.OS
	switch snap.DeviceCategory {
	case xrdevice.CategoryMobile:
		switch os {
		case useragent.OSiOS:
			return "iPhone"
		case useragent.OSAndroid:
			return "Android Phone"
		}
		return "Mobile Device"
	case xrdevice.CategoryTablet:
		switch os {
		case useragent.OSiOS:
			return "iPad"
		case useragent.OSAndroid:
			return "Android Tablet"
		}
		return "Tablet"
	case xrdevice.CategoryDesktop:
		switch os {
		case useragent.OSWindows:
			return "Windows Computer"
		case useragent.OSMacOS:
			return "Mac"
		case useragent.OSLinux:
			return "Linux Computer"
		case useragent.OSChromeOS:
			return "Chromebook"
		}
		return "Computer"
	}
	return "Unknown Device"
}
