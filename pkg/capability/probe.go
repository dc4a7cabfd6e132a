package capability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrymomot/xrcaps/pkg/async"
	"github.com/dmitrymomot/xrcaps/pkg/useragent"
)

var (
	frontLabelKeywords = []string{"front", "facetime", "user"}
	rearLabelKeywords  = []string{"back", "rear", "environment"}
)

func labelHasAny(lowerLabel string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lowerLabel, k) {
			return true
		}
	}
	return false
}

// probeCamera inspects camera availability. It never fails: a missing API or
// an enumeration error yields the default block, and an unsupported
// permission query reads as PermissionUnknown.
func probeCamera(ctx context.Context, md MediaDevices, platform useragent.Platform) (CameraInfo, ProbeReport) {
	started := time.Now()
	if md == nil {
		return defaultCamera(), ProbeReport{Status: ProbeUnavailable}
	}

	report := ProbeReport{Status: ProbeCompleted}

	permission, err := md.QueryCameraPermission(ctx)
	if err != nil || !permission.valid() {
		if err != nil && !errors.Is(err, ErrUnsupported) {
			report.Error = err.Error()
		}
		permission = PermissionUnknown
	}

	devices, err := md.EnumerateDevices(ctx)
	if err != nil {
		return defaultCamera(), ProbeReport{
			Status:   ProbeFailed,
			Error:    err.Error(),
			Duration: time.Since(started),
		}
	}

	info := CameraInfo{PermissionState: permission}
	for _, d := range devices {
		if d.Kind != KindVideoInput {
			continue
		}
		info.HasCamera = true

		label := strings.ToLower(d.Label)
		if labelHasAny(label, frontLabelKeywords) {
			info.HasFrontCamera = true
		}
		if labelHasAny(label, rearLabelKeywords) {
			info.HasRearCamera = true
		}
	}

	// Handhelds nearly always have both cameras; labels are often empty
	// until permission is granted.
	if info.HasCamera && !info.HasFrontCamera && !info.HasRearCamera && platform.Handheld() {
		info.HasFrontCamera = true
		info.HasRearCamera = true
	}

	report.Duration = time.Since(started)
	return info, report
}

// probeXR queries the three session modes, and hand tracking when the system
// reports it, concurrently. A failed or unfinished query reads as false for
// that capability only; answers that arrived before the deadline are kept.
func probeXR(ctx context.Context, xr XRSystem) (XRInfo, ProbeReport) {
	started := time.Now()
	if xr == nil {
		return XRInfo{}, ProbeReport{Status: ProbeUnavailable}
	}

	modes := []SessionMode{SessionImmersiveAR, SessionImmersiveVR, SessionInline}
	futures := make([]*async.Future[bool], 0, len(modes)+1)
	for _, mode := range modes {
		futures = append(futures, async.Go(ctx, func(ctx context.Context) (bool, error) {
			return xr.IsSessionSupported(ctx, mode)
		}))
	}
	ht, hasHands := xr.(HandTracker)
	if hasHands {
		futures = append(futures, async.Go(ctx, ht.SupportsHandTracking))
	}

	results := async.AllSettled(ctx, futures...)

	var errs []error
	timedOut := 0
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			if errors.Is(r.Err, async.ErrTimeout) {
				timedOut++
			}
		}
	}
	answer := func(i int) bool { return results[i].Err == nil && results[i].Value }

	info := XRInfo{
		SupportsWebXR:       true,
		SupportsImmersiveAR: answer(0),
		SupportsImmersiveVR: answer(1),
		SupportsInline:      answer(2),
	}
	if hasHands {
		info.SupportsHandTracking = answer(3)
	}
	// Feature-level support needs a live session; approximate from AR support.
	info.SupportsHitTest = info.SupportsImmersiveAR
	info.SupportsDOMOverlay = info.SupportsImmersiveAR

	report := ProbeReport{Status: ProbeCompleted, Duration: time.Since(started)}
	if len(errs) > 0 {
		report.Status = ProbeDegraded
		if timedOut == len(results) {
			report.Status = ProbeTimeout
		}
		report.Error = errors.Join(errs...).Error()
	}
	return info, report
}
