// Package capability detects what an XR storefront client can do and turns
// that into a preview recommendation.
//
// A Detector inspects a Host: the user-agent string, the touch flag, the
// camera API and the XR session API. Each pass builds a fresh Signature,
// resolves the platform and a known device from the catalog in
// package xrdevice, then probes the camera and XR support concurrently. The
// result is published as an immutable Snapshot.
//
// # Failure model
//
// Detection never returns an error and never panics. A missing API, a
// rejected query or a probe that outlives the configured timeout reads as
// false or "unknown". How each probe settled is recorded in
// Snapshot.Diagnostics, which tells "not yet run" apart from "unavailable"
// and from absorbed failures.
//
// # Usage
//
//	d := capability.New(host, capability.WithLogger(log))
//	snap, _ := d.Start(ctx).Await(ctx)
//
//	rec := d.Recommendations()
//	fmt.Println(d.DeviceDescription(), rec.RecommendedMode, rec.Features)
//
//	if d.RequestPermission(ctx) {
//	    snap = d.Snapshot() // camera labels are now visible
//	}
//
// Servers receive probe results from browsers as a Report and run the same
// detector against Report.Host().
package capability
