package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xrcaps/pkg/capability"
	"github.com/dmitrymomot/xrcaps/pkg/useragent"
)

type detectFlags struct {
	userAgent    string
	touch        bool
	cameraLabels []string
	permission   string
	noMedia      bool
	ar, vr       bool
	inline       bool
	hands        bool
	noXR         bool
}

// report converts flags to the same report shape browsers submit.
func (f detectFlags) report() capability.Report {
	r := capability.Report{UserAgent: f.userAgent, Touch: f.touch}

	if !f.noMedia {
		md := &capability.MediaReport{
			Permission: capability.PermissionState(f.permission),
			Devices:    []capability.MediaDevice{},
		}
		for _, label := range f.cameraLabels {
			md.Devices = append(md.Devices, capability.MediaDevice{Kind: capability.KindVideoInput, Label: label})
		}
		r.MediaDevices = md
	}

	if !f.noXR {
		ar, vr, inline, hands := f.ar, f.vr, f.inline, f.hands
		r.XR = &capability.XRReport{ImmersiveAR: &ar, ImmersiveVR: &vr, Inline: &inline, HandTracking: &hands}
	}
	return r
}

func newDetectCommand(a *app) *cobra.Command {
	var f detectFlags

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run detection against a described client",
		Example: `  xrcaps detect --ua "Mozilla/5.0 (X11; Linux x86_64; Quest 3) OculusBrowser/35.0" --ar --vr
  xrcaps detect --ua "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X)" --touch --camera-label "" --ar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch capability.PermissionState(f.permission) {
			case "", capability.PermissionGranted, capability.PermissionDenied, capability.PermissionPrompt:
			default:
				return fmt.Errorf("invalid --permission %q: want granted, denied or prompt", f.permission)
			}

			d := capability.New(f.report().Host(),
				capability.WithCatalog(a.catalog),
				capability.WithLogger(a.log),
				capability.WithProbeTimeout(a.cfg.ProbeTimeout),
			)
			snap := d.Refresh(cmd.Context())
			rec := d.Recommendations()
			desc := d.DeviceDescription()

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return writeJSON(out, map[string]any{
					"description":    desc,
					"recommendation": rec,
					"snapshot":       snap,
				})
			}

			t := newTable(out)
			t.row("Device:", desc)
			t.row("Known device:", snap.KnownDevice)
			t.row("Category:", string(snap.DeviceCategory))
			t.row("Platform:", fmt.Sprintf("%s, %s %s", useragent.DisplayOS(snap.Platform.OS), useragent.DisplayBrowser(snap.Platform.Browser), snap.Platform.BrowserVersion))
			t.row("Camera:", fmt.Sprintf("%s (front %s, rear %s, permission %s)", yesNo(snap.Camera.HasCamera), yesNo(snap.Camera.HasFrontCamera), yesNo(snap.Camera.HasRearCamera), snap.Camera.PermissionState))
			t.row("WebXR:", fmt.Sprintf("%s (ar %s, vr %s, inline %s, hands %s)", yesNo(snap.XR.SupportsWebXR), yesNo(snap.XR.SupportsImmersiveAR), yesNo(snap.XR.SupportsImmersiveVR), yesNo(snap.XR.SupportsInline), yesNo(snap.XR.SupportsHandTracking)))
			t.row("Mode:", orDash(string(rec.RecommendedMode)))
			t.row("Features:", orDash(strings.Join(rec.Features, ", ")))
			return t.flush()
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.userAgent, "ua", "", "user agent string")
	fl.BoolVar(&f.touch, "touch", false, "client reports touch support")
	fl.StringArrayVar(&f.cameraLabels, "camera-label", nil, "add a camera with this label (repeatable, may be empty)")
	fl.StringVar(&f.permission, "permission", "", "camera permission state: granted, denied, prompt (empty: unsupported)")
	fl.BoolVar(&f.noMedia, "no-media", false, "client exposes no media-device API")
	fl.BoolVar(&f.ar, "ar", false, "immersive-ar sessions supported")
	fl.BoolVar(&f.vr, "vr", false, "immersive-vr sessions supported")
	fl.BoolVar(&f.inline, "inline", false, "inline sessions supported")
	fl.BoolVar(&f.hands, "hands", false, "articulated hand input reported")
	fl.BoolVar(&f.noXR, "no-xr", false, "client exposes no WebXR API")
	cmd.MarkFlagsMutuallyExclusive("no-media", "camera-label")
	cmd.MarkFlagsMutuallyExclusive("no-xr", "ar")
	cmd.MarkFlagsMutuallyExclusive("no-xr", "vr")
	cmd.MarkFlagsMutuallyExclusive("no-xr", "hands")
	return cmd
}
