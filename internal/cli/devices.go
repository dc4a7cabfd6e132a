package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

func newDevicesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the known device catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			profiles := a.catalog.Profiles()

			if a.jsonOut {
				return writeJSON(out, map[string]any{
					"version": a.catalog.Version(),
					"devices": profiles,
				})
			}

			t := newTable(out, "KEY", "NAME", "CATEGORY", "MODE", "CAPABILITIES", "PATTERNS")
			for _, p := range profiles {
				t.row(p.Key, p.Name, string(p.Category), orDash(string(p.RecommendedMode)), capabilityList(p), orDash(strings.Join(p.Patterns, ", ")))
			}
			return t.flush()
		},
	}
}

func capabilityList(p xrdevice.Profile) string {
	var caps []string
	if p.HasPassthrough {
		caps = append(caps, "passthrough")
	}
	if p.HasHandTracking {
		caps = append(caps, "hands")
	}
	if p.HasCamera {
		caps = append(caps, "camera")
	}
	if p.SupportsRoomScan {
		caps = append(caps, "room-scan")
	}
	return orDash(strings.Join(caps, ","))
}
