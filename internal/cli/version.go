package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return writeJSON(out, map[string]string{
					"version":         Version,
					"commit":          Commit,
					"build_date":      BuildDate,
					"go_version":      runtime.Version(),
					"catalog_version": a.catalog.Version(),
				})
			}

			fmt.Fprintf(out, "%s %s (catalog %s)\n", serviceName, Version, a.catalog.Version())
			if a.verbose {
				fmt.Fprintf(out, "  commit:     %s\n", Commit)
				fmt.Fprintf(out, "  built:      %s\n", BuildDate)
				fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
				fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
			return nil
		},
	}
}
