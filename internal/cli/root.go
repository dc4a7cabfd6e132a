package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xrcaps/pkg/config"
	"github.com/dmitrymomot/xrcaps/pkg/logger"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
	"github.com/dmitrymomot/xrcaps/pkg/xrhttp"
)

const serviceName = "xrcaps"

// app holds state shared by all commands of one invocation.
type app struct {
	catalogPath string
	jsonOut     bool
	verbose     bool

	cfg     config.Config
	log     *slog.Logger
	catalog *xrdevice.Catalog
}

// NewRootCommand builds the xrcaps command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Detect XR device capabilities and recommend a preview mode",
		Long: `xrcaps matches clients against a catalog of known XR devices, probes
camera and WebXR support, and recommends an AR or VR preview mode.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "device catalog YAML (default: embedded catalog)")
	root.PersistentFlags().BoolVarP(&a.jsonOut, "json", "j", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newDetectCommand(a),
		newDevicesCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	a.cfg = cfg

	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(logOut),
		logger.WithContextExtractors(xrhttp.LoggerExtractors()...),
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	if a.verbose {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	a.log = logger.New(opts...)

	catalog, err := xrdevice.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load device catalog: %w", err)
	}
	a.catalog = catalog
	return nil
}
