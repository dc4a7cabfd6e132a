// Package logger builds *slog.Logger instances for xrcaps components.
//
// New creates a logger configured by Option functions: output format (text
// or json), minimum level, static attributes and ContextExtractor callbacks
// that pull request-scoped values out of a context.Context on every record.
// WithEnvironment applies development or production defaults in one call.
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log.DebugContext(ctx, "probe degraded to default",
//	    logger.Probe("camera"),
//	    logger.Error(err),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
