// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
// Run blocks until its context is cancelled, then calls http.Server.Shutdown
// with the configured deadline. Signal handling belongs to the caller:
//
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(httpserver.WithAddr(cfg.HTTPAddr), httpserver.WithLogger(log))
//	if err := srv.Run(ctx, handler); err != nil {
//	    return err
//	}
//
// Errors are wrapped with ErrStart or ErrShutdown for errors.Is checks.
package httpserver
