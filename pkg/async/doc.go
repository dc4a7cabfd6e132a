// Package async provides a small generic Future for running independent
// operations concurrently and joining their outcomes.
//
// Go starts a function in its own goroutine and returns a *Future. Await
// blocks until the function returns or the supplied context is done, so a
// bounded wait is expressed with context.WithTimeout. AllSettled joins several
// futures and keeps every outcome: one failing operation never blanks the
// results of the others.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
//	defer cancel()
//
//	ar := async.Go(ctx, func(ctx context.Context) (bool, error) { return xr.IsSessionSupported(ctx, "immersive-ar") })
//	vr := async.Go(ctx, func(ctx context.Context) (bool, error) { return xr.IsSessionSupported(ctx, "immersive-vr") })
//
//	for _, r := range async.AllSettled(ctx, ar, vr) {
//	    if r.Err != nil {
//	        // treat as unsupported
//	    }
//	}
//
// # Error Handling
//
// Await returns the error produced by the function, the context error, or an
// error matching ErrTimeout when the context deadline expired first. A
// panicking function completes its Future with an error matching ErrPanic.
package async
