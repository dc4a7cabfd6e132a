package async

import (
	"context"
	"errors"
	"fmt"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Result is the settled outcome of a Future.
type Result[U any] struct {
	Value U
	Err   error
}

// Go executes fn in its own goroutine and returns a Future for its result.
// The context is handed to fn unchanged; fn is expected to honour it.
// A panic in fn completes the Future with an error matching ErrPanic.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result = zero
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		// Early exit prevents doing work for a caller that already gave up
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await waits for the Future to complete or for ctx to be done, whichever
// comes first. When ctx wins, the zero value is returned with ErrTimeout for
// deadline expiry or the context error otherwise. The goroutine behind the
// Future keeps running until fn returns.
func (f *Future[U]) Await(ctx context.Context) (U, error) {
	// A settled future wins even when ctx is already done.
	select {
	case <-f.done:
		return f.result, f.err
	default:
	}

	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, errors.Join(ErrTimeout, ctx.Err())
		}
		return zero, ctx.Err()
	}
}

// AllSettled waits for every future and returns one Result per future, in
// order. A failure in one future never hides the results of the others.
func AllSettled[U any](ctx context.Context, futures ...*Future[U]) []Result[U] {
	results := make([]Result[U], len(futures))
	for i, future := range futures {
		results[i].Value, results[i].Err = future.Await(ctx)
	}
	return results
}
