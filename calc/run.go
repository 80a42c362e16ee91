package calc

import (
	"context"
	"time"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	log "github.com/sirupsen/logrus"
)

type result[T any] struct {
	value T
	err   error
}

// Run calls fn with a context that expires after timeout and waits for it.
// If the deadline passes first, Run returns a TimeoutError at once;
// fn observes the cancelled context and stops on its own.
// A panic in fn is reported as an error instead of crashing the caller.
func Run[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Debugf("recovered from panic: %v", r)
				var zero T
				done <- result[T]{zero, errs.New(errs.InvalidArgument, "operation failed: %v", r)}
			}
		}()
		v, err := fn(ctx)
		done <- result[T]{v, err}
	}()

	select {
	case r := <-done:
		// Prefer the deadline over whatever fn made of its cancellation.
		if r.err != nil && ctx.Err() != nil {
			return r.value, errs.New(errs.Timeout, "operation timed out")
		}
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, errs.New(errs.Timeout, "operation timed out")
	}
}
