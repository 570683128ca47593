package f1

import (
	"context"
	"errors"
)

// ShutdownWithContext runs shutdownFunc and waits for it. When ctx ends first, forceCloseFunc (if any)
// is called and the context error is returned joined with its result.
func ShutdownWithContext(ctx context.Context, shutdownFunc func(ctx context.Context) error, forceCloseFunc func() error) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- shutdownFunc(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		err := ctx.Err()

		if forceCloseFunc != nil {
			err = errors.Join(err, forceCloseFunc())
		}

		return err
	}
}
