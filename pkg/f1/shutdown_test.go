package f1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownWithContext(t *testing.T) {
	errDrain := errors.New("drain failed")

	testCases := []struct {
		desc       string
		shutdown   func(ctx context.Context) error
		forced     bool
		expected   error
		forceClose bool
	}{
		{
			desc:     "graceful shutdown",
			shutdown: func(context.Context) error { return nil },
		},
		{
			desc:     "shutdown error is returned",
			shutdown: func(context.Context) error { return errDrain },
			expected: errDrain,
		},
		{
			desc: "deadline forces close",
			shutdown: func(context.Context) error {
				time.Sleep(time.Second)
				return nil
			},
			forceClose: true,
			forced:     true,
			expected:   context.DeadlineExceeded,
		},
	}

	for i, tc := range testCases {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)

		forced := false

		var force func() error
		if tc.forceClose {
			force = func() error {
				forced = true
				return nil
			}
		}

		err := ShutdownWithContext(ctx, tc.shutdown, force)

		cancel()

		if tc.expected == nil {
			assert.NoErrorf(t, err, "TEST[%d] Failed: %s", i, tc.desc)
		} else {
			assert.ErrorIsf(t, err, tc.expected, "TEST[%d] Failed: %s", i, tc.desc)
		}

		assert.Equalf(t, tc.forced, forced, "TEST[%d] Failed: %s", i, tc.desc)
	}
}
