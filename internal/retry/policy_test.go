package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fastPolicy() Policy {
	return Policy{MaxAttempts: 3, Base: time.Millisecond, Cap: 8 * time.Millisecond}
}

func TestDefaultPolicy_Schedule(t *testing.T) {
	require.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, DefaultPolicy().Schedule())
}

func TestPolicy_ScheduleIsCapped(t *testing.T) {
	p := Policy{MaxAttempts: 6, Base: time.Second, Cap: 8 * time.Second}
	require.Equal(t, []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 8 * time.Second,
	}, p.Schedule())
}

func TestPolicy_SingleAttemptHasNoWaits(t *testing.T) {
	require.Empty(t, Policy{MaxAttempts: 1, Base: time.Second}.Schedule())
	require.Empty(t, Policy{}.Schedule())
}

func TestPolicy_Do_SucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestPolicy_Do_ReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("attempt 3")
	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		calls++
		if calls == 3 {
			return last
		}
		return errors.New("earlier")
	})
	require.ErrorIs(t, err, last)
	require.Equal(t, 3, calls)
}

func TestPolicy_Do_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxAttempts: 3, Base: time.Hour}
	err := p.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
