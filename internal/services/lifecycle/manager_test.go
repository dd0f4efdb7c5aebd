package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"http", "monitor", "logger"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	m.Register("ignored", nil)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"logger", "monitor", "http"}, order)
	assert.Equal(t, 3, m.Len())
}

func TestShutdownCollectsEveryFailure(t *testing.T) {
	m := New(time.Second, nil)
	first := errors.New("first")
	second := errors.New("second")
	ran := false
	m.Register("a", func(context.Context) error { return first })
	m.Register("b", func(context.Context) error { ran = true; return nil })
	m.Register("c", func(context.Context) error { return second })

	err := m.Shutdown(context.Background())
	require.Error(t, err)
	assert.True(t, ran)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Contains(t, err.Error(), "c: second")
}

func TestShutdownAppliesTimeout(t *testing.T) {
	m := New(10*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
