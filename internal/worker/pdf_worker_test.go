package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRetryBackoff(t *testing.T) {
	assert.Equal(t, 1*time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
	assert.Equal(t, 8*time.Minute, computeRetryBackoff(4))
	// Capped: a long-failing quote never waits more than 30 minutes.
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(6))
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(20))
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("exito inmediato no reintenta", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, 3, func(int) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("exito en el segundo intento", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, 3, func(attempt int) error {
			calls++
			if attempt == 0 {
				return errors.New("disco lleno")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("agota los intentos y devuelve el ultimo error", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, 3, func(int) error {
			calls++
			return errors.New("disco lleno")
		})
		assert.EqualError(t, err, "disco lleno")
		assert.Equal(t, 3, calls)
	})

	t.Run("contexto cancelado corta la espera", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := withRetry(cctx, 3, func(int) error {
			return errors.New("disco lleno")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
