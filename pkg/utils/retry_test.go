package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mctasu/vending-machine-service/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func fastConfig() utils.RetryConfig {
	return utils.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2,
	}
}

func TestRetry(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := utils.Retry(fastConfig(), func() error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := utils.Retry(fastConfig(), func() error {
			calls++
			if calls < 3 {
				return errors.New("temporary")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		wantErr := errors.New("still broken")
		calls := 0
		err := utils.Retry(fastConfig(), func() error {
			calls++
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors short-circuit", func(t *testing.T) {
		notFound := errors.New("not found")
		calls := 0
		err := utils.Retry(fastConfig(), func() error {
			calls++
			return notFound
		}, notFound)
		assert.ErrorIs(t, err, notFound)
		assert.Equal(t, 1, calls)
	})

	t.Run("wrapped permanent errors short-circuit", func(t *testing.T) {
		notFound := errors.New("not found")
		calls := 0
		err := utils.Retry(fastConfig(), func() error {
			calls++
			return errors.Join(errors.New("query failed"), notFound)
		}, notFound)
		assert.ErrorIs(t, err, notFound)
		assert.Equal(t, 1, calls)
	})
}
