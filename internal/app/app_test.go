package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mctasu/vending-machine-service/internal/app"
	"github.com/mctasu/vending-machine-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppConfig() (*slog.Logger, config.Config) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		Http: config.Http{Host: "127.0.0.1", Port: "0"},
		Cors: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	return logger, cfg
}

func TestApplication_Start(t *testing.T) {
	t.Run("starter context stays alive after startup", func(t *testing.T) {
		logger, cfg := testAppConfig()
		a := app.New(logger, cfg)

		var starterCtx context.Context
		a.SetStarters(app.StarterFunc(func(ctx context.Context) error {
			starterCtx = ctx
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, a.Start(ctx))
		defer a.Stop()

		time.Sleep(50 * time.Millisecond)
		require.NotNil(t, starterCtx)
		assert.NoError(t, starterCtx.Err())

		cancel()
		assert.ErrorIs(t, starterCtx.Err(), context.Canceled)
	})

	t.Run("starter failure aborts startup", func(t *testing.T) {
		logger, cfg := testAppConfig()
		a := app.New(logger, cfg)

		wantErr := errors.New("warm up failed")
		a.SetStarters(app.StarterFunc(func(ctx context.Context) error {
			return wantErr
		}))

		err := a.Start(context.Background())
		assert.ErrorIs(t, err, wantErr)
	})
}
