package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Joan938/holbertonschool-hbnb/test/infra"
)

func TestPGStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	h, err := infra.NewHarness(ctx)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(func() { h.Close(context.Background()) })

	runStoreSuite(t, func(t *testing.T) Store {
		require.NoError(t, h.Reset(ctx), "reset database")
		return NewPGStore(h.Pool())
	})
}
