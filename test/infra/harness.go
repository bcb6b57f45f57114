package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// DSNEnv names the variable that points tests at an existing database
// instead of starting a container.
const DSNEnv = "HBNB_TEST_PG_DSN"

// provider yields a DSN for an empty marketplace database and a func that
// releases whatever it started. ok is false when the provider does not
// apply to this machine.
type provider struct {
	name string
	ok   func(context.Context) bool
	open func(context.Context) (string, func(context.Context) error, error)
}

// providers are tried in order: an explicit DSN, a throwaway container,
// then a server already running on localhost.
var providers = []provider{
	{
		name: "env",
		ok:   func(context.Context) bool { return os.Getenv(DSNEnv) != "" },
		open: func(context.Context) (string, func(context.Context) error, error) {
			return os.Getenv(DSNEnv), nil, nil
		},
	},
	{name: "docker", ok: dockerAvailable, open: runContainer},
	{
		name: "local",
		ok:   func(context.Context) bool { return true },
		open: func(ctx context.Context) (string, func(context.Context) error, error) {
			dsn, err := InitLocalDatabase(ctx)
			return dsn, nil, err
		},
	},
}

// Harness owns a migrated database for one test binary.
type Harness struct {
	pool    *pgxpool.Pool
	release []func(context.Context) error
	dsn     string
}

func NewHarness(ctx context.Context) (*Harness, error) {
	h := &Harness{}
	for _, p := range providers {
		if !p.ok(ctx) {
			continue
		}
		dsn, stop, err := p.open(ctx)
		if err != nil {
			return nil, fmt.Errorf("provision postgres (%s): %w", p.name, err)
		}
		h.dsn = dsn
		if stop != nil {
			h.release = append(h.release, stop)
		}
		break
	}

	pool, teardown, err := ApplyMigrations(ctx, h.dsn, true)
	if err != nil {
		_ = h.Close(ctx)
		return nil, err
	}
	h.pool = pool
	h.release = append([]func(context.Context) error{teardown}, h.release...)
	return h, nil
}

func (h *Harness) Pool() *pgxpool.Pool { return h.pool }

func (h *Harness) DSN() string { return h.dsn }

// Reset empties every table while keeping the schema.
func (h *Harness) Reset(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, `TRUNCATE place_amenities, reviews, places, amenities, users`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// Close drops the per-run schema before stopping the container that holds it.
func (h *Harness) Close(ctx context.Context) error {
	if h.pool != nil {
		h.pool.Close()
	}
	var errs []error
	for _, release := range h.release {
		errs = append(errs, release(ctx))
	}
	return errors.Join(errs...)
}

func runContainer(ctx context.Context) (string, func(context.Context) error, error) {
	c, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hbnb_test"),
		postgres.WithUsername("hbnb"),
		postgres.WithPassword("hbnb"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", nil, err
	}
	stop := func(ctx context.Context) error { return c.Terminate(ctx) }

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = stop(ctx)
		return "", nil, err
	}
	return dsn, stop, nil
}

func dockerAvailable(ctx context.Context) bool {
	if _, err := exec.LookPath("docker"); err != nil {
		return false
	}
	c := exec.CommandContext(ctx, "docker", "info")
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	return c.Run() == nil
}
