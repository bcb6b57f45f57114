package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Joan938/holbertonschool-hbnb/config"
	"github.com/Joan938/holbertonschool-hbnb/db"
	"github.com/Joan938/holbertonschool-hbnb/logging"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

type options struct {
	databaseURL string
	driver      string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "hbnbctl",
		Short:        "Administrative tasks for the HBnB backend",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			if opts.databaseURL == "" {
				opts.databaseURL = os.Getenv("DATABASE_URL")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "Postgres connection string (defaults to $DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", config.DriverPostgres, "Storage driver: postgres or memory")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	cmd.AddCommand(migrateCmd(opts), createAdminCmd(opts))
	return cmd
}

func (o *options) logger(cmd *cobra.Command) *logrus.Logger {
	return logging.NewWithOutput(cmd.ErrOrStderr(), o.logLevel, "text")
}

// openStore returns the selected backend and a func releasing it.
func (o *options) openStore(ctx context.Context) (storage.Store, func(), error) {
	switch o.driver {
	case config.DriverMemory:
		return storage.NewMemStore(), func() {}, nil
	case config.DriverPostgres:
		if o.databaseURL == "" {
			return nil, nil, errors.New("database url is required for the postgres driver")
		}
		pool, err := db.NewPool(ctx, o.databaseURL, 2)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPGStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", o.driver)
	}
}
