package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Joan938/holbertonschool-hbnb/auth"
	"github.com/Joan938/holbertonschool-hbnb/config"
	"github.com/Joan938/holbertonschool-hbnb/credential"
	"github.com/Joan938/holbertonschool-hbnb/db"
	"github.com/Joan938/holbertonschool-hbnb/facade"
	"github.com/Joan938/holbertonschool-hbnb/logging"
	"github.com/Joan938/holbertonschool-hbnb/migrations"
	"github.com/Joan938/holbertonschool-hbnb/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hbnb api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	hbnb := facade.NewService(store, credential.NewBcrypt(cfg.BcryptCost), log)
	if cfg.HasAdmin() {
		admin, err := hbnb.EnsureAdmin(ctx, facade.CreateUserInput{
			FirstName: cfg.AdminFirstName,
			LastName:  cfg.AdminLastName,
			Email:     cfg.AdminEmail,
			Password:  cfg.AdminPassword,
		})
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		log.WithField("user_id", admin.ID).Info("administrator ready")
	}

	server := NewServer(hbnb, auth.NewService(hbnb, cfg.JWTSecret, cfg.TokenTTL), log)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down http server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore returns the configured storage backend and its release func.
func openStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (storage.Store, func(), error) {
	if cfg.StorageDriver == config.DriverMemory {
		log.Warn("using in-memory storage; data is lost on exit")
		return storage.NewMemStore(), func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap database pool: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := migrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("migrations applied")
	}
	return storage.NewPGStore(pool), pool.Close, nil
}
