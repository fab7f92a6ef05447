package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"medication-reminder/internal/adapters/auth/session"
	pg "medication-reminder/internal/adapters/storage/postgres"
	lite "medication-reminder/internal/adapters/storage/sqlite"
	"medication-reminder/internal/config"
	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/platform/metrics"
	"medication-reminder/internal/ports/auth"
	"medication-reminder/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the web client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply the schema before serving (postgres and sqlite)")
	return cmd
}

func serve(parent context.Context, cfg config.Config, log logger.Logger, migrate bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.ReferenceTZ)
	if err != nil {
		return fmt.Errorf("reference timezone: %w", err)
	}

	opts := router.Options{
		Logger:      log,
		Metrics:     metrics.New(),
		Location:    loc,
		CORSOrigins: cfg.CORSOrigins,
	}

	db, gdb, closeStore, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return err
	}
	defer closeStore()
	opts.DB, opts.Gorm = db, gdb

	revoker, closeRevoker, err := openRevoker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRevoker()

	if cfg.SessionKey == "" {
		log.Warn("SESSION_SECRET not set: sessions will not survive a restart", nil)
	}
	opts.Sessions, err = session.NewManager(cfg.SessionKey, cfg.SessionTTL, revoker)
	if err != nil {
		return err
	}

	handler, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":     cfg.HTTPAddr,
			"driver":   cfg.DBDriver,
			"timezone": cfg.ReferenceTZ,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore abre Postgres o SQLite según DB_DRIVER. Memory no abre nada.
func openStore(ctx context.Context, cfg config.Config, migrate bool) (*sql.DB, *gorm.DB, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, nil, err
			}
		}
		return db, nil, func() { _ = db.Close() }, nil

	case config.DriverSQLite:
		gdb, err := lite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if migrate {
			if err := lite.Migrate(gdb); err != nil {
				closeFn()
				return nil, nil, nil, err
			}
		}
		return nil, gdb, closeFn, nil
	}
	return nil, nil, func() {}, nil
}

// openRevoker usa Redis si REDIS_ADDR está definido; si no, nil (el manager usa memoria).
func openRevoker(ctx context.Context, cfg config.Config, log logger.Logger) (auth.Revoker, func(), error) {
	if cfg.RedisAddr == "" {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}
	log.Info("session revocations on redis", map[string]any{"addr": cfg.RedisAddr})

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("redis close error", map[string]any{"err": err})
		}
	}
	return session.NewRedisRevocations(client, session.NewCircuitBreaker("Redis-Sessions", log)), closeFn, nil
}
