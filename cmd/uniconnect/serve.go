package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"uniconnect/config"
	"uniconnect/internal/database"
	"uniconnect/internal/maintenance"
	"uniconnect/internal/registration"
	"uniconnect/internal/router"
	"uniconnect/pkg/cloudinary"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the event stream and the maintenance scheduler",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func sessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (registration.SessionStore, func(), error) {
	switch cfg.Registration.Store {
	case "", "memory":
		return registration.NewMemoryStore(cfg.Registration.SessionTTL), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("registration sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warn("closing redis", zap.Error(err))
			}
		}
		return registration.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Registration.SessionTTL), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown registration store %q", cfg.Registration.Store)
	}
}

func photoClient(cfg *config.Config, log *zap.Logger) (cloudinary.Client, error) {
	if !cfg.Cloudinary.Enabled() {
		log.Info("cloudinary not configured, photo uploads disabled")
		return nil, nil
	}
	return cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
}

func serve(parent context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db, log)

	sessions, closeSessions, err := sessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	cloud, err := photoClient(cfg, log)
	if err != nil {
		return fmt.Errorf("cloudinary: %w", err)
	}

	svc := router.NewServices(cfg, db, sessions, cloud, log)
	engine := router.Setup(cfg, svc, log)

	sched := maintenance.NewScheduler(db, cfg.Database.Driver, cfg.Backup, cfg.Maintenance, svc.Checker, svc.Matching, log)
	go sched.Run(ctx)
	go svc.UserLimiter.Run(ctx, cfg.RateLimit.Window)
	go svc.APILimiter.Run(ctx, cfg.APIRateLimit.Window)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
