package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"storefront_backend/internal/app/di"
	"storefront_backend/internal/app/router"
	"storefront_backend/internal/platform/config"
	"storefront_backend/internal/platform/db"
	jwtmw "storefront_backend/internal/platform/jwt"
	infraredis "storefront_backend/internal/platform/redis"
	"storefront_backend/internal/platform/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// db
	gdb, err := db.OpenDB(db.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()
	if cfg.RunMigrations {
		if err := db.Migrate(gdb, di.Models()...); err != nil {
			return err
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), infraredis.OptionsFromEnv()); err != nil {
		slog.Warn("Redis unavailable. Rate limit counters are kept in process memory.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	sessions := jwtmw.NewManager(cfg.JWTSecret, jwtmw.SessionTTL)
	handlers, err := di.NewHandlers(di.Deps{
		DB:           gdb,
		Sessions:     sessions,
		Mailer:       di.NewMailer(cfg.SMTP),
		Files:        storage.NewLocal(cfg.UploadDir),
		SecureCookie: cfg.CookieSecure,
	})
	if err != nil {
		return err
	}

	// ルータ生成
	engine := router.NewRouter(handlers, router.Options{
		Sessions:    sessions,
		Limiter:     di.NewRateLimitStore(rdb),
		RateLimit:   di.RateLimitConfig(cfg),
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
