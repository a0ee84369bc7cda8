package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/service-dispatch/internal/auth"
	"github.com/YusovID/service-dispatch/internal/config"
	"github.com/YusovID/service-dispatch/internal/repository/postgres"
	"github.com/YusovID/service-dispatch/internal/repository/redis"
	"github.com/YusovID/service-dispatch/internal/service"
	myhttp "github.com/YusovID/service-dispatch/internal/transport/http"
	"github.com/YusovID/service-dispatch/pkg/logger/sl"
	"github.com/YusovID/service-dispatch/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting service-dispatch", slog.String("env", cfg.Env))

	pg, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := pg.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	rdb, err := redis.NewClient(cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("failed to init redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("redis close failed", sl.Err(err))
		}
	}()

	srv := newServer(cfg, log, pg, rdb)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		// card payments hold the response for the simulated processing delay
		WriteTimeout: cfg.Server.Timeout + cfg.Payment.SimulatedDelay,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	log.Info("server stopped")

	return nil
}

func newServer(cfg *config.Config, log *slog.Logger, pg *postgres.Postgres, rdb *redis.Client) *myhttp.Server {
	db := pg.DB()

	authRepo := postgres.NewAuthRepository(db, log)
	profileRepo := postgres.NewProfileRepository(db, log)
	catalogRepo := postgres.NewCatalogRepository(db)
	providerRepo := postgres.NewProviderRepository(db)
	requestRepo := postgres.NewRequestRepository(db, log)
	paymentRepo := postgres.NewPaymentRepository(db, log)
	reviewRepo := postgres.NewReviewRepository(db, log)
	statsRepo := postgres.NewStatsRepository(db)

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	accounts := service.NewAccountService(db, log, authRepo, profileRepo, redis.NewRevocationStore(rdb), issuer)
	customers := service.NewCustomerService(db, log, catalogRepo, requestRepo, requestRepo, paymentRepo, reviewRepo)
	providers := service.NewProviderService(db, log, providerRepo, profileRepo, requestRepo, requestRepo, paymentRepo)
	payments := service.NewPaymentService(db, log, paymentRepo, requestRepo, cfg.Payment.SimulatedDelay)
	admin := service.NewAdminService(log, statsRepo)

	return myhttp.NewServer(log, accounts, customers, providers, payments, admin)
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}
