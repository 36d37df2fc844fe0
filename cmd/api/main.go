package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jugadubazar/internal/cart"
	"jugadubazar/internal/config"
	"jugadubazar/internal/db"
	"jugadubazar/internal/httpserver"
	"jugadubazar/internal/logging"
	"jugadubazar/internal/metrics"
	categoryrepo "jugadubazar/internal/repository/category"
	materialrepo "jugadubazar/internal/repository/material"
	orderrepo "jugadubazar/internal/repository/order"
	cartsvc "jugadubazar/internal/service/cart"
	categorysvc "jugadubazar/internal/service/category"
	checkoutsvc "jugadubazar/internal/service/checkout"
	materialsvc "jugadubazar/internal/service/material"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New(logging.Options{Service: "api", Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer dbpool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	checkoutMetrics := metrics.NewCheckoutMetrics(reg)
	policies := cfg.Checkout.Policies()

	materialRepo := materialrepo.NewPostgres(dbpool, logger)
	materialService := materialsvc.New(materialRepo)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	orderRepo := orderrepo.NewPostgres(dbpool)

	registry := cart.NewRegistry()
	cartService := cartsvc.New(registry, materialService, policies, checkoutMetrics, logger.With().Str("svc", "cart").Logger())
	checkoutService := checkoutsvc.New(registry, orderRepo, policies, checkoutMetrics, logger.With().Str("svc", "checkout").Logger())

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Gatherer:       reg,
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
	}, httpserver.Deps{
		MaterialSvc: materialService,
		CategorySvc: categoryService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		Orders:      orderRepo,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepSessions(sweepCtx, cartService, cfg.CartSessionTTL)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

// sweepSessions drops idle carts every ttl/4 until ctx is done.
func sweepSessions(ctx context.Context, svc *cartsvc.Service, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.SweepIdle(ttl)
		}
	}
}
