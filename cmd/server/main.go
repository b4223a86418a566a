package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billforge/billforge/internal/api"
	v1 "github.com/billforge/billforge/internal/api/v1"
	"github.com/billforge/billforge/internal/cache"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/integration/billingapi"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	log.Infow("starting billforge server",
		"mode", cfg.Deployment.Mode,
		"address", cfg.Server.Address,
	)

	cacheStore := cache.Initialize(cfg, log)

	billingClient := billingapi.NewClient(cfg, cacheStore, log)

	params := service.ServiceParams{
		Logger:     log,
		Config:     cfg,
		BillingAPI: billingClient,
	}

	pricingService := service.NewPricingService(params)
	feeService := service.NewFeeService(params)
	slotService := service.NewSlotService(params)
	planChangeService := service.NewPlanChangeService(params)

	handlers := api.Handlers{
		Pricing:    v1.NewPricingHandler(pricingService, feeService, log),
		Slot:       v1.NewSlotHandler(slotService, log),
		PlanChange: v1.NewPlanChangeHandler(planChangeService, log),
	}

	router := api.NewRouter(handlers, cfg, log)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
