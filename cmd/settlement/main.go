package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Renal37/dress-settlement/internal/database"
	"github.com/Renal37/dress-settlement/internal/fees"
	"github.com/Renal37/dress-settlement/internal/gateway"
	router "github.com/Renal37/dress-settlement/internal/http"
	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/Renal37/dress-settlement/internal/payout"
	"github.com/Renal37/dress-settlement/internal/services"
	"github.com/Renal37/dress-settlement/internal/utils"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

const jobQueueCapacity = 100

type orderStore interface {
	GetOrder(ctx context.Context, orderID string) (models.Order, error)

	InsertOrderIfAbsent(ctx context.Context, order models.Order) (bool, error)

	UpdateOrder(ctx context.Context, orderID string, mutate func(order *models.Order) error) (models.Order, error)

	Close()
}

func main() {
	ctx := context.Background()

	loadDotEnv()

	config, err := NewConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Config wasn't loaded due to %s", err)
	}

	if err := logger.Initialize(config.LogLevel, config.Env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	calculator, err := fees.New(config.PlatformFeePercent)
	if err != nil {
		logger.Log.Fatal("fee calculator wasn't initialized", zap.Error(err))
	}

	store, err := newOrderStore(ctx, config)
	if err != nil {
		logger.Log.Fatal("order store wasn't initialized", zap.Error(err))
	}

	sink, err := newPayoutSink(config)
	if err != nil {
		logger.Log.Fatal("payout sink wasn't initialized", zap.Error(err))
	}

	jobQueueService := services.NewJobQueueService(ctx, jobQueueCapacity, config.PayoutWorkers)
	payoutService := services.NewPayoutService(jobQueueService, sink)

	utils.HandleTerminationProcess(func() {
		jobQueueService.Shutdown()

		var result error
		if err := sink.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close payout sink: %w", err))
		}
		store.Close()

		if result != nil {
			logger.Log.Error("shutdown finished with errors", zap.Error(result))
		}
		logger.Log.Sync() //nolint:errcheck
	})

	router.New(
		router.Config{Endpoint: config.Endpoint},
		services.NewSettlementService(store, newPaymentGateway(config), calculator),
		services.NewLifecycleService(store, payoutService, calculator),
	).Run()
}

func newOrderStore(ctx context.Context, config Config) (orderStore, error) {
	if config.DSN == "" {
		logger.Log.Warn("DATABASE_URI isn't set, orders are kept in memory")
		return database.NewMemory(), nil
	}

	db, err := database.New(ctx, config.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func newPaymentGateway(config Config) models.PaymentGateway {
	if config.GatewayURL == "" {
		logger.Log.Warn("GATEWAY_URL isn't set, sandbox gateway captures every payment")
		return gateway.NewSandbox(gateway.WithAutoCapture())
	}

	return gateway.NewClient(gateway.Config{
		BaseURL:   config.GatewayURL,
		SecretKey: config.GatewaySecretKey,
		Currency:  config.GatewayCurrency,
		Timeout:   config.GatewayTimeout,
	})
}

func newPayoutSink(config Config) (payout.Sink, error) {
	if config.PayoutAMQPURL == "" {
		return payout.NewLogSink(), nil
	}

	return payout.NewAMQPSink(config.PayoutAMQPURL, config.PayoutQueue)
}
