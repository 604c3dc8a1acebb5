package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/myjhye/shop/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/myjhye/shop/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/myjhye/shop/internal/domains/catalog/application"
	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	notifcatalog "github.com/myjhye/shop/internal/domains/notifications/adapters/catalog"
	notifmemory "github.com/myjhye/shop/internal/domains/notifications/adapters/memory"
	notifpostgres "github.com/myjhye/shop/internal/domains/notifications/adapters/persistence/postgres"
	notifapp "github.com/myjhye/shop/internal/domains/notifications/application"
	notifports "github.com/myjhye/shop/internal/domains/notifications/ports"
	notificationactivities "github.com/myjhye/shop/internal/durable/temporal/activities/notifications"
	orderworkflows "github.com/myjhye/shop/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/myjhye/shop/internal/platform/observability"
	platformpostgres "github.com/myjhye/shop/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "shop-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanupDB()

	var catalogRepo catalogports.Repository
	var notifRepo notifports.Repository
	if db != nil {
		catalogRepo = catalogpostgres.NewRepository(db)
		notifRepo = notifpostgres.NewRepository(db)
	} else {
		catalogRepo = catalogmemory.NewRepository()
		notifRepo = notifmemory.NewRepository()
	}
	catalogService := catalogapp.NewService(catalogRepo, catalogapp.WithLogger(logger))
	notificationService := notifapp.NewService(notifRepo,
		notifcatalog.NewDirectory(catalogService),
		notifapp.WithLogger(logger),
	)
	activities := notificationactivities.NewActivities(notificationService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderNotificationsTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacedWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacedWorkflowName})
	w.RegisterActivityWithOptions(activities.NotifySellers, activity.RegisterOptions{Name: notificationactivities.NotifySellersActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderNotificationsTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
