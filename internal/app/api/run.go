package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	shopserver "github.com/myjhye/shop/server"

	cartcatalog "github.com/myjhye/shop/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/myjhye/shop/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/myjhye/shop/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/myjhye/shop/internal/domains/cart/application"
	cartports "github.com/myjhye/shop/internal/domains/cart/ports"

	catalogmemory "github.com/myjhye/shop/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/myjhye/shop/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/myjhye/shop/internal/domains/catalog/application"
	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"

	notifcatalog "github.com/myjhye/shop/internal/domains/notifications/adapters/catalog"
	notifmemory "github.com/myjhye/shop/internal/domains/notifications/adapters/memory"
	notifpostgres "github.com/myjhye/shop/internal/domains/notifications/adapters/persistence/postgres"
	notifapp "github.com/myjhye/shop/internal/domains/notifications/application"
	notifports "github.com/myjhye/shop/internal/domains/notifications/ports"

	ordersmemory "github.com/myjhye/shop/internal/domains/orders/adapters/memory"
	ordersobs "github.com/myjhye/shop/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/myjhye/shop/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/myjhye/shop/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/myjhye/shop/internal/domains/orders/application"
	ordersports "github.com/myjhye/shop/internal/domains/orders/ports"

	reviewsmemory "github.com/myjhye/shop/internal/domains/reviews/adapters/memory"
	reviewspostgres "github.com/myjhye/shop/internal/domains/reviews/adapters/persistence/postgres"
	reviewsapp "github.com/myjhye/shop/internal/domains/reviews/application"
	reviewsports "github.com/myjhye/shop/internal/domains/reviews/ports"

	usersmemory "github.com/myjhye/shop/internal/domains/users/adapters/memory"
	userspostgres "github.com/myjhye/shop/internal/domains/users/adapters/persistence/postgres"
	usersredis "github.com/myjhye/shop/internal/domains/users/adapters/redis"
	usersapp "github.com/myjhye/shop/internal/domains/users/application"
	usersports "github.com/myjhye/shop/internal/domains/users/ports"

	"github.com/myjhye/shop/internal/platform/migrations"
	platformobservability "github.com/myjhye/shop/internal/platform/observability"
	platformpostgres "github.com/myjhye/shop/internal/platform/postgres"
)

// Run boots the shop HTTP API with observability, repositories, and the
// notification workflow wired.
func Run(ctx context.Context) error {
	const serviceName = "shop-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	services := buildServices(cfg, db, logger)

	notifier, cleanupNotifier := buildNotifier(cfg, instruments, services.notifications, logger)
	defer cleanupNotifier()
	coreOrders := ordersapp.NewService(
		services.ordersRepo,
		ordersapp.WithCartReconciler(services.cart),
		ordersapp.WithNotifier(notifier),
		ordersapp.WithLogger(logger),
	)
	ordersService := ordersobs.New(
		coreOrders,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	reviewsService := reviewsapp.NewService(services.reviewsRepo, ordersService, reviewsapp.WithLogger(logger))

	handlers := shopserver.ApiHandleFunctions{
		UsersAPI:         shopserver.NewUsersAPI(services.users),
		ProductsAPI:      shopserver.NewProductsAPI(services.catalog),
		CartAPI:          shopserver.NewCartAPI(services.cart, services.catalog),
		OrdersAPI:        shopserver.NewOrdersAPI(ordersService),
		ReviewsAPI:       shopserver.NewReviewsAPI(reviewsService),
		NotificationsAPI: shopserver.NewNotificationsAPI(services.notifications),
	}
	router := shopserver.NewRouter(handlers,
		shopserver.NewAuthMiddleware(services.users),
		otelgin.Middleware(serviceName),
	)

	addr := ":" + cfg.Port
	logger.Info("shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// wiredServices groups the per-context services sharing one storage mode.
type wiredServices struct {
	users         usersports.Service
	catalog       catalogports.Service
	cart          cartports.Service
	notifications notifports.Service
	ordersRepo    ordersports.Repository
	reviewsRepo   reviewsports.Repository
}

// buildServices picks PostgreSQL adapters when a DB is available and falls
// back to in-memory ones otherwise.
func buildServices(cfg Config, db *gorm.DB, logger *slog.Logger) wiredServices {
	var services wiredServices

	var catalogRepo catalogports.Repository
	if db != nil {
		catalogRepo = catalogpostgres.NewRepository(db)
		services.ordersRepo = orderspostgres.NewRepository(db)
	} else {
		// Without a shared products table the order ledger learns about
		// products from catalog writes.
		ordersRepo := ordersmemory.NewRepository()
		catalogRepo = newMirroringCatalogRepository(catalogmemory.NewRepository(), ordersRepo)
		services.ordersRepo = ordersRepo
	}
	services.catalog = catalogapp.NewService(catalogRepo, catalogapp.WithLogger(logger))

	var cartRepo cartports.Repository
	if db != nil {
		cartRepo = cartpostgres.NewRepository(db)
	} else {
		cartRepo = cartmemory.NewRepository()
	}
	services.cart = cartapp.NewService(cartRepo,
		cartapp.WithProductChecker(cartcatalog.NewChecker(services.catalog)),
		cartapp.WithLogger(logger),
	)

	var notifRepo notifports.Repository
	if db != nil {
		notifRepo = notifpostgres.NewRepository(db)
	} else {
		notifRepo = notifmemory.NewRepository()
	}
	services.notifications = notifapp.NewService(notifRepo,
		notifcatalog.NewDirectory(services.catalog),
		notifapp.WithLogger(logger),
	)

	if db != nil {
		services.reviewsRepo = reviewspostgres.NewRepository(db)
	} else {
		services.reviewsRepo = reviewsmemory.NewRepository()
	}

	services.users = usersapp.NewService(buildUserRepository(db), buildSessionStore(cfg, db, logger))
	return services
}

func buildUserRepository(db *gorm.DB) usersports.Repository {
	if db != nil {
		return userspostgres.NewRepository(db)
	}
	return usersmemory.NewRepository()
}

// buildSessionStore prefers Redis, then PostgreSQL, then process memory.
func buildSessionStore(cfg Config, db *gorm.DB, logger *slog.Logger) usersports.SessionStore {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.Info("session store configured with redis", slog.String("addr", cfg.RedisAddr))
		return usersredis.NewSessionStore(client, cfg.SessionTTL)
	}
	if db != nil {
		return userspostgres.NewSessionStore(db, cfg.SessionTTL)
	}
	logger.Warn("sessions kept in process memory, tokens will not survive restarts")
	return usersmemory.NewSessionStore(cfg.SessionTTL)
}

// buildNotifier prefers the durable Temporal path and falls back to inline
// delivery when no cluster is reachable.
func buildNotifier(cfg Config, instruments *platformobservability.Instruments, notifications notifports.Service, logger *slog.Logger) (ordersports.PlacementNotifier, func()) {
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal unavailable, delivering seller notifications inline", slog.String("error", err.Error()))
		return ordersworkflows.NewInlineOrderNotifications(notifications), func() {}
	}
	logger.Info("Temporal notification workflow enabled", slog.String("namespace", cfg.TemporalNamespace))
	return ordersworkflows.NewTemporalOrderNotifications(temporalClient), temporalClient.Close
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
