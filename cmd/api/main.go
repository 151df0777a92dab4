package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/angelmondragon/bcf-portal/api/controllers"
	"github.com/angelmondragon/bcf-portal/api/routes"
	"github.com/angelmondragon/bcf-portal/internal/annotations"
	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/cron"
	"github.com/angelmondragon/bcf-portal/internal/notifications"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/internal/workflow"
	"github.com/angelmondragon/bcf-portal/pkg/auth"
	"github.com/angelmondragon/bcf-portal/pkg/clock"
	"github.com/angelmondragon/bcf-portal/pkg/config"
	"github.com/angelmondragon/bcf-portal/pkg/db"
	"github.com/angelmondragon/bcf-portal/pkg/instance"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
	"github.com/angelmondragon/bcf-portal/pkg/metrics"
	"github.com/angelmondragon/bcf-portal/pkg/migrate"
	"github.com/angelmondragon/bcf-portal/pkg/pubsub"
	pkgredis "github.com/angelmondragon/bcf-portal/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
		Fields:      map[string]any{"instance": instance.GetID()},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	workflowMetrics := metrics.NewWorkflowMetrics(registry)
	cronMetrics := metrics.NewCronJobMetrics(registry)

	ready := map[string]controllers.Pinger{}

	staticCatalog, err := catalog.NewStaticReader(catalog.DefaultProducts())
	requireResource(ctx, logg, "static catalog", err)
	var catalogReader catalog.Reader = staticCatalog
	var history orders.HistoryStore = orders.NewMemoryHistory()

	if cfg.FeatureFlags.PersistOrders || cfg.FeatureFlags.UseSQLite {
		dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
		requireResource(ctx, logg, "database", err)
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		requireResource(ctx, logg, "migrations", migrate.MaybeRun(ctx, cfg, logg, dbClient))

		repo := catalog.NewRepository(dbClient.DB())
		requireResource(ctx, logg, "catalog seed", seedCatalog(ctx, logg, dbClient, repo))
		catalogReader = repo
		history = historyStore(cfg.FeatureFlags, dbClient.DB())
		ready["db"] = dbClient
	}

	var (
		idempotency pkgredis.IdempotencyStore
		reserver    orders.Reserver
	)
	if cfg.Redis.Enabled() {
		redisClient, err := pkgredis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		idempotency = redisClient
		reserver, err = orders.NewRedisReserver(redisClient, 0)
		requireResource(ctx, logg, "order id reserver", err)
		ready["redis"] = redisClient
	} else {
		logg.Warn(ctx, "redis not configured; order submission replays are not deduplicated")
	}

	var notifier orders.Notifier = notifications.NewLogNotifier(logg)
	if strings.TrimSpace(cfg.PubSub.OrdersTopic) != "" {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()

		pubsubNotifier, err := notifications.NewPubSubNotifier(pubsubClient.OrdersPublisher(), logg)
		requireResource(ctx, logg, "order notifier", err)
		notifier = pubsubNotifier
		ready["pubsub"] = pubsubClient
	}

	if cfg.App.IsDev() || cfg.FeatureFlags.SeedDemoHistory {
		added, err := orders.Seed(ctx, history, orders.DemoHistory(cfg.App.DemoOwner))
		requireResource(ctx, logg, "demo history", err)
		logg.Info(logg.WithFields(ctx, map[string]any{"owner": cfg.App.DemoOwner, "added": added}), "orders.demo_history_seeded")
	}

	clk := clock.NewRealClock()
	ids, err := orders.NewRandomIDGenerator(cfg.Workflow.OrderIDPrefix, cfg.Workflow.OrderIDDigits, nil)
	requireResource(ctx, logg, "order id generator", err)

	submitter, err := orders.NewSubmitter(orders.SubmitterConfig{
		History:     history,
		IDs:         ids,
		Clock:       clk,
		Reserver:    reserver,
		Notifier:    notifier,
		Metrics:     workflowMetrics,
		Logger:      logg,
		RetryBudget: cfg.Workflow.OrderIDRetryBudget,
	})
	requireResource(ctx, logg, "order submitter", err)

	workspaces, err := workflow.NewRegistry(workflow.Deps{
		Catalog:     catalogReader,
		Submitter:   submitter,
		History:     history,
		Clock:       clk,
		Metrics:     workflowMetrics,
		Annotations: annotations.NewDispatcher(annotations.TemplateAnnotator{}, cfg.Workflow.AnnotationTimeout, logg),
		Logger:      logg,
	})
	requireResource(ctx, logg, "workspace registry", err)

	reaper, err := cron.NewIdleSessionReaperJob(cron.IdleSessionReaperJobParams{
		Logger:   logg,
		Registry: workspaces,
		IdleTTL:  cfg.Workflow.SessionIdleTTL,
	})
	requireResource(ctx, logg, "idle session reaper", err)

	jobs, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(reaper),
		Metrics:  cronMetrics,
		Interval: cfg.Workflow.ReaperInterval,
	})
	requireResource(ctx, logg, "job service", err)

	go func() {
		if err := jobs.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "job service stopped unexpectedly", err)
		}
	}()

	if cfg.App.IsDev() {
		logDevToken(ctx, logg, cfg)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Catalog:     catalogReader,
			Workspaces:  workspaces,
			Idempotency: idempotency,
			Ready:       ready,
			Gatherer:    registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
		logg.Info(shutdownCtx, "api server shut down gracefully")
	}
}

// seedCatalog loads the default listings into an empty products table in one transaction.
func seedCatalog(ctx context.Context, logg *logger.Logger, dbClient *db.Client, repo *catalog.Repository) error {
	existing, err := repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := catalog.DefaultProducts()
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := catalog.NewRepository(tx)
		for _, p := range defaults {
			if err := txRepo.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "count", len(defaults)), "catalog.seeded")
	return nil
}

// historyStore keeps order history in memory unless BCF_ORDERS_PERSIST is set.
// A sqlite database alone only backs the catalog.
func historyStore(flags config.FeatureFlagsConfig, conn *gorm.DB) orders.HistoryStore {
	if flags.PersistOrders && conn != nil {
		return orders.NewRepository(conn)
	}
	return orders.NewMemoryHistory()
}

func logDevToken(ctx context.Context, logg *logger.Logger, cfg *config.Config) {
	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{Owner: cfg.App.DemoOwner})
	if err != nil {
		logg.Error(ctx, "failed to mint dev token", err)
		return
	}
	logg.Info(logg.WithFields(ctx, map[string]any{"owner": cfg.App.DemoOwner, "token": token}), "auth.dev_token")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
