package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avolkov/ozon-economics-api/infrastructure/database/postgres"
	"github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon"
	"github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/performanceclient"
	"github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/sellerclient"
	"github.com/avolkov/ozon-economics-api/infrastructure/repository"
	"github.com/avolkov/ozon-economics-api/internal/api"
	"github.com/avolkov/ozon-economics-api/internal/api/handler"
	"github.com/avolkov/ozon-economics-api/internal/config"
	"github.com/avolkov/ozon-economics-api/internal/scheduler"
	"github.com/avolkov/ozon-economics-api/internal/usecases/financing"
	"github.com/avolkov/ozon-economics-api/internal/usecases/uniteconomics"
	"github.com/avolkov/ozon-economics-api/pkg/throttle"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	orderRepo := repository.NewOrderRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	advertisingRepo := repository.NewAdvertisingRepository(pgConn)

	// One throttle instance for the whole process: both marketplace APIs
	// share the same rate budget.
	apiThrottle := throttle.New(cfg.RateLimit())

	sellerClient := sellerclient.NewClient(cfg, apiThrottle)
	tokenManager := performanceclient.NewTokenManager(cfg, apiThrottle)
	performanceClient := performanceclient.NewClient(cfg, apiThrottle, tokenManager)
	ozonIntegrator := ozon.New(cfg, sellerClient, performanceClient)

	products := uniteconomics.DefaultProducts()
	unitService := uniteconomics.NewService(orderRepo, transactionRepo, advertisingRepo, products)
	financeService := financing.NewService(orderRepo, transactionRepo, products)

	orderSyncService := scheduler.NewOrderSyncService(orderRepo, ozonIntegrator, cfg)
	transactionSyncService := scheduler.NewTransactionSyncService(transactionRepo, ozonIntegrator, cfg)
	advertisingSyncService := scheduler.NewAdvertisingSyncService(advertisingRepo, ozonIntegrator, cfg)

	if err := orderSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the order sync scheduler")
	}
	if err := transactionSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the transaction sync scheduler")
	}
	if err := advertisingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the advertising sync scheduler")
	}

	server, err := api.New(
		cfg,
		unitService,
		financeService,
		handler.SyncServices{
			Orders:       orderSyncService,
			Transactions: transactionSyncService,
			Advertising:  advertisingSyncService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Could not ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
