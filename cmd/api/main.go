package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"party-paradise/internal/app"
	"party-paradise/internal/application/command"
	"party-paradise/internal/config"
	"party-paradise/internal/domain/repository"
	"party-paradise/internal/infrastructure/bus"
	"party-paradise/internal/infrastructure/gateway"
	"party-paradise/internal/infrastructure/memory"
	"party-paradise/internal/infrastructure/mongo"
	"party-paradise/internal/infrastructure/payos"
	"party-paradise/pkg/jwt"
	"party-paradise/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	logrus.Info("Starting Party Paradise API...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logrus.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
	logrus.Info("Server stopped")
}

// run serves until ctx is cancelled or the server fails; the store and the
// event bus are released before it returns
func run(ctx context.Context, cfg config.Config) error {
	uowFactory, healthCheck, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	paymentGateway, err := newGateway(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize payment gateway: %w", err)
	}

	eventBus := bus.NewInMemoryEventBus()
	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}
	defer eventBus.Stop()

	application, err := app.New(app.Dependencies{
		UnitOfWorkFactory: uowFactory,
		EventBus:          eventBus,
		Gateway:           paymentGateway,
		JWTManager:        jwt.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		SignatureSecret:   cfg.PaymentSignatureSecret,
		Currency:          cfg.PaymentCurrency,
		RequestTimeout:    cfg.RequestTimeout,
		SweepInterval:     cfg.SweepInterval,
		HealthCheck:       healthCheck,
	})
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	if err := command.SeedAdmin(ctx, uowFactory, eventBus, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		application.Sweeper.Start(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Shutting down server...")
		application.Sweeper.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore returns the unit of work factory, a liveness check for /health
// and a close func
func openStore(ctx context.Context, cfg config.Config) (repository.UnitOfWorkFactory, func() error, func(), error) {
	if cfg.UseMemoryStore() {
		logrus.Warn("Using in-memory store, data is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore()), nil, func() {}, nil
	}

	mongoClient, err := mongo.NewMongoClient(&mongo.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
		Timeout:  cfg.MongoTimeout,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	closeStore := func() {
		if err := mongoClient.Close(); err != nil {
			logrus.WithError(err).Error("Error closing MongoDB connection")
		}
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := mongoClient.EnsureIndexes(indexCtx); err != nil {
		closeStore()
		return nil, nil, nil, err
	}
	logrus.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")

	factory := mongo.NewMongoUnitOfWorkFactory(mongoClient.GetClient(), mongoClient.GetDatabase())
	return factory, mongoClient.Ping, closeStore, nil
}

func newGateway(cfg config.Config) (gateway.PaymentGateway, error) {
	if strings.EqualFold(cfg.PaymentGateway, "payos") {
		return payos.NewService(&payos.Config{
			ClientID:    cfg.PayOSClientID,
			APIKey:      cfg.PayOSAPIKey,
			ChecksumKey: cfg.PayOSChecksumKey,
			PartnerCode: cfg.PayOSPartnerCode,
			ReturnURL:   cfg.PayOSReturnURL,
			CancelURL:   cfg.PayOSCancelURL,
		})
	}
	logrus.Warn("Using mock payment gateway")
	return gateway.NewPaymentMock(), nil
}
