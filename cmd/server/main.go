package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/controllers/http"
	"storefront/internal/domain"
	"storefront/internal/infra"
	mmysql "storefront/internal/infra/mysql"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/logging"
	"storefront/internal/payment"
	"storefront/internal/ratelimit"
	mysqlrepo "storefront/internal/repository/mysql"
	"storefront/internal/services"
	"storefront/internal/session"
)

func main() {
	cfg, err := config.Load(os.Getenv("STOREFRONT_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	db, err := mmysql.Open(cfg.MySQL)
	if err != nil {
		logger.WithError(err).Fatal("db: connect")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Host + ":" + cfg.Redis.Port,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	defer redisClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).Fatal("redis: ping")
	}
	cancelPing()
	store := session.NewRedisStore(redisClient)

	var publisher rabbitmq.PublisherInterface = rabbitmq.NopPublisher{Log: logger}
	if cfg.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to init publisher")
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Warn("rabbitmq url not set, events will be dropped")
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.WithError(err).Fatal("catalog: load")
	}

	var gateway infra.PaymentGatewayInterface
	if cfg.OnlinePayments() {
		gateway = infra.NewGatewayClient(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.Timeout)
	} else {
		logger.Warn("gateway keys not set, online payment disabled")
	}
	verifier := payment.NewVerifier(cfg.Gateway.KeySecret)
	guard := services.NewAdminGuard(cfg.Admin.Secret)

	carts := cart.NewService(store, cat, cfg.Cart.TTL, cfg.Checkout.Currency, logger)
	orders := services.NewOrderService(mysqlrepo.NewOrderRepository(db), verifier, publisher, guard, logger)
	checkout := services.NewCheckoutService(carts, orders, gateway, verifier, store, services.CheckoutConfig{
		Currency:     cfg.Checkout.Currency,
		CODSurcharge: decimal.NewFromInt(cfg.Checkout.CODSurcharge),
		PendingTTL:   cfg.Checkout.PendingTTL,
		Theme:        cfg.Gateway.Theme,
	}, logger)

	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	handler := http.NewHandler(http.Deps{
		Catalog:  cat,
		Carts:    carts,
		Checkout: checkout,
		Orders:   orders,
		Gateway:  gateway,
		Verifier: verifier,
		CustomRequests: services.NewIntakeService[domain.CustomRequest, *domain.CustomRequest](
			mysqlrepo.NewRecordRepository[domain.CustomRequest](db), publisher, guard, logger),
		Contacts: services.NewIntakeService[domain.ContactSubmission, *domain.ContactSubmission](
			mysqlrepo.NewRecordRepository[domain.ContactSubmission](db), publisher, guard, logger),
		BookedCalls: services.NewIntakeService[domain.BookedCall, *domain.BookedCall](
			mysqlrepo.NewRecordRepository[domain.BookedCall](db), publisher, guard, logger),
		Currency: cfg.Checkout.Currency,
	}, limiter, logger)

	gin.SetMode(cfg.Server.Mode)
	r, err := http.NewEngine(cfg.Server.TrustedProxies, logger)
	if err != nil {
		logger.WithError(err).Fatal("router")
	}
	handler.RegisterRoutes(r)

	srv := &nethttp.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("port", cfg.Server.Port).Info("starting storefront")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, cfg.RateLimit.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		orders.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
	logger.Info("server stopped")
}
