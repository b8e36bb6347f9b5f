package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"teapos/internal/cache"
	"teapos/internal/cart"
	"teapos/internal/checkout"
	"teapos/internal/config"
	"teapos/internal/db"
	"teapos/internal/events"
	"teapos/internal/httpserver"
	"teapos/internal/logging"
	"teapos/internal/payment"
	"teapos/internal/receipt"
	cartrepo "teapos/internal/repository/cart"
	categoryrepo "teapos/internal/repository/category"
	menuitemrepo "teapos/internal/repository/menuitem"
	modifierrepo "teapos/internal/repository/modifier"
	orderrepo "teapos/internal/repository/order"
	catalogsvc "teapos/internal/service/catalog"
	ordersvc "teapos/internal/service/order"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logging.New("api", "info").WithError(err).Fatal("load config")
	}
	logger := logging.New("api", cfg.LogLevel)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBPool())
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer dbpool.Close()

	rdb := connectRedis(ctx, cfg.RedisAddr, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	categoryRepo := categoryrepo.NewPostgres(dbpool)
	menuItemRepo := menuitemrepo.NewPostgres(dbpool, logger)
	modifierRepo := modifierrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var catalogService *catalogsvc.Service
	var cartStore cart.Store
	if rdb != nil {
		catalogService = catalogsvc.New(categoryRepo, menuItemRepo, modifierRepo, cache.NewCatalog(rdb, cfg.CatalogCacheTTL), logger)
		cartStore = cache.NewCartStore(rdb, cfg.CartTTL)
	} else {
		catalogService = catalogsvc.New(categoryRepo, menuItemRepo, modifierRepo, nil, logger)
		snapshots := cartrepo.NewPostgres(dbpool)
		cartStore = snapshots
		go purgeCarts(bgCtx, snapshots, cfg.CartTTL, logger)
	}

	hub := events.NewHub(logger)
	go hub.Run(bgCtx)

	broker, err := openBroker(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect events broker")
	}
	defer broker.Close()

	orderService := ordersvc.New(orderRepo, events.Multi{hub, broker}, logger)
	carts := cart.NewRegistry(cfg.TaxRate, cartStore, logger)
	checkouts := checkout.NewRegistry(carts, payment.NewLocal(), orderService, cfg.CheckoutTimeout, logger)

	levels := catalogService.Levels()
	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		DB:        dbpool,
		Catalog:   catalogService,
		Carts:     carts,
		Checkouts: checkouts,
		Orders:    orderService,
		Feed:      http.HandlerFunc(hub.ServeWS),
		Receipt: receipt.Options{
			StoreName:    cfg.StoreName,
			Currency:     cfg.Currency,
			TaxRate:      cfg.TaxRate,
			DefaultSugar: levels.DefaultSugar,
			DefaultIce:   levels.DefaultIce,
		},
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
	stopBackground()
}

// purgeCarts drops abandoned Postgres cart snapshots; Redis expires its own.
func purgeCarts(ctx context.Context, repo cartrepo.Repository, ttl time.Duration, logger *logrus.Entry) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.Purge(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.WithError(err).Warn("purge cart snapshots")
				continue
			}
			if n > 0 {
				logger.WithField("purged", n).Info("purged abandoned carts")
			}
		}
	}
}

// connectRedis returns nil when Redis is not configured or not reachable;
// the catalog then reads straight from Postgres and carts are kept there too.
func connectRedis(ctx context.Context, addr string, logger *logrus.Entry) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).WithField("addr", addr).Warn("redis unavailable, running without cache")
		rdb.Close()
		return nil
	}
	return rdb
}

type publisherCloser interface {
	events.Publisher
	io.Closer
}

type noopBroker struct{ events.Noop }

func (noopBroker) Close() error { return nil }

func openBroker(cfg config.Config, logger *logrus.Entry) (publisherCloser, error) {
	switch cfg.EventsDriver {
	case config.EventsAMQP:
		conn, err := events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			return nil, err
		}
		logger.Info("publishing order events to rabbitmq")
		return events.NewRabbitMQ(conn), nil
	case config.EventsKafka:
		producer, err := events.NewKafkaProducer(strings.Join(cfg.KafkaBrokers, ","))
		if err != nil {
			return nil, err
		}
		logger.WithField("brokers", cfg.KafkaBrokers).Info("publishing order events to kafka")
		return events.NewKafka(producer, logger), nil
	default:
		return noopBroker{}, nil
	}
}
