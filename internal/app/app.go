package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/shop/internal/health"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/catalog"
	ordersvc "github.com/vladislavdragonenkov/shop/internal/service/order"
	"github.com/vladislavdragonenkov/shop/internal/service/outbox"
	httpapi "github.com/vladislavdragonenkov/shop/internal/transport/http"
	"github.com/vladislavdragonenkov/shop/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает зависимости и запускает HTTP API, служебный сервер,
// outbox worker и consumer синхронизации каталога до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	var (
		deps *Dependencies
		err  error
	)
	if cfg.PostgresDSN != "" {
		deps, err = NewPostgresDependencies(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return err
		}
		logger.Info("postgres storage initialized")
	} else {
		deps = NewDependencies(logger)
		logger.Info("using in-memory storage")
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(producer, logger)

	placementMetrics := metrics.NewPlacementMetrics()
	orderService := ordersvc.NewService(
		deps.Customers,
		deps.Products,
		deps.Orders,
		deps.Outbox,
		placementMetrics,
		logger.WithField("layer", "service"),
	)

	// Outbox worker публикует события заказов, если Kafka доступна.
	if producer != nil {
		publisher := kafka.NewOutboxPublisher(producer, cfg.OrderEventsTopic)
		dlqPublisher := kafka.NewOutboxPublisher(producer, kafka.TopicDeadLetterQueue)
		worker := outbox.NewWorker(
			deps.Outbox,
			publisher,
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
			outbox.WithDLQPublisher(dlqPublisher),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
		)
		go worker.Run(ctx)
	}

	// Consumer каталога вливает товары из внешнего topic.
	var catalogConsumer *kafka.Consumer
	if cfg.KafkaBrokers != "" && cfg.CatalogTopic != "" {
		handler := catalog.NewProductUpsertHandler(deps.Products, logger.WithField("component", "catalog-sync"))
		catalogConsumer, err = kafka.NewConsumerWithDLQ(
			strings.Split(cfg.KafkaBrokers, ","),
			cfg.CatalogGroupID,
			[]string{cfg.CatalogTopic},
			handler,
			producer,
			3,
		)
		if err != nil {
			logger.WithError(err).Warn("failed to create catalog consumer, continuing without catalog sync")
		} else if err := catalogConsumer.Start(ctx); err != nil {
			logger.WithError(err).Warn("failed to start catalog consumer")
		}
	}

	apiHandler := httpapi.NewHandler(
		orderService,
		deps.Customers,
		deps.Products,
		logger.WithField("layer", "http"),
	)
	apiSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(apiHandler, logger.WithField("layer", "http")),
	}

	healthHandler := healthcheck.NewHandler(version.String())
	if deps.Store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewPingChecker("postgres", 2*time.Second, deps.Store.Ping))
	}
	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(opsSrv, logger)
		stopConsumer(catalogConsumer, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(opsSrv, logger)
		stopConsumer(catalogConsumer, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает служебный HTTP-сервер с метриками и health-проверками.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.Handle("/readyz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

func stopConsumer(consumer *kafka.Consumer, logger *log.Entry) {
	if consumer == nil {
		return
	}
	if err := consumer.Stop(); err != nil {
		logger.WithError(err).Warn("failed to stop catalog consumer")
	}
}
